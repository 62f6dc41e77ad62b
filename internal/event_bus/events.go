package event_bus

// ProgressSnapshotComputed is published after a progress snapshot has been
// assembled for a project. The ledger recorder uses it to roll today's word
// count into the goal ledger.
type ProgressSnapshotComputed struct {
	UserId    int
	ProjectId int
	// Date is the canonical calendar day (ISO YYYY-MM-DD) the snapshot was
	// computed for.
	Date       string
	TodayWords int
	TotalWords int
}

// GoalChanged is published when a project's goal is created, replaced,
// re-anchored or deleted.
type GoalChanged struct {
	UserId    int
	ProjectId int
}

// DocumentsSynced is published after a project's documents were re-synced
// against Drive.
type DocumentsSynced struct {
	UserId     int
	ProjectId  int
	TotalWords int
}
