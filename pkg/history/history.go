package history

// DailyHistory is one day of recorded writing, derived from the goal ledger.
type DailyHistory struct {
	// Date is the ISO calendar date of the entry.
	Date string
	// Words written on that day.
	Words int
	// Cumulative is the running total up to and including that day.
	Cumulative int
	// WritingDay is false for days the goal's schedule excluded; words can
	// still appear on such days when the author wrote anyway.
	WritingDay bool
}

// HistorySummary is the full recorded writing history of one project.
type HistorySummary struct {
	ProjectName string
	Target      int
	Entries     []DailyHistory
	TotalWords  int
}
