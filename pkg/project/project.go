package project

type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

// Project is a single piece of writing the author tracks: a novel, a thesis,
// a collection of essays. Its manuscript lives as Google Docs inside
// DriveFolderId; the word goal here is plain metadata, pacing lives in the
// goal package.
type Project struct {
	Id          int
	Name        string
	Description string
	// WordGoal is the total word count the author aims for, 0 when unset.
	WordGoal int
	// DriveFolderId is the Drive folder holding the project's documents.
	DriveFolderId string
	Status        Status
	Position      int
}
