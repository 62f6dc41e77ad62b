package document

import "time"

// Document is one content unit of a project: a chapter, a scene, a note.
// WordCount is a cached value refreshed from the Drive document on sync; the
// sum over a project's documents is the live cumulative total the pacing
// engine consumes.
type Document struct {
	Id           int
	ProjectId    int
	DriveFileId  string
	Title        string
	WordCount    int
	LastSyncedAt time.Time
	Position     int
}
