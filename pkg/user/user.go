package user

type User struct {
	Id          int
	Uid         string
	Username    string
	DisplayName string
	Settings    Settings
}

type Settings struct {
	// Timezone is the author's display timezone. Pacing bookkeeping does not
	// use it; "today" for the ledger is resolved in one canonical zone.
	Timezone string
	// DriveRootFolderId is the Drive folder the author keeps projects under.
	DriveRootFolderId string
}
