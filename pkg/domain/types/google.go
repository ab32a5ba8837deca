package types

type (
	GoogleProjectID     string
	BQDatasetID         string
	BQTableID           string
	FirestoreDatabaseID string
)

func (x GoogleProjectID) String() string { return string(x) }
func (x BQDatasetID) String() string     { return string(x) }
func (x BQTableID) String() string       { return string(x) }

const DefaultBQTableID BQTableID = "sync_history"
