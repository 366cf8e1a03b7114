package entity

// DatasetState is the position of one dataset in a run.
//
//	pending -> validated -> uploaded -> logged
//	pending -> failed (from any step)
type DatasetState string

const (
	DatasetStatePending   DatasetState = "PENDING"
	DatasetStateValidated DatasetState = "VALIDATED"
	DatasetStateUploaded  DatasetState = "UPLOADED"
	DatasetStateLogged    DatasetState = "LOGGED"
	DatasetStateFailed    DatasetState = "FAILED"
)

// LedgerStatus is the status column of a ledger row.
type LedgerStatus string

// LedgerStatusSuccess is the only status ever written; failed attempts are
// reported in the log stream instead of the ledger.
const LedgerStatusSuccess LedgerStatus = "success"

type RunStatus string

const (
	RunStatusQueued     RunStatus = "QUEUED"
	RunStatusProcessing RunStatus = "PROCESSING"
	RunStatusDone       RunStatus = "DONE"
)
