package entity

import "time"

// DatasetOutcome is the result of one dataset attempt. Err is nil exactly
// when State is DatasetStateLogged.
type DatasetOutcome struct {
	Dataset   string
	AttemptID string
	State     DatasetState
	RowCount  int
	Key       string
	Err       error
}

func (o DatasetOutcome) Succeeded() bool {
	return o.State == DatasetStateLogged
}

// Run is one pass over the registry.
type Run struct {
	ID        string
	Status    RunStatus
	StartedAt time.Time
	EndedAt   time.Time
	Outcomes  []DatasetOutcome
}

// Counts returns how many datasets were logged and how many failed.
func (r Run) Counts() (succeeded, failed int) {
	for _, o := range r.Outcomes {
		if o.Succeeded() {
			succeeded++
		} else {
			failed++
		}
	}
	return succeeded, failed
}
