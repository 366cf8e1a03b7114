package entity

import "time"

// LedgerEntry is one audit row for a successful ingestion.
type LedgerEntry struct {
	Dataset   string
	FileName  string
	RowCount  int
	Key       string
	Status    LedgerStatus
	Timestamp time.Time
}
