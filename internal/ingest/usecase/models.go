package usecase

import (
	"slices"
	"time"

	"github.com/shandysiswandi/retailingest/internal/ingest/entity"
)

type RunResult struct {
	RunID string
}

type LedgerResult struct {
	Entries  []entity.LedgerEntry
	Page     int
	PageSize int
	Total    int
}

type LedgerFilter struct {
	Datasets []string
}

func (f LedgerFilter) Matches(e entity.LedgerEntry) bool {
	if len(f.Datasets) > 0 && !slices.Contains(f.Datasets, e.Dataset) {
		return false
	}
	return true
}

// RetryPolicy bounds upload attempts. The zero value means a single attempt.
type RetryPolicy struct {
	MaxRetries  int
	BaseBackoff time.Duration
}
