package inbound

import (
	"net/http"
	"time"

	"github.com/shandysiswandi/retailingest/internal/ingest/entity"
	"github.com/shandysiswandi/retailingest/internal/pkg/pkgerror"
)

type RunResponse struct {
	RunID string `json:"run_id"`
}

func (RunResponse) StatusCode() int {
	return http.StatusAccepted
}

func (RunResponse) Message() string {
	return "ingestion run accepted"
}

type DatasetOutcome struct {
	Dataset   string              `json:"dataset"`
	AttemptID string              `json:"attempt_id"`
	State     entity.DatasetState `json:"state"`
	RowCount  int                 `json:"row_count"`
	Key       string              `json:"s3_key,omitempty"`
	ErrorKind string              `json:"error_kind,omitempty"`
	Error     string              `json:"error,omitempty"`
}

type RunStatusResponse struct {
	RunID     string           `json:"run_id"`
	Status    entity.RunStatus `json:"status"`
	StartedAt *time.Time       `json:"started_at,omitempty"`
	EndedAt   *time.Time       `json:"ended_at,omitempty"`
	Succeeded int              `json:"succeeded"`
	Failed    int              `json:"failed"`
	Outcomes  []DatasetOutcome `json:"outcomes"`
}

type LedgerEntry struct {
	Dataset   string              `json:"dataset"`
	FileName  string              `json:"filename"`
	RowCount  int                 `json:"row_count"`
	Key       string              `json:"s3_key"`
	Status    entity.LedgerStatus `json:"status"`
	Timestamp time.Time           `json:"timestamp"`
}

type LedgerResponse struct {
	Entries  []LedgerEntry `json:"entries"`
	page     int
	pageSize int
	total    int
}

func (r LedgerResponse) Meta() map[string]any {
	return map[string]any{
		"page":      r.page,
		"page_size": r.pageSize,
		"total":     r.total,
	}
}

func toRunStatusResponse(run entity.Run) RunStatusResponse {
	succeeded, failed := run.Counts()
	resp := RunStatusResponse{
		RunID:     run.ID,
		Status:    run.Status,
		StartedAt: timePtr(run.StartedAt),
		EndedAt:   timePtr(run.EndedAt),
		Succeeded: succeeded,
		Failed:    failed,
		Outcomes:  make([]DatasetOutcome, 0, len(run.Outcomes)),
	}

	for _, o := range run.Outcomes {
		out := DatasetOutcome{
			Dataset:   o.Dataset,
			AttemptID: o.AttemptID,
			State:     o.State,
			RowCount:  o.RowCount,
			Key:       o.Key,
		}
		if o.Err != nil {
			out.ErrorKind = pkgerror.CodeOf(o.Err).String()
			out.Error = o.Err.Error()
		}
		resp.Outcomes = append(resp.Outcomes, out)
	}

	return resp
}

func toHTTPLedgerEntry(e entity.LedgerEntry) LedgerEntry {
	return LedgerEntry{
		Dataset:   e.Dataset,
		FileName:  e.FileName,
		RowCount:  e.RowCount,
		Key:       e.Key,
		Status:    e.Status,
		Timestamp: e.Timestamp,
	}
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
