package inbound

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/shandysiswandi/retailingest/internal/ingest/usecase"
	"github.com/shandysiswandi/retailingest/internal/pkg/pkgerror"
)

const maxPageSize = 100

type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) StartRun(ctx context.Context, _ *http.Request) (any, error) {
	result, err := h.uc.StartRun(ctx)
	if err != nil {
		return nil, err
	}

	return RunResponse{RunID: result.RunID}, nil
}

func (h *HTTPEndpoint) GetRun(ctx context.Context, r *http.Request) (any, error) {
	runID := strings.TrimSpace(r.URL.Query().Get("run_id"))
	if runID == "" {
		return nil, pkgerror.NewInvalidInput(errors.New("run_id is required"))
	}

	run, err := h.uc.GetRun(ctx, runID)
	if err != nil {
		return nil, err
	}

	return toRunStatusResponse(run), nil
}

func (h *HTTPEndpoint) Ledger(ctx context.Context, r *http.Request) (any, error) {
	query := r.URL.Query()

	page, pageSize, err := parsePagination(query.Get("page"), query.Get("page_size"))
	if err != nil {
		return nil, err
	}

	result, err := h.uc.ListLedger(ctx, parseLedgerFilter(query.Get("dataset")), page, pageSize)
	if err != nil {
		return nil, err
	}

	entries := make([]LedgerEntry, 0, len(result.Entries))
	for _, e := range result.Entries {
		entries = append(entries, toHTTPLedgerEntry(e))
	}

	return LedgerResponse{
		Entries:  entries,
		page:     result.Page,
		pageSize: result.PageSize,
		total:    result.Total,
	}, nil
}

func parsePagination(pageRaw, sizeRaw string) (int, int, error) {
	page := 1
	pageSize := 10

	if pageRaw != "" {
		value, err := strconv.Atoi(pageRaw)
		if err != nil || value < 1 {
			return 0, 0, pkgerror.NewInvalidInput(errors.New("invalid page"))
		}
		page = value
	}

	if sizeRaw != "" {
		value, err := strconv.Atoi(sizeRaw)
		if err != nil || value < 1 {
			return 0, 0, pkgerror.NewInvalidInput(errors.New("invalid page_size"))
		}
		pageSize = min(value, maxPageSize)
	}

	return page, pageSize, nil
}

// parseLedgerFilter reads a comma separated dataset list; blanks are ignored.
func parseLedgerFilter(raw string) usecase.LedgerFilter {
	filter := usecase.LedgerFilter{}
	for _, value := range strings.Split(raw, ",") {
		if value = strings.TrimSpace(value); value != "" {
			filter.Datasets = append(filter.Datasets, value)
		}
	}
	return filter
}
