package inbound

import (
	"context"

	"github.com/shandysiswandi/retailingest/internal/ingest/entity"
	"github.com/shandysiswandi/retailingest/internal/ingest/usecase"
	"github.com/shandysiswandi/retailingest/internal/pkg/pkgrouter"
)

type uc interface {
	StartRun(ctx context.Context) (usecase.RunResult, error)
	GetRun(ctx context.Context, runID string) (entity.Run, error)
	ListLedger(ctx context.Context, filter usecase.LedgerFilter, page, pageSize int) (usecase.LedgerResult, error)
}

func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/runs", end.StartRun)
	r.GET("/runs", end.GetRun) // ?run_id=

	r.GET("/ledger", end.Ledger) // ?dataset=&page=&page_size=
}
