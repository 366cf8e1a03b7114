package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/shandysiswandi/retailingest/internal/ingest/entity"
	"github.com/shandysiswandi/retailingest/internal/ingest/storage"
	"github.com/shandysiswandi/retailingest/internal/pkg/pkgerror"
	"github.com/shandysiswandi/retailingest/internal/pkg/pkglog"
	"github.com/shandysiswandi/retailingest/internal/pkg/pkguid"
)

type ObjectStore interface {
	Put(ctx context.Context, key string, body io.ReadSeeker, meta storage.Metadata) error
	Location(key string) string
}

type Ledger interface {
	Append(ctx context.Context, entry entity.LedgerEntry) error
	List(ctx context.Context, filter LedgerFilter, page, pageSize int) ([]entity.LedgerEntry, int, error)
}

type RunStore interface {
	CreateRun(ctx context.Context, run entity.Run) error
	UpdateRun(ctx context.Context, runID string, fn func(run *entity.Run)) error
	GetRun(ctx context.Context, runID string) (entity.Run, error)
	DeleteRun(ctx context.Context, runID string) error
}

type Runner interface {
	TryGo(ctx context.Context, f func(ctx context.Context) error) bool
}

type Clock interface {
	Now() time.Time
}

type Dependency struct {
	Registry  entity.Registry
	Objects   ObjectStore
	Ledger    Ledger
	Runs      RunStore
	Runner    Runner
	Clock     Clock
	RunID     pkguid.StringID
	AttemptID pkguid.StringID
	Logger    *slog.Logger
	// Prefix is the first segment of every upload key.
	Prefix  string
	Retry   RetryPolicy
	RootCtx context.Context
}

type Usecase struct {
	registry  entity.Registry
	objects   ObjectStore
	ledger    Ledger
	runs      RunStore
	runner    Runner
	clock     Clock
	runID     pkguid.StringID
	attemptID pkguid.StringID
	logger    *slog.Logger
	prefix    string
	retry     RetryPolicy
	sleep     func(ctx context.Context, d time.Duration) error
	rootCtx   context.Context
}

func New(dep Dependency) *Usecase {
	root := dep.RootCtx
	if root == nil {
		root = context.Background()
	}

	clock := dep.Clock
	if clock == nil {
		clock = realClock{}
	}

	logger := dep.Logger
	if logger == nil {
		logger = slog.Default()
	}

	runID := dep.RunID
	if runID == nil {
		runID = pkguid.NewUUID()
	}

	attemptID := dep.AttemptID
	if attemptID == nil {
		attemptID = runID
	}

	retry := dep.Retry
	if retry.MaxRetries < 0 {
		retry.MaxRetries = 0
	}
	if retry.BaseBackoff <= 0 {
		retry.BaseBackoff = 200 * time.Millisecond
	}

	return &Usecase{
		registry:  dep.Registry,
		objects:   dep.Objects,
		ledger:    dep.Ledger,
		runs:      dep.Runs,
		runner:    dep.Runner,
		clock:     clock,
		runID:     runID,
		attemptID: attemptID,
		logger:    logger,
		prefix:    dep.Prefix,
		retry:     retry,
		sleep:     sleepContext,
		rootCtx:   root,
	}
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// Run ingests every registered dataset once, in registry order, and returns
// the per-dataset outcomes. A failing dataset never stops the batch and Run
// itself never fails.
func (u *Usecase) Run(ctx context.Context) entity.Run {
	return u.execute(ctx, u.runID.Generate())
}

// StartRun schedules a run in the background. Only one run may execute at a
// time because the ledger has a single writer.
func (u *Usecase) StartRun(ctx context.Context) (RunResult, error) {
	if u.runs == nil || u.runner == nil {
		return RunResult{}, pkgerror.NewServer(errors.New("missing dependency"))
	}

	runID := u.runID.Generate()
	if err := u.runs.CreateRun(ctx, entity.Run{ID: runID, Status: entity.RunStatusQueued}); err != nil {
		return RunResult{}, normalizeErr(err)
	}

	accepted := u.runner.TryGo(u.rootCtx, func(ctx context.Context) error {
		if err := u.runs.UpdateRun(ctx, runID, func(run *entity.Run) {
			run.Status = entity.RunStatusProcessing
		}); err != nil {
			return err
		}

		result := u.execute(ctx, runID)

		return u.runs.UpdateRun(ctx, runID, func(run *entity.Run) {
			*run = result
		})
	})
	if !accepted {
		if err := u.runs.DeleteRun(ctx, runID); err != nil {
			u.logger.WarnContext(ctx, "failed to discard rejected run", "run_id", runID, "error", err)
		}
		return RunResult{}, pkgerror.NewBusiness(pkgerror.ErrRunInProgress.Error(), pkgerror.CodeConflict)
	}

	return RunResult{RunID: runID}, nil
}

func (u *Usecase) GetRun(ctx context.Context, runID string) (entity.Run, error) {
	if runID == "" {
		return entity.Run{}, pkgerror.NewInvalidInput(errors.New("run_id is required"))
	}

	run, err := u.runs.GetRun(ctx, runID)
	if err != nil {
		return entity.Run{}, mapStoreErr(err)
	}

	return run, nil
}

func (u *Usecase) ListLedger(ctx context.Context, filter LedgerFilter, page, pageSize int) (LedgerResult, error) {
	if page < 1 || pageSize < 1 {
		return LedgerResult{}, pkgerror.NewInvalidInput(errors.New("invalid pagination"))
	}

	entries, total, err := u.ledger.List(ctx, filter, page, pageSize)
	if err != nil {
		return LedgerResult{}, normalizeErr(err)
	}

	return LedgerResult{
		Entries:  entries,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}, nil
}

func (u *Usecase) execute(ctx context.Context, runID string) entity.Run {
	ctx = pkglog.SetRunID(ctx, runID)

	run := entity.Run{
		ID:        runID,
		Status:    entity.RunStatusProcessing,
		StartedAt: u.clock.Now().UTC(),
	}

	u.logger.InfoContext(ctx, "starting multi-dataset ingestion", "datasets", u.registry.Len())

	for _, ds := range u.registry.Datasets() {
		outcome := u.ingest(ctx, ds)
		if outcome.Err != nil {
			u.logger.ErrorContext(ctx, "failed to ingest dataset",
				"dataset", ds.Name,
				"attempt_id", outcome.AttemptID,
				"error_kind", pkgerror.CodeOf(outcome.Err).String(),
				"error", outcome.Err,
			)
		}
		run.Outcomes = append(run.Outcomes, outcome)
	}

	run.Status = entity.RunStatusDone
	run.EndedAt = u.clock.Now().UTC()

	succeeded, failures := run.Counts()
	u.logger.InfoContext(ctx, "ingestion completed for all datasets", "succeeded", succeeded, "failed", failures)

	return run
}

// ingest moves one dataset through validate, upload and ledger. Any error,
// including a panic, ends the attempt in DatasetStateFailed.
func (u *Usecase) ingest(ctx context.Context, ds entity.Dataset) (out entity.DatasetOutcome) {
	out = entity.DatasetOutcome{
		Dataset:   ds.Name,
		AttemptID: u.attemptID.Generate(),
		State:     entity.DatasetStatePending,
	}
	logger := u.logger.With("dataset", ds.Name, "attempt_id", out.AttemptID)

	defer func() {
		if rvr := recover(); rvr != nil {
			out.State = entity.DatasetStateFailed
			out.Err = pkgerror.NewServer(fmt.Errorf("panic: %v", rvr))
		}
	}()

	table, err := ValidateSchema(ds.Path, ds.ExpectedColumns)
	if err != nil {
		return failed(out, err)
	}
	out.State = entity.DatasetStateValidated
	out.RowCount = table.RowCount()
	logger.InfoContext(ctx, "validated schema", "path", ds.Path, "rows", out.RowCount)

	key, err := u.upload(ctx, logger, ds)
	if err != nil {
		return failed(out, err)
	}
	out.State = entity.DatasetStateUploaded
	out.Key = key

	if err := u.ledger.Append(ctx, entity.LedgerEntry{
		Dataset:   ds.Name,
		FileName:  filepath.Base(ds.Path),
		RowCount:  out.RowCount,
		Key:       key,
		Status:    entity.LedgerStatusSuccess,
		Timestamp: u.clock.Now().UTC(),
	}); err != nil {
		return failed(out, err)
	}
	out.State = entity.DatasetStateLogged

	return out
}

func failed(out entity.DatasetOutcome, err error) entity.DatasetOutcome {
	out.State = entity.DatasetStateFailed
	out.Err = err
	return out
}

func mapStoreErr(err error) error {
	if errors.Is(err, pkgerror.ErrNotFound) {
		return pkgerror.NewBusiness("run not found", pkgerror.CodeNotFound)
	}
	return normalizeErr(err)
}

func normalizeErr(err error) error {
	var perr *pkgerror.Error
	if errors.As(err, &perr) {
		return perr
	}
	return pkgerror.NewServer(err)
}
