package store

import (
	"context"
	"slices"
	"sync"

	"github.com/shandysiswandi/retailingest/internal/ingest/entity"
	"github.com/shandysiswandi/retailingest/internal/pkg/pkgerror"
)

// InMemoryRunStore keeps run metadata for the lifetime of the process.
type InMemoryRunStore struct {
	mu   sync.RWMutex
	runs map[string]*runRecord
}

type runRecord struct {
	mu  sync.RWMutex
	run entity.Run
}

func NewInMemoryRunStore() *InMemoryRunStore {
	return &InMemoryRunStore{
		runs: make(map[string]*runRecord),
	}
}

func (s *InMemoryRunStore) CreateRun(ctx context.Context, run entity.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.runs[run.ID]; exists {
		return pkgerror.NewBusiness("run already exists", pkgerror.CodeConflict)
	}

	s.runs[run.ID] = &runRecord{run: run}

	return nil
}

func (s *InMemoryRunStore) UpdateRun(ctx context.Context, runID string, fn func(run *entity.Run)) error {
	rec, err := s.get(runID)
	if err != nil {
		return err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	fn(&rec.run)

	return nil
}

// GetRun returns a copy; callers cannot mutate stored outcomes.
func (s *InMemoryRunStore) GetRun(ctx context.Context, runID string) (entity.Run, error) {
	rec, err := s.get(runID)
	if err != nil {
		return entity.Run{}, err
	}

	rec.mu.RLock()
	defer rec.mu.RUnlock()

	run := rec.run
	run.Outcomes = slices.Clone(rec.run.Outcomes)

	return run, nil
}

func (s *InMemoryRunStore) DeleteRun(ctx context.Context, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.runs[runID]; !ok {
		return pkgerror.ErrNotFound
	}
	delete(s.runs, runID)

	return nil
}

func (s *InMemoryRunStore) get(runID string) (*runRecord, error) {
	s.mu.RLock()
	rec, ok := s.runs[runID]
	s.mu.RUnlock()
	if !ok {
		return nil, pkgerror.ErrNotFound
	}

	return rec, nil
}
