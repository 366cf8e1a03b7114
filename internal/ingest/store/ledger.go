package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/shandysiswandi/retailingest/internal/ingest/entity"
	"github.com/shandysiswandi/retailingest/internal/ingest/usecase"
	"github.com/shandysiswandi/retailingest/internal/pkg/pkgerror"
)

// TimestampLayout renders UTC times as ISO-8601 with microseconds and an
// explicit "+00:00" offset.
const TimestampLayout = "2006-01-02T15:04:05.000000-07:00"

var ledgerHeader = []string{"dataset", "filename", "row_count", "s3_key", "status", "timestamp"}

// CSVLedger is the append-only ingestion audit file. It takes no lock; only
// one writer may use a path at a time.
type CSVLedger struct {
	path   string
	logger *slog.Logger
}

func NewCSVLedger(path string, logger *slog.Logger) *CSVLedger {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVLedger{path: path, logger: logger}
}

func (l *CSVLedger) Path() string {
	return l.path
}

// Append writes entry as one row. The header is written only when the file
// is new (or still empty).
func (l *CSVLedger) Append(ctx context.Context, entry entity.LedgerEntry) error {
	if err := l.append(entry); err != nil {
		return pkgerror.NewLedgerWrite(l.path, err)
	}

	l.logger.InfoContext(ctx, "ingestion ledger updated", "path", l.path, "dataset", entry.Dataset)
	return nil
}

func (l *CSVLedger) append(entry entity.LedgerEntry) (err error) {
	if dir := filepath.Dir(l.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(ledgerHeader); err != nil {
			return err
		}
	}
	if err := w.Write(toRecord(entry)); err != nil {
		return err
	}
	w.Flush()

	return w.Error()
}

// List returns entries in file order, filtered and paginated. A missing
// ledger file is an empty ledger.
func (l *CSVLedger) List(ctx context.Context, filter usecase.LedgerFilter, page, pageSize int) ([]entity.LedgerEntry, int, error) {
	f, err := os.Open(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []entity.LedgerEntry{}, 0, nil
	}
	if err != nil {
		return nil, 0, pkgerror.NewServer(err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(ledgerHeader)

	start := (page - 1) * pageSize
	end := start + pageSize
	total := 0
	items := make([]entity.LedgerEntry, 0, pageSize)

	for line := 1; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, pkgerror.NewServer(err)
		}
		if line == 1 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		entry, err := fromRecord(record)
		if err != nil {
			return nil, 0, pkgerror.NewServer(fmt.Errorf("ledger line %d: %w", line, err))
		}
		if !filter.Matches(entry) {
			continue
		}

		if total >= start && total < end {
			items = append(items, entry)
		}
		total++
	}

	return items, total, nil
}

func toRecord(e entity.LedgerEntry) []string {
	return []string{
		e.Dataset,
		e.FileName,
		strconv.Itoa(e.RowCount),
		e.Key,
		string(e.Status),
		e.Timestamp.UTC().Format(TimestampLayout),
	}
}

func fromRecord(record []string) (entity.LedgerEntry, error) {
	rows, err := strconv.Atoi(record[2])
	if err != nil {
		return entity.LedgerEntry{}, fmt.Errorf("invalid row_count: %w", err)
	}

	ts, err := time.Parse(time.RFC3339Nano, record[5])
	if err != nil {
		return entity.LedgerEntry{}, fmt.Errorf("invalid timestamp: %w", err)
	}

	return entity.LedgerEntry{
		Dataset:   record[0],
		FileName:  record[1],
		RowCount:  rows,
		Key:       record[3],
		Status:    entity.LedgerStatus(record[4]),
		Timestamp: ts,
	}, nil
}
