package usecase

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/shandysiswandi/retailingest/internal/ingest/entity"
	"github.com/shandysiswandi/retailingest/internal/pkg/pkgerror"
)

const utf8BOM = "\ufeff"

var errNoColumns = errors.New("no columns to parse from file")

// ValidateSchema loads the CSV file at path and checks that its header equals
// expected exactly: same names, same case, same order.
//
// A file that cannot be opened or parsed yields a CodeFileAccess error; a
// differing header yields a CodeSchemaMismatch error.
func ValidateSchema(path string, expected []string) (entity.Table, error) {
	table, err := loadTable(path)
	if err != nil {
		return entity.Table{}, pkgerror.NewFileAccess(path, err)
	}

	if !slices.Equal(table.Columns, expected) {
		return entity.Table{}, pkgerror.NewSchemaMismatch(describeMismatch(path, expected, table.Columns))
	}

	return table, nil
}

func loadTable(path string) (entity.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return entity.Table{}, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	// short rows and stray quotes are tolerated; only rows wider than the
	// header are malformed
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return entity.Table{}, errNoColumns
	}
	if err != nil {
		return entity.Table{}, err
	}
	header[0] = strings.TrimPrefix(header[0], utf8BOM)

	table := entity.Table{Columns: header}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return entity.Table{}, err
		}
		if len(record) > len(header) {
			line, _ := reader.FieldPos(0)
			return entity.Table{}, fmt.Errorf("line %d: expected %d fields, saw %d", line, len(header), len(record))
		}
		table.Rows = append(table.Rows, record)
	}

	return table, nil
}

func describeMismatch(path string, expected, actual []string) string {
	var missing, unexpected []string
	for _, c := range expected {
		if !slices.Contains(actual, c) {
			missing = append(missing, c)
		}
	}
	for _, c := range actual {
		if !slices.Contains(expected, c) {
			unexpected = append(unexpected, c)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "schema mismatch in %s: expected %v, got %v", path, expected, actual)
	if len(missing) > 0 {
		fmt.Fprintf(&b, "; missing %v", missing)
	}
	if len(unexpected) > 0 {
		fmt.Fprintf(&b, "; unexpected %v", unexpected)
	}
	if len(missing) == 0 && len(unexpected) == 0 {
		b.WriteString("; columns out of order")
	}

	return b.String()
}
