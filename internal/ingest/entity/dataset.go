package entity

import (
	"errors"
	"fmt"
	"slices"
)

// Dataset describes one source file and the exact ordered header it must carry.
type Dataset struct {
	Name            string
	Path            string
	ExpectedColumns []string
}

// Registry is the ordered, immutable set of datasets processed by a run.
type Registry struct {
	datasets []Dataset
}

// NewRegistry validates and copies the descriptors. Names must be unique and
// non-empty, and every descriptor needs a path and at least one column.
func NewRegistry(datasets ...Dataset) (Registry, error) {
	seen := make(map[string]struct{}, len(datasets))
	out := make([]Dataset, 0, len(datasets))

	for _, ds := range datasets {
		if ds.Name == "" {
			return Registry{}, errors.New("dataset name is required")
		}
		if _, dup := seen[ds.Name]; dup {
			return Registry{}, fmt.Errorf("dataset %q is registered twice", ds.Name)
		}
		if ds.Path == "" {
			return Registry{}, fmt.Errorf("dataset %q has no path", ds.Name)
		}
		if len(ds.ExpectedColumns) == 0 {
			return Registry{}, fmt.Errorf("dataset %q has no expected columns", ds.Name)
		}
		seen[ds.Name] = struct{}{}

		ds.ExpectedColumns = slices.Clone(ds.ExpectedColumns)
		out = append(out, ds)
	}

	return Registry{datasets: out}, nil
}

// Datasets returns a copy of the descriptors in registration order.
func (r Registry) Datasets() []Dataset {
	out := make([]Dataset, len(r.datasets))
	for i, ds := range r.datasets {
		ds.ExpectedColumns = slices.Clone(ds.ExpectedColumns)
		out[i] = ds
	}
	return out
}

func (r Registry) Len() int {
	return len(r.datasets)
}

// DefaultDatasets is the compiled-in retail registry. Paths are relative to
// the working directory.
func DefaultDatasets() []Dataset {
	return []Dataset{
		{
			Name: "invoices",
			Path: "test_data/invoices.csv",
			ExpectedColumns: []string{
				"invoice_id", "customer_id", "item_id",
				"quantity", "rate", "amount",
				"invoice_date", "due_date", "status",
			},
		},
		{
			Name: "customers",
			Path: "test_data/customers.csv",
			ExpectedColumns: []string{
				"customer_id", "customer_name", "email",
				"phone", "region", "created_date", "customer_type",
			},
		},
		{
			Name: "items",
			Path: "test_data/items.csv",
			ExpectedColumns: []string{
				"item_id", "item_name", "item_type",
				"category", "unit_price", "taxable",
			},
		},
	}
}
