package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shandysiswandi/retailingest/internal/ingest/entity"
	"github.com/shandysiswandi/retailingest/internal/ingest/inbound"
	"github.com/shandysiswandi/retailingest/internal/ingest/storage"
	"github.com/shandysiswandi/retailingest/internal/ingest/store"
	"github.com/shandysiswandi/retailingest/internal/ingest/usecase"
	"github.com/shandysiswandi/retailingest/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/retailingest/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/retailingest/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/retailingest/internal/pkg/pkguid"
)

type Dependency struct {
	Config    pkgconfig.Config
	Logger    *slog.Logger
	Goroutine *pkgroutine.Manager
	// Router is nil in batch mode; no endpoints are registered then.
	Router  *pkgrouter.Router
	Context context.Context
	ID      pkguid.StringID
	// AttemptID defaults to a snowflake generator with a random node.
	AttemptID pkguid.StringID
}

// Module is the wired ingestion pipeline.
type Module struct {
	uc *usecase.Usecase
}

// Run executes one batch over every registered dataset.
func (m *Module) Run(ctx context.Context) entity.Run {
	return m.uc.Run(ctx)
}

type datasetConfig struct {
	Name            string   `mapstructure:"name"`
	Path            string   `mapstructure:"path"`
	ExpectedColumns []string `mapstructure:"expected_columns"`
}

func New(dep Dependency) (*Module, error) {
	if dep.Logger == nil {
		dep.Logger = slog.Default()
	}
	if dep.Context == nil {
		dep.Context = context.Background()
	}
	if dep.ID == nil {
		dep.ID = pkguid.NewUUID()
	}
	if dep.AttemptID == nil {
		sf, err := pkguid.NewSnowflake(-1)
		if err != nil {
			return nil, fmt.Errorf("attempt id generator: %w", err)
		}
		dep.AttemptID = sf.Strings()
	}

	registry, err := loadRegistry(dep.Config)
	if err != nil {
		return nil, err
	}

	objects, err := storage.Open(dep.Context, storage.Config{
		Provider:        dep.Config.GetString("storage.provider"),
		Bucket:          dep.Config.GetString("storage.bucket"),
		Region:          dep.Config.GetString("storage.region"),
		Endpoint:        dep.Config.GetString("storage.endpoint"),
		ForcePathStyle:  dep.Config.GetBool("storage.force_path_style"),
		AccessKeyID:     dep.Config.GetString("storage.access_key_id"),
		SecretAccessKey: dep.Config.GetString("storage.secret_access_key"),
		SessionToken:    dep.Config.GetString("storage.session_token"),
		BasePath:        dep.Config.GetString("storage.base_path"),
	})
	if err != nil {
		return nil, fmt.Errorf("object store: %w", err)
	}

	var runner usecase.Runner
	if dep.Goroutine != nil {
		runner = dep.Goroutine
	}

	uc := usecase.New(usecase.Dependency{
		Registry:  registry,
		Objects:   objects,
		Ledger:    store.NewCSVLedger(dep.Config.GetString("ledger.path"), dep.Logger),
		Runs:      store.NewInMemoryRunStore(),
		Runner:    runner,
		RunID:     dep.ID,
		AttemptID: dep.AttemptID,
		Logger:    dep.Logger,
		Prefix:    dep.Config.GetString("storage.prefix"),
		Retry: usecase.RetryPolicy{
			MaxRetries:  int(dep.Config.GetInt("upload.max_retries")),
			BaseBackoff: dep.Config.GetDuration("upload.base_backoff"),
		},
		RootCtx: dep.Context,
	})

	if dep.Router != nil {
		inbound.RegisterHTTPEndpoint(dep.Router, uc)
	}

	dep.Logger.InfoContext(dep.Context, "ingest module ready",
		"datasets", registry.Len(),
		"destination", objects.Location(dep.Config.GetString("storage.prefix")),
	)

	return &Module{uc: uc}, nil
}

// loadRegistry reads "datasets" from config, or falls back to the built-in
// retail datasets when the key is absent.
func loadRegistry(cfg pkgconfig.Config) (entity.Registry, error) {
	if !cfg.IsSet("datasets") {
		return entity.NewRegistry(entity.DefaultDatasets()...)
	}

	var raw []datasetConfig
	if err := cfg.Unmarshal("datasets", &raw); err != nil {
		return entity.Registry{}, fmt.Errorf("decode datasets: %w", err)
	}

	datasets := make([]entity.Dataset, 0, len(raw))
	for _, d := range raw {
		datasets = append(datasets, entity.Dataset{
			Name:            d.Name,
			Path:            d.Path,
			ExpectedColumns: d.ExpectedColumns,
		})
	}

	return entity.NewRegistry(datasets...)
}
