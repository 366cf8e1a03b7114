package usecase

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shandysiswandi/retailingest/internal/ingest/entity"
	"github.com/shandysiswandi/retailingest/internal/ingest/storage"
	"github.com/shandysiswandi/retailingest/internal/pkg/pkgerror"
	"github.com/shandysiswandi/retailingest/internal/pkg/pkglog"
)

// upload puts the dataset file under its date-partitioned key. The key is
// computed once so retries target the same object.
func (u *Usecase) upload(ctx context.Context, logger *slog.Logger, ds entity.Dataset) (string, error) {
	key := UploadKey(u.prefix, ds.Name, filepath.Base(ds.Path), u.clock.Now())
	location := u.objects.Location(key)
	meta := storage.Metadata{
		ContentType: "text/csv",
		Attributes: map[string]string{
			"dataset": ds.Name,
			"run-id":  pkglog.GetRunID(ctx),
		},
	}

	backoff := u.retry.BaseBackoff
	for attempt := 0; ; attempt++ {
		err := u.putFile(ctx, ds.Path, key, meta)
		if err == nil {
			logger.InfoContext(ctx, "uploaded object", "location", location)
			return key, nil
		}
		if pkgerror.Is(err, pkgerror.CodeFileAccess) {
			return "", err
		}

		uploadErr := pkgerror.NewUpload(location, err)
		if attempt >= u.retry.MaxRetries {
			return "", uploadErr
		}

		logger.WarnContext(ctx, "upload attempt failed, retrying", "attempt", attempt+1, "backoff", backoff, "error", err)
		if err := u.sleep(ctx, backoff); err != nil {
			return "", uploadErr
		}
		backoff *= 2
	}
}

func (u *Usecase) putFile(ctx context.Context, path, key string, meta storage.Metadata) error {
	f, err := os.Open(path)
	if err != nil {
		return pkgerror.NewFileAccess(path, err)
	}
	defer f.Close()

	return u.objects.Put(ctx, key, f, meta)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
