// File: internal/service/usage_aggregator.go
package service

import (
	"context"
	"log/slog"

	"strata/pkg/resource"

	"golang.org/x/sync/errgroup"
)

// FileLister lists the files addressed by an access key
type FileLister interface {
	ListFiles(ctx context.Context, key resource.AccessKey, token string) ([]resource.File, error)
}

// UsageAggregator derives each bucket's total size from its file listing
type UsageAggregator struct {
	files  FileLister
	limit  int
	logger *slog.Logger
}

// NewUsageAggregator caps concurrent file listings at limit; 0 or less means unbounded
func NewUsageAggregator(files FileLister, limit int, logger *slog.Logger) *UsageAggregator {
	return &UsageAggregator{
		files:  files,
		limit:  limit,
		logger: logger.With("service", "UsageAggregator"),
	}
}

// Aggregate returns a copy of buckets with TotalSizeMB attached wherever the file listing succeeded.
// It waits for every per-bucket query; a failure leaves that bucket as it was.
func (a *UsageAggregator) Aggregate(ctx context.Context, buckets []resource.Bucket, token string) []resource.Bucket {
	out := make([]resource.Bucket, len(buckets))
	copy(out, buckets)
	if len(out) == 0 {
		return out
	}

	a.logger.Debug("Starting Aggregate operation", "buckets", len(out), "limit", a.limit)

	// Failures never cancel sibling queries
	var g errgroup.Group
	if a.limit > 0 {
		g.SetLimit(a.limit)
	}

	for i := range out {
		i := i
		g.Go(func() error {
			bucket := out[i]
			key, ok := resource.NewAccessKey(bucket.AccessKey)
			if !ok {
				a.logger.Error("Bucket has no access key, skipping usage", "bucket", bucket.ID)
				return nil
			}

			files, err := a.files.ListFiles(ctx, key, token)
			if err != nil {
				a.logger.Error("Failed to list files for usage", "bucket", bucket.ID, "error", err)
				return nil
			}

			out[i].TotalSizeMB = resource.FormatMB(resource.TotalSize(files))
			return nil
		})
	}
	_ = g.Wait()

	return out
}
