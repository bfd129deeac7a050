// File: internal/service/access_key_resolver.go
package service

import (
	"context"
	"log/slog"

	"strata/pkg/resource"
)

// AccessKeyAPI fetches a bucket's access key
type AccessKeyAPI interface {
	GetAccessKey(ctx context.Context, bucketID, token string) (resource.AccessKey, error)
}

// AccessKeyResolver maps a bucket id to the key that addresses its files. Results are never cached
type AccessKeyResolver struct {
	api    AccessKeyAPI
	logger *slog.Logger
}

// Creates a new AccessKeyResolver
func NewAccessKeyResolver(api AccessKeyAPI, logger *slog.Logger) *AccessKeyResolver {
	return &AccessKeyResolver{
		api:    api,
		logger: logger.With("service", "AccessKeyResolver"),
	}
}

// Resolve reports false on any failure, including a successful response carrying an empty key
func (r *AccessKeyResolver) Resolve(ctx context.Context, bucketID, token string) (resource.AccessKey, bool) {
	if bucketID == "" || token == "" {
		r.logger.Error("Cannot resolve access key without bucket id and token", "bucket", bucketID)
		return resource.AccessKey{}, false
	}

	r.logger.Debug("Resolving access key", "bucket", bucketID)

	key, err := r.api.GetAccessKey(ctx, bucketID, token)
	if err != nil {
		r.logger.Error("Failed to resolve access key", "bucket", bucketID, "error", err)
		return resource.AccessKey{}, false
	}
	if key.IsZero() {
		r.logger.Error("Server returned an empty access key", "bucket", bucketID)
		return resource.AccessKey{}, false
	}
	return key, true
}
