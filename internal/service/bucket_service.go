// File: internal/service/bucket_service.go
package service

import (
	"context"
	"log/slog"
	"sync"

	"strata/internal/state"
	"strata/pkg/resource"
)

// BucketAPI is the remote surface BucketService depends on
type BucketAPI interface {
	CreateBucket(ctx context.Context, projectID, name, token string) (resource.Bucket, error)
	ListBuckets(ctx context.Context, projectID, token string) ([]resource.Bucket, error)
	RenameBucket(ctx context.Context, id, newName, token string) error
	DeleteBucket(ctx context.Context, id, token string) error
}

// BucketService owns the shared bucket collection, scoped to one project at a time
type BucketService struct {
	api        BucketAPI
	aggregator *UsageAggregator
	store      *state.Store[resource.Bucket]
	logger     *slog.Logger

	mu        sync.Mutex
	onDeleted []func(resource.Bucket)
}

// Creates a new BucketService. A nil aggregator skips the usage pass
func NewBucketService(api BucketAPI, aggregator *UsageAggregator, logger *slog.Logger) *BucketService {
	return &BucketService{
		api:        api,
		aggregator: aggregator,
		store:      state.NewStore[resource.Bucket](),
		logger:     logger.With("service", "BucketService"),
	}
}

// Returns the shared bucket collection
func (s *BucketService) Store() *state.Store[resource.Bucket] {
	return s.store
}

// OnDeleted registers fn to run after a bucket delete succeeds.
// fn receives the cached bucket when known, otherwise only its id.
func (s *BucketService) OnDeleted(fn func(resource.Bucket)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onDeleted = append(s.onDeleted, fn)
}

// List replaces the collection with the project's buckets, then attaches usage totals.
// The usage pass is published only while this listing is still the latest one.
func (s *BucketService) List(ctx context.Context, projectID, token string) error {
	if token == "" {
		return ErrMissingToken
	}
	if projectID == "" {
		return ErrMissingScope
	}

	s.logger.Debug("Starting List operation", "project", projectID)

	seq := s.store.BeginList()
	buckets, err := s.api.ListBuckets(ctx, projectID, token)
	if err != nil {
		s.logger.Error("Failed to list buckets", "project", projectID, "error", err)
		s.store.FinishList(seq, projectID, nil, MsgListBuckets)
		return opError(MsgListBuckets, err)
	}

	if !s.store.FinishList(seq, projectID, buckets, "") {
		s.logger.Debug("Discarded stale bucket listing", "project", projectID)
		return nil
	}

	if s.aggregator == nil {
		return nil
	}

	withUsage := s.aggregator.Aggregate(ctx, buckets, token)
	if !s.store.MutateIfLatest(seq, state.Merge(withUsage, attachUsage)) {
		s.logger.Debug("Discarded stale bucket usage", "project", projectID)
	}
	return nil
}

// attachUsage copies only the usage total so concurrent renames survive
func attachUsage(current, computed resource.Bucket) resource.Bucket {
	if computed.HasUsage() {
		current.TotalSizeMB = computed.TotalSizeMB
	}
	return current
}

// Creates a bucket under projectID and appends it
func (s *BucketService) Create(ctx context.Context, projectID, name, token string) (resource.Bucket, error) {
	if token == "" {
		return resource.Bucket{}, ErrMissingToken
	}
	if projectID == "" {
		return resource.Bucket{}, ErrMissingScope
	}
	if name == "" {
		return resource.Bucket{}, ErrEmptyName
	}

	s.logger.Debug("Starting Create operation", "project", projectID, "name", name)

	s.store.Begin()
	bucket, err := s.api.CreateBucket(ctx, projectID, name, token)
	if err != nil {
		s.logger.Error("Failed to create bucket", "project", projectID, "name", name, "error", err)
		s.store.Fail(MsgCreateBucket)
		return resource.Bucket{}, opError(MsgCreateBucket, err)
	}

	s.store.Commit(state.Append(bucket))
	return bucket, nil
}

// Rename updates the bucket's name in place once the server accepts it
func (s *BucketService) Rename(ctx context.Context, id, newName, token string) error {
	if token == "" {
		return ErrMissingToken
	}
	if id == "" {
		return ErrMissingScope
	}
	if newName == "" {
		return ErrEmptyName
	}

	s.logger.Debug("Starting Rename operation", "bucket", id, "name", newName)

	s.store.Begin()
	if err := s.api.RenameBucket(ctx, id, newName, token); err != nil {
		s.logger.Error("Failed to rename bucket", "bucket", id, "error", err)
		s.store.Fail(MsgRenameBucket)
		return opError(MsgRenameBucket, err)
	}

	s.store.Commit(state.Patch(id, func(b resource.Bucket) resource.Bucket {
		b.Name = newName
		return b
	}))
	return nil
}

// Delete removes the bucket and then runs the OnDeleted hooks
func (s *BucketService) Delete(ctx context.Context, id, token string) error {
	if token == "" {
		return ErrMissingToken
	}
	if id == "" {
		return ErrMissingScope
	}

	s.logger.Debug("Starting Delete operation", "bucket", id)

	s.store.Begin()
	if err := s.api.DeleteBucket(ctx, id, token); err != nil {
		s.logger.Error("Failed to delete bucket", "bucket", id, "error", err)
		s.store.Fail(MsgDeleteBucket)
		return opError(MsgDeleteBucket, err)
	}

	deleted, ok := s.store.Snapshot().Find(id)
	if !ok {
		deleted = resource.Bucket{ID: id}
	}
	s.store.Commit(state.Remove[resource.Bucket](id))

	s.mu.Lock()
	hooks := append([]func(resource.Bucket){}, s.onDeleted...)
	s.mu.Unlock()
	for _, fn := range hooks {
		fn(deleted)
	}
	return nil
}

// EvictProject drops every cached bucket owned by projectID
func (s *BucketService) EvictProject(projectID string) {
	s.logger.Debug("Evicting buckets of deleted project", "project", projectID)
	s.store.Mutate(state.RemoveWhere(func(b resource.Bucket) bool {
		return b.ProjectID == projectID
	}))
	s.store.ResetScope(projectID)
}
