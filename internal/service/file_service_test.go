// File: internal/service/file_service_test.go

package service

import (
	"context"
	"strings"
	"testing"

	"strata/pkg/resource"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileOperationsBlockedWhenResolveFails(t *testing.T) {
	fake := newFakeAPI()
	fake.setFail("bucket.access_key", errServer)
	resolver := NewAccessKeyResolver(fake, discardLogger())
	files := NewFileService(fake, discardLogger())
	ctx := context.Background()

	key, ok := resolver.Resolve(ctx, "b1", "tok")
	require.False(t, ok)
	assert.True(t, key.IsZero())

	assert.ErrorIs(t, files.List(ctx, key, "tok"), ErrMissingScope)
	assert.ErrorIs(t, files.Delete(ctx, key, "f1", "tok"), ErrMissingScope)
	_, err := files.Upload(ctx, key, "a.txt", strings.NewReader("x"), "tok")
	assert.ErrorIs(t, err, ErrMissingScope)

	assert.Zero(t, fake.count("file.list"))
	assert.Zero(t, fake.count("file.delete"))
	assert.Zero(t, fake.count("file.upload"))
}

func TestResolverRejectsEmptyKey(t *testing.T) {
	fake := newFakeAPI()
	resolver := NewAccessKeyResolver(fake, discardLogger())

	_, ok := resolver.Resolve(context.Background(), "b1", "tok")
	assert.False(t, ok)
}

func TestResolverNeverCaches(t *testing.T) {
	fake := newFakeAPI()
	fake.keys["b1"] = "k1"
	resolver := NewAccessKeyResolver(fake, discardLogger())

	for i := 0; i < 2; i++ {
		key, ok := resolver.Resolve(context.Background(), "b1", "tok")
		require.True(t, ok)
		assert.Equal(t, "k1", key.String())
	}
	assert.Equal(t, 2, fake.count("bucket.access_key"))
}

func TestResolverWithoutTokenIssuesNoRequest(t *testing.T) {
	fake := newFakeAPI()
	resolver := NewAccessKeyResolver(fake, discardLogger())

	_, ok := resolver.Resolve(context.Background(), "b1", "")
	assert.False(t, ok)
	assert.Zero(t, fake.total())
}

func TestFileListUploadRenameDelete(t *testing.T) {
	fake := newFakeAPI()
	fake.files["k1"] = []resource.File{{ID: "f1", Name: "a.txt"}, {ID: "f2", Name: "b.txt"}}
	svc := NewFileService(fake, discardLogger())
	ctx := context.Background()
	key := mustKey("k1")

	require.NoError(t, svc.List(ctx, key, "tok"))
	assert.Equal(t, "k1", svc.Store().Snapshot().Scope)

	uploaded, err := svc.Upload(ctx, key, "c.txt", strings.NewReader("hello"), "tok")
	require.NoError(t, err)
	assert.Equal(t, int64(5), uploaded.Size)

	require.NoError(t, svc.Rename(ctx, "f1", "a2.txt", "tok"))
	require.NoError(t, svc.Delete(ctx, key, "f2", "tok"))

	items := svc.Store().Snapshot().Items
	require.Len(t, items, 2)
	assert.Equal(t, "a2.txt", items[0].Name)
	assert.Equal(t, uploaded.ID, items[1].ID)
}

func TestFileDeleteFailureLeavesItems(t *testing.T) {
	fake := newFakeAPI()
	fake.files["k1"] = []resource.File{{ID: "f1"}}
	svc := NewFileService(fake, discardLogger())
	ctx := context.Background()
	key := mustKey("k1")
	require.NoError(t, svc.List(ctx, key, "tok"))

	fake.setFail("file.delete", errServer)
	err := svc.Delete(ctx, key, "f1", "tok")
	assert.EqualError(t, err, MsgDeleteFile)

	snap := svc.Store().Snapshot()
	assert.Len(t, snap.Items, 1)
	assert.Equal(t, MsgDeleteFile, snap.Err)
}

func TestEvictAccessKey(t *testing.T) {
	fake := newFakeAPI()
	fake.files["k1"] = []resource.File{{ID: "f1"}}
	svc := NewFileService(fake, discardLogger())
	require.NoError(t, svc.List(context.Background(), mustKey("k1"), "tok"))

	svc.EvictAccessKey("k2")
	assert.Len(t, svc.Store().Snapshot().Items, 1)

	svc.EvictAccessKey("k1")
	assert.Empty(t, svc.Store().Snapshot().Items)
}

func TestAggregatorRespectsLimit(t *testing.T) {
	fake := newFakeAPI()
	buckets := make([]resource.Bucket, 0, 6)
	for _, k := range []string{"k1", "k2", "k3", "k4", "k5", "k6"} {
		buckets = append(buckets, resource.Bucket{ID: "b-" + k, AccessKey: k})
		fake.files[k] = []resource.File{{ID: "f-" + k, Size: 524288}}
	}
	aggregator := NewUsageAggregator(fake, 2, discardLogger())

	out := aggregator.Aggregate(context.Background(), buckets, "tok")

	require.Len(t, out, 6)
	for _, b := range out {
		assert.Equal(t, "0.50", b.TotalSizeMB)
	}
	for _, b := range buckets {
		assert.False(t, b.HasUsage(), "input must not be modified")
	}
}
