// File: internal/service/fakes_test.go

package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"strata/internal/api"
	"strata/pkg/resource"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustKey(value string) resource.AccessKey {
	key, ok := resource.NewAccessKey(value)
	if !ok {
		panic("empty access key")
	}
	return key
}

var errServer = fmt.Errorf("GET /x (request r): %w", &api.StatusError{StatusCode: 500})

// fakeAPI is an in-memory stand-in for the remote API. Nil funcs fall back to canned behavior
type fakeAPI struct {
	mu    sync.Mutex
	calls map[string]int

	projects []resource.Project
	buckets  map[string][]resource.Bucket
	files    map[string][]resource.File
	keys     map[string]string

	fail map[string]error
	// listBuckets overrides ListBuckets when set
	listBuckets func(ctx context.Context, projectID string) ([]resource.Bucket, error)
	nextID      int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		calls:   make(map[string]int),
		buckets: make(map[string][]resource.Bucket),
		files:   make(map[string][]resource.File),
		keys:    make(map[string]string),
		fail:    make(map[string]error),
	}
}

func (f *fakeAPI) record(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	return f.fail[op]
}

func (f *fakeAPI) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeAPI) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeAPI) setFail(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[op] = err
}

func (f *fakeAPI) newID(prefix string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	return fmt.Sprintf("%s%d", prefix, f.nextID)
}

func (f *fakeAPI) CreateProject(ctx context.Context, name, token string) (resource.Project, error) {
	if err := f.record("project.create"); err != nil {
		return resource.Project{}, err
	}
	return resource.Project{ID: f.newID("p-new-"), Name: name}, nil
}

func (f *fakeAPI) ListProjects(ctx context.Context, token string) ([]resource.Project, error) {
	if err := f.record("project.list"); err != nil {
		return nil, err
	}
	return append([]resource.Project(nil), f.projects...), nil
}

func (f *fakeAPI) RenameProject(ctx context.Context, id, newName, token string) error {
	return f.record("project.rename")
}

func (f *fakeAPI) DeleteProject(ctx context.Context, id, token string) error {
	return f.record("project.delete")
}

func (f *fakeAPI) CreateBucket(ctx context.Context, projectID, name, token string) (resource.Bucket, error) {
	if err := f.record("bucket.create"); err != nil {
		return resource.Bucket{}, err
	}
	return resource.Bucket{ID: f.newID("b-new-"), Name: name, ProjectID: projectID, AccessKey: "k-new"}, nil
}

func (f *fakeAPI) ListBuckets(ctx context.Context, projectID, token string) ([]resource.Bucket, error) {
	if err := f.record("bucket.list"); err != nil {
		return nil, err
	}
	if f.listBuckets != nil {
		return f.listBuckets(ctx, projectID)
	}
	return append([]resource.Bucket(nil), f.buckets[projectID]...), nil
}

func (f *fakeAPI) RenameBucket(ctx context.Context, id, newName, token string) error {
	return f.record("bucket.rename")
}

func (f *fakeAPI) DeleteBucket(ctx context.Context, id, token string) error {
	return f.record("bucket.delete")
}

func (f *fakeAPI) GetAccessKey(ctx context.Context, bucketID, token string) (resource.AccessKey, error) {
	if err := f.record("bucket.access_key"); err != nil {
		return resource.AccessKey{}, err
	}
	f.mu.Lock()
	value := f.keys[bucketID]
	f.mu.Unlock()
	key, _ := resource.NewAccessKey(value)
	return key, nil
}

func (f *fakeAPI) ListFiles(ctx context.Context, key resource.AccessKey, token string) ([]resource.File, error) {
	if err := f.record("file.list"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.fail["file.list:"+key.String()]; ok {
		return nil, err
	}
	return append([]resource.File(nil), f.files[key.String()]...), nil
}

func (f *fakeAPI) UploadFile(ctx context.Context, key resource.AccessKey, fileName string, content io.Reader, token string) (resource.File, error) {
	if err := f.record("file.upload"); err != nil {
		return resource.File{}, err
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return resource.File{}, err
	}
	return resource.File{ID: f.newID("f-new-"), Name: fileName, Size: int64(len(data))}, nil
}

func (f *fakeAPI) RenameFile(ctx context.Context, id, newName, token string) error {
	return f.record("file.rename")
}

func (f *fakeAPI) DeleteFile(ctx context.Context, key resource.AccessKey, id, token string) error {
	return f.record("file.delete")
}
