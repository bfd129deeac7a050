// File: internal/service/file_service.go
package service

import (
	"context"
	"io"
	"log/slog"

	"strata/internal/state"
	"strata/pkg/resource"
)

// FileAPI is the remote surface FileService depends on
type FileAPI interface {
	FileLister
	UploadFile(ctx context.Context, key resource.AccessKey, fileName string, content io.Reader, token string) (resource.File, error)
	RenameFile(ctx context.Context, id, newName, token string) error
	DeleteFile(ctx context.Context, key resource.AccessKey, id, token string) error
}

// FileService owns the shared file collection, scoped to one bucket's access key at a time.
// Every operation that addresses a bucket needs a key obtained from an AccessKeyResolver.
type FileService struct {
	api    FileAPI
	store  *state.Store[resource.File]
	logger *slog.Logger
}

// Creates a new FileService with an empty collection
func NewFileService(api FileAPI, logger *slog.Logger) *FileService {
	return &FileService{
		api:    api,
		store:  state.NewStore[resource.File](),
		logger: logger.With("service", "FileService"),
	}
}

// Returns the shared file collection
func (s *FileService) Store() *state.Store[resource.File] {
	return s.store
}

// List replaces the collection with the files addressed by key
func (s *FileService) List(ctx context.Context, key resource.AccessKey, token string) error {
	if token == "" {
		return ErrMissingToken
	}
	if key.IsZero() {
		return ErrMissingScope
	}

	s.logger.Debug("Starting List operation")

	seq := s.store.BeginList()
	files, err := s.api.ListFiles(ctx, key, token)
	if err != nil {
		s.logger.Error("Failed to list files", "error", err)
		s.store.FinishList(seq, key.String(), nil, MsgListFiles)
		return opError(MsgListFiles, err)
	}

	if !s.store.FinishList(seq, key.String(), files, "") {
		s.logger.Debug("Discarded stale file listing", "count", len(files))
		return nil
	}
	s.logger.Debug("Successfully listed files", "count", len(files))
	return nil
}

// Upload sends content under fileName and appends the server's record of it
func (s *FileService) Upload(ctx context.Context, key resource.AccessKey, fileName string, content io.Reader, token string) (resource.File, error) {
	if token == "" {
		return resource.File{}, ErrMissingToken
	}
	if key.IsZero() {
		return resource.File{}, ErrMissingScope
	}
	if fileName == "" {
		return resource.File{}, ErrEmptyName
	}

	s.logger.Debug("Starting Upload operation", "file", fileName)

	s.store.Begin()
	file, err := s.api.UploadFile(ctx, key, fileName, content, token)
	if err != nil {
		s.logger.Error("Failed to upload file", "file", fileName, "error", err)
		s.store.Fail(MsgUploadFile)
		return resource.File{}, opError(MsgUploadFile, err)
	}

	s.store.Commit(state.Append(file))
	return file, nil
}

// Rename updates the file's name in place once the server accepts it
func (s *FileService) Rename(ctx context.Context, id, newName, token string) error {
	if token == "" {
		return ErrMissingToken
	}
	if id == "" {
		return ErrMissingScope
	}
	if newName == "" {
		return ErrEmptyName
	}

	s.logger.Debug("Starting Rename operation", "file", id, "name", newName)

	s.store.Begin()
	if err := s.api.RenameFile(ctx, id, newName, token); err != nil {
		s.logger.Error("Failed to rename file", "file", id, "error", err)
		s.store.Fail(MsgRenameFile)
		return opError(MsgRenameFile, err)
	}

	s.store.Commit(state.Patch(id, func(f resource.File) resource.File {
		f.Name = newName
		return f
	}))
	return nil
}

// Delete removes one file from the bucket addressed by key
func (s *FileService) Delete(ctx context.Context, key resource.AccessKey, id, token string) error {
	if token == "" {
		return ErrMissingToken
	}
	if key.IsZero() || id == "" {
		return ErrMissingScope
	}

	s.logger.Debug("Starting Delete operation", "file", id)

	s.store.Begin()
	if err := s.api.DeleteFile(ctx, key, id, token); err != nil {
		s.logger.Error("Failed to delete file", "file", id, "error", err)
		s.store.Fail(MsgDeleteFile)
		return opError(MsgDeleteFile, err)
	}

	s.store.Commit(state.Remove[resource.File](id))
	return nil
}

// EvictAccessKey clears the collection if it holds the listing for key
func (s *FileService) EvictAccessKey(key string) {
	if s.store.ResetScope(key) {
		s.logger.Debug("Evicted files of deleted bucket")
	}
}
