// File: internal/service/project_service.go
package service

import (
	"context"
	"log/slog"
	"sync"

	"strata/internal/state"
	"strata/pkg/resource"
)

// ProjectAPI is the remote surface ProjectService depends on
type ProjectAPI interface {
	CreateProject(ctx context.Context, name, token string) (resource.Project, error)
	ListProjects(ctx context.Context, token string) ([]resource.Project, error)
	RenameProject(ctx context.Context, id, newName, token string) error
	DeleteProject(ctx context.Context, id, token string) error
}

// ProjectService owns the shared project collection
type ProjectService struct {
	api    ProjectAPI
	store  *state.Store[resource.Project]
	logger *slog.Logger

	mu        sync.Mutex
	onDeleted []func(projectID string)
}

// Creates a new ProjectService with an empty collection
func NewProjectService(api ProjectAPI, logger *slog.Logger) *ProjectService {
	return &ProjectService{
		api:    api,
		store:  state.NewStore[resource.Project](),
		logger: logger.With("service", "ProjectService"),
	}
}

// Returns the shared project collection
func (s *ProjectService) Store() *state.Store[resource.Project] {
	return s.store
}

// OnDeleted registers fn to run after a project delete succeeds
func (s *ProjectService) OnDeleted(fn func(projectID string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onDeleted = append(s.onDeleted, fn)
}

// List replaces the collection with every project visible to token
func (s *ProjectService) List(ctx context.Context, token string) error {
	if token == "" {
		return ErrMissingToken
	}

	s.logger.Debug("Starting List operation")

	seq := s.store.BeginList()
	projects, err := s.api.ListProjects(ctx, token)
	if err != nil {
		s.logger.Error("Failed to list projects", "error", err)
		s.store.FinishList(seq, "", nil, MsgListProjects)
		return opError(MsgListProjects, err)
	}

	if !s.store.FinishList(seq, "", projects, "") {
		s.logger.Debug("Discarded stale project listing", "count", len(projects))
		return nil
	}
	s.logger.Debug("Successfully listed projects", "count", len(projects))
	return nil
}

// Creates a project and appends the server's record of it
func (s *ProjectService) Create(ctx context.Context, name, token string) (resource.Project, error) {
	if token == "" {
		return resource.Project{}, ErrMissingToken
	}
	if name == "" {
		return resource.Project{}, ErrEmptyName
	}

	s.logger.Debug("Starting Create operation", "name", name)

	s.store.Begin()
	project, err := s.api.CreateProject(ctx, name, token)
	if err != nil {
		s.logger.Error("Failed to create project", "name", name, "error", err)
		s.store.Fail(MsgCreateProject)
		return resource.Project{}, opError(MsgCreateProject, err)
	}

	s.store.Commit(state.Append(project))
	return project, nil
}

// Rename updates the project's name in place once the server accepts it
func (s *ProjectService) Rename(ctx context.Context, id, newName, token string) error {
	if token == "" {
		return ErrMissingToken
	}
	if id == "" {
		return ErrMissingScope
	}
	if newName == "" {
		return ErrEmptyName
	}

	s.logger.Debug("Starting Rename operation", "project", id, "name", newName)

	s.store.Begin()
	if err := s.api.RenameProject(ctx, id, newName, token); err != nil {
		s.logger.Error("Failed to rename project", "project", id, "error", err)
		s.store.Fail(MsgRenameProject)
		return opError(MsgRenameProject, err)
	}

	s.store.Commit(state.Patch(id, func(p resource.Project) resource.Project {
		p.Name = newName
		return p
	}))
	return nil
}

// Delete removes the project and then runs the OnDeleted hooks
func (s *ProjectService) Delete(ctx context.Context, id, token string) error {
	if token == "" {
		return ErrMissingToken
	}
	if id == "" {
		return ErrMissingScope
	}

	s.logger.Debug("Starting Delete operation", "project", id)

	s.store.Begin()
	if err := s.api.DeleteProject(ctx, id, token); err != nil {
		s.logger.Error("Failed to delete project", "project", id, "error", err)
		s.store.Fail(MsgDeleteProject)
		return opError(MsgDeleteProject, err)
	}

	s.store.Commit(state.Remove[resource.Project](id))

	s.mu.Lock()
	hooks := append([]func(string){}, s.onDeleted...)
	s.mu.Unlock()
	for _, fn := range hooks {
		fn(id)
	}
	return nil
}
