// File: internal/api/projects.go
package api

import (
	"context"
	"net/http"
	"net/url"

	"strata/pkg/resource"
)

type projectEnvelope struct {
	Project *resource.Project `json:"project" validate:"required"`
}

type projectListEnvelope struct {
	Projects []resource.Project `json:"projects" validate:"required,dive"`
}

func (c *Client) CreateProject(ctx context.Context, name, token string) (resource.Project, error) {
	body, err := jsonBody(map[string]string{"projectName": name})
	if err != nil {
		return resource.Project{}, err
	}

	var env projectEnvelope
	err = c.do(ctx, request{
		route:       "project.create",
		method:      http.MethodPost,
		path:        "/project/create",
		token:       token,
		body:        body,
		contentType: "application/json",
	}, &env)
	if err != nil {
		return resource.Project{}, err
	}
	return *env.Project, nil
}

func (c *Client) ListProjects(ctx context.Context, token string) ([]resource.Project, error) {
	var env projectListEnvelope
	err := c.do(ctx, request{
		route:  "project.list",
		method: http.MethodGet,
		path:   "/project/list",
		token:  token,
	}, &env)
	if err != nil {
		return nil, err
	}
	return env.Projects, nil
}

func (c *Client) RenameProject(ctx context.Context, id, newName, token string) error {
	body, err := jsonBody(map[string]string{"newProjectName": newName})
	if err != nil {
		return err
	}

	return c.do(ctx, request{
		route:       "project.rename",
		method:      http.MethodPatch,
		path:        "/project/" + url.PathEscape(id),
		token:       token,
		body:        body,
		contentType: "application/json",
	}, nil)
}

func (c *Client) DeleteProject(ctx context.Context, id, token string) error {
	return c.do(ctx, request{
		route:  "project.delete",
		method: http.MethodDelete,
		path:   "/project/" + url.PathEscape(id),
		token:  token,
	}, nil)
}
