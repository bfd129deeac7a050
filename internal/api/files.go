// File: internal/api/files.go
package api

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"strata/pkg/resource"
)

type fileEnvelope struct {
	File *resource.File `json:"file" validate:"required"`
}

type fileListEnvelope struct {
	Files []resource.File `json:"files" validate:"required,dive"`
}

func (c *Client) ListFiles(ctx context.Context, key resource.AccessKey, token string) ([]resource.File, error) {
	if key.IsZero() {
		return nil, ErrZeroAccessKey
	}

	var env fileListEnvelope
	err := c.do(ctx, request{
		route:  "file.list",
		method: http.MethodGet,
		path:   "/files/files/" + url.PathEscape(key.String()),
		token:  token,
	}, &env)
	if err != nil {
		return nil, err
	}
	return env.Files, nil
}

// UploadFile streams content as a multipart form with the fields "file" and "accessKey"
func (c *Client) UploadFile(ctx context.Context, key resource.AccessKey, fileName string, content io.Reader, token string) (resource.File, error) {
	if key.IsZero() {
		return resource.File{}, ErrZeroAccessKey
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeUploadForm(mw, key, fileName, content))
	}()

	var env fileEnvelope
	err := c.do(ctx, request{
		route:       "file.upload",
		method:      http.MethodPost,
		path:        "/files/upload",
		token:       token,
		body:        pr,
		contentType: mw.FormDataContentType(),
	}, &env)
	// Unblocks the writer if the request ended before the body was consumed
	pr.Close()
	if err != nil {
		return resource.File{}, err
	}
	return *env.File, nil
}

func writeUploadForm(mw *multipart.Writer, key resource.AccessKey, fileName string, content io.Reader) error {
	if err := mw.WriteField("accessKey", key.String()); err != nil {
		return fmt.Errorf("failed to write accessKey field: %w", err)
	}
	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return fmt.Errorf("failed to write file content: %w", err)
	}
	return mw.Close()
}

func (c *Client) RenameFile(ctx context.Context, id, newName, token string) error {
	body, err := jsonBody(map[string]string{"newFileName": newName})
	if err != nil {
		return err
	}

	return c.do(ctx, request{
		route:       "file.rename",
		method:      http.MethodPut,
		path:        "/files/update/" + url.PathEscape(id),
		token:       token,
		body:        body,
		contentType: "application/json",
	}, nil)
}

func (c *Client) DeleteFile(ctx context.Context, key resource.AccessKey, id, token string) error {
	if key.IsZero() {
		return ErrZeroAccessKey
	}

	return c.do(ctx, request{
		route:  "file.delete",
		method: http.MethodDelete,
		path:   "/files/" + url.PathEscape(key.String()) + "/" + url.PathEscape(id),
		token:  token,
	}, nil)
}
