// File: internal/api/buckets.go
package api

import (
	"context"
	"net/http"
	"net/url"

	"strata/pkg/resource"
)

type bucketEnvelope struct {
	Bucket *resource.Bucket `json:"bucket" validate:"required"`
}

type bucketListEnvelope struct {
	Buckets []resource.Bucket `json:"buckets" validate:"required,dive"`
}

func (c *Client) CreateBucket(ctx context.Context, projectID, name, token string) (resource.Bucket, error) {
	body, err := jsonBody(map[string]string{
		"projectId":  projectID,
		"bucketName": name,
	})
	if err != nil {
		return resource.Bucket{}, err
	}

	var env bucketEnvelope
	err = c.do(ctx, request{
		route:       "bucket.create",
		method:      http.MethodPost,
		path:        "/bucket/create-bucket",
		token:       token,
		body:        body,
		contentType: "application/json",
	}, &env)
	if err != nil {
		return resource.Bucket{}, err
	}
	return *env.Bucket, nil
}

func (c *Client) ListBuckets(ctx context.Context, projectID, token string) ([]resource.Bucket, error) {
	var env bucketListEnvelope
	err := c.do(ctx, request{
		route:  "bucket.list",
		method: http.MethodGet,
		path:   "/bucket/list-buckets/" + url.PathEscape(projectID),
		token:  token,
	}, &env)
	if err != nil {
		return nil, err
	}
	return env.Buckets, nil
}

func (c *Client) RenameBucket(ctx context.Context, id, newName, token string) error {
	body, err := jsonBody(map[string]string{"newBucketName": newName})
	if err != nil {
		return err
	}

	return c.do(ctx, request{
		route:       "bucket.rename",
		method:      http.MethodPut,
		path:        "/bucket/update/" + url.PathEscape(id),
		token:       token,
		body:        body,
		contentType: "application/json",
	}, nil)
}

func (c *Client) DeleteBucket(ctx context.Context, id, token string) error {
	return c.do(ctx, request{
		route:  "bucket.delete",
		method: http.MethodDelete,
		path:   "/bucket/delete-bucket/" + url.PathEscape(id),
		token:  token,
	}, nil)
}

type accessKeyEnvelope struct {
	AccessKey string `json:"accessKey" validate:"required"`
}

// GetAccessKey looks up the opaque key that addresses a bucket's files
func (c *Client) GetAccessKey(ctx context.Context, bucketID, token string) (resource.AccessKey, error) {
	var env accessKeyEnvelope
	err := c.do(ctx, request{
		route:  "bucket.access_key",
		method: http.MethodGet,
		path:   "/files/buckets/accessKey/" + url.PathEscape(bucketID),
		token:  token,
	}, &env)
	if err != nil {
		return resource.AccessKey{}, err
	}

	key, _ := resource.NewAccessKey(env.AccessKey)
	return key, nil
}
