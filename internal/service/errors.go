// File: internal/service/errors.go
package service

import "errors"

var (
	ErrMissingToken = errors.New("no bearer token supplied")
	ErrMissingScope = errors.New("no scoping key supplied")
	ErrEmptyName    = errors.New("name cannot be empty")
)

// Fixed messages recorded on a store when an operation fails
const (
	MsgListProjects  = "could not list projects"
	MsgCreateProject = "could not create project"
	MsgRenameProject = "could not rename project"
	MsgDeleteProject = "could not delete project"

	MsgListBuckets  = "could not list buckets"
	MsgCreateBucket = "could not create bucket"
	MsgRenameBucket = "could not rename bucket"
	MsgDeleteBucket = "could not delete bucket"

	MsgListFiles  = "could not list files"
	MsgUploadFile = "could not upload file"
	MsgRenameFile = "could not rename file"
	MsgDeleteFile = "could not delete file"
)

// OpError is what every resource operation returns on a remote failure.
// Error() is the fixed message; the transport cause stays reachable through errors.Is and errors.As.
type OpError struct {
	Message string
	Err     error
}

// Error returns the fixed operation message
func (e *OpError) Error() string {
	return e.Message
}

// Unwrap exposes the cause
func (e *OpError) Unwrap() error {
	return e.Err
}

func opError(message string, cause error) error {
	return &OpError{Message: message, Err: cause}
}
