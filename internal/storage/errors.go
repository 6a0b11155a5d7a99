package storage

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
	"github.com/minio/minio-go/v7"
)

// Error is a failed storage provider call. Code carries the provider error
// code when one was returned.
type Error struct {
	Op     string
	Bucket string
	Key    string
	Code   string
	Err    error
}

func (e *Error) Error() string {
	target := e.Bucket
	if e.Key != "" {
		target += "/" + e.Key
	}
	if e.Code != "" {
		return fmt.Sprintf("storage: %s %s: %s: %v", e.Op, target, e.Code, e.Err)
	}
	return fmt.Sprintf("storage: %s %s: %v", e.Op, target, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorCode returns the provider error code carried by err, or "".
func ErrorCode(err error) string {
	var serr *Error
	if errors.As(err, &serr) && serr.Code != "" {
		return serr.Code
	}
	return providerCode(err)
}

func providerCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	if resp := minio.ToErrorResponse(err); resp.Code != "" {
		return resp.Code
	}
	return ""
}

func wrapError(op, bucket, key string, err error) error {
	return &Error{Op: op, Bucket: bucket, Key: key, Code: providerCode(err), Err: err}
}
