// Package apierr defines the boundary error envelope used across the
// core: a single sum type for every public API instead of exceptions
// mingling with result envelopes.
package apierr

import (
	"errors"
	"fmt"
)

// Code is one of the fixed error codes the boundary API can return.
type Code string

const (
	JobNotFound        Code = "JOB_NOT_FOUND"
	NoStock            Code = "NO_STOCK"
	UnknownAlgorithm   Code = "UNKNOWN_ALGORITHM"
	AlgorithmMismatch  Code = "ALGORITHM_MISMATCH"
	ValidationError    Code = "VALIDATION_ERROR"
	QueueFull          Code = "QUEUE_FULL"
	WorkerCrash        Code = "WORKER_CRASH"
	Timeout            Code = "TIMEOUT"
	Cancelled          Code = "CANCELLED"
	ShuttingDown       Code = "SHUTTING_DOWN"
	InternalError      Code = "INTERNAL_ERROR"
)

// Error is the boundary error shape: {code, message, details?}.
type Error struct {
	Code    Code
	Message string
	Details map[string]any
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New builds an Error with no details.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf builds an Error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithDetails attaches structured detail fields and returns the receiver.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// CodeOf extracts the Code from err if it is (or wraps) an *Error,
// otherwise returns INTERNAL_ERROR.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return InternalError
}
