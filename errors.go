// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Netclab Contributors

package eos

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrorKind classifies a failure for the caller's retry decision
type ErrorKind string

const (
	// KindParse marks a malformed desired document or unparsable device
	// output; not retryable without an input change
	KindParse ErrorKind = "parse"

	// KindConnection marks a transport-level failure (TLS, auth, timeout,
	// network); retryable by the caller
	KindConnection ErrorKind = "connection"

	// KindDevice marks a command rejected by the device; requires a
	// document correction or manual device intervention
	KindDevice ErrorKind = "device"

	// KindDiffConflict marks observed state that cannot be expressed in
	// the command tree model; handled like a parse failure
	KindDiffConflict ErrorKind = "diff-conflict"
)

// EosError is a structured error with operation context
type EosError struct {
	// Operation name that failed (e.g. "run-cmds", "reconcile")
	Operation string

	// Kind classifies the failure
	Kind ErrorKind

	// Message is the human-readable failure description
	Message string

	// Code is the eAPI error code for device-kind errors, zero otherwise
	Code int

	// CommandIndex is the index of the rejected command within the
	// submitted batch for device-kind errors, -1 when unknown
	CommandIndex int

	// Retries is the number of retry attempts made
	Retries int

	// Err is the underlying cause, if any
	Err error
}

// Error implements the error interface
func (e *EosError) Error() string {
	msg := fmt.Sprintf("eos: %s failed: %s", e.Operation, e.Message)
	if e.Kind == KindDevice && e.CommandIndex >= 0 {
		msg = fmt.Sprintf("%s (command %d)", msg, e.CommandIndex)
	}
	if e.Retries > 0 {
		msg = fmt.Sprintf("%s (retries: %d)", msg, e.Retries)
	}
	return msg
}

// Unwrap returns the underlying cause for errors.Is / errors.As chains
func (e *EosError) Unwrap() error {
	return e.Err
}

// KindOf returns the error kind of an error, or the empty string when the
// error (or its chain) does not carry an *EosError
//
// Example:
//
//	if eos.KindOf(err) == eos.KindConnection {
//	    // transport failure, retry later
//	}
func KindOf(err error) ErrorKind {
	var e *EosError
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// ErrorModel is a single device-reported error detail
type ErrorModel struct {
	// Code is the eAPI error code
	Code int

	// Message is the device's rejection message
	Message string

	// Details contains additional error information, if any
	Details string
}

// TransientStatusCodes lists HTTP status codes that indicate a temporary
// condition in front of the device (gateway restarts, agent overload) and
// are safe to retry for read-only command batches.
//
// NOTE: 500 is intentionally excluded. eAPI reports command rejections as
// JSON-RPC errors over 200 responses, so a 500 is an unknown server-side
// failure; retrying it can mask real problems.
var TransientStatusCodes = []int{502, 503, 504}

// isTransientStatus reports whether an HTTP status code is in
// TransientStatusCodes
func isTransientStatus(status int) bool {
	for _, s := range TransientStatusCodes {
		if s == status {
			return true
		}
	}
	return false
}

// isTransientNetErr reports whether a transport error is a temporary
// network condition worth retrying: dial timeouts, temporary DNS failures,
// and exceeded deadlines. Context cancellation by the caller is never
// transient.
func isTransientNetErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}
