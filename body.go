// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Netclab Contributors

package eos

import (
	"fmt"

	"github.com/tidwall/sjson"
)

// Body provides a fluent interface for building JSON payloads using sjson
// for path-based manipulation. The client uses it to assemble the JSON-RPC
// request envelope; it is exported for callers constructing structured eAPI
// payloads of their own.
//
// Fields appear in the output in the order they are set, which is how the
// client keeps the wire envelope's field order stable.
//
// The builder tracks errors internally to enable method chaining; check them
// through String() or Err().
//
// Example:
//
//	body := eos.Body{}.
//	    Set("jsonrpc", "2.0").
//	    Set("method", "runCmds").
//	    Set("params.version", 1).
//	    Set("params.cmds", []string{"show version"}).
//	    Set("params.format", "json").
//	    Set("id", 1)
//
//	payload, err := body.String()
//	if err != nil {
//	    log.Fatal(err)
//	}
type Body struct {
	// str contains the JSON string being built
	str string
	// err tracks the first error encountered during building
	err error
}

// Set sets a value at the specified JSON path and returns a new Body.
//
// The path uses dot notation for nested fields (e.g. "params.version").
// The value can be any type sjson supports; slices and maps are marshaled
// with encoding/json.
//
// Once an error occurs, all subsequent operations are no-ops that preserve
// the error.
//
// Returns the Body for method chaining.
func (b Body) Set(path string, value any) Body {
	if b.err != nil {
		return b
	}

	result, err := sjson.Set(b.str, path, value)
	if err != nil {
		return Body{str: b.str, err: fmt.Errorf("Set(%q): %w", path, err)}
	}
	return Body{str: result}
}

// SetRaw sets pre-encoded JSON at the specified path and returns a new Body.
//
// Use this when the value is already a JSON document, e.g. a structured
// command object for an autoComplete or revision-controlled request:
//
//	body := eos.Body{}.
//	    SetRaw("params.cmds.0", `{"cmd":"enable","input":"secret"}`)
//
// Returns the Body for method chaining.
func (b Body) SetRaw(path string, rawJSON string) Body {
	if b.err != nil {
		return b
	}

	result, err := sjson.SetRaw(b.str, path, rawJSON)
	if err != nil {
		return Body{str: b.str, err: fmt.Errorf("SetRaw(%q): %w", path, err)}
	}
	return Body{str: result}
}

// Delete removes a value at the specified JSON path and returns a new Body.
//
// Returns the Body for method chaining.
func (b Body) Delete(path string) Body {
	if b.err != nil {
		return b
	}

	result, err := sjson.Delete(b.str, path)
	if err != nil {
		return Body{str: b.str, err: fmt.Errorf("Delete(%q): %w", path, err)}
	}
	return Body{str: result}
}

// String returns the JSON string representation and any error encountered
// during building.
//
// Example:
//
//	body := eos.Body{}.Set("params.format", "json")
//	payload, err := body.String()
//	if err != nil {
//	    log.Fatal(err)
//	}
func (b Body) String() (string, error) {
	return b.str, b.err
}

// Err returns any error that occurred during the building process
func (b Body) Err() error {
	return b.err
}

// Bytes returns the JSON byte slice representation and any error encountered
// during building
func (b Body) Bytes() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	return []byte(b.str), nil
}
