// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Netclab Contributors

package eos

import (
	"github.com/tidwall/gjson"
)

// CmdRes represents the result of a runCmds request
type CmdRes struct {
	// Results holds one entry per submitted command, in submission order
	Results []gjson.Result

	// Raw is the full JSON-RPC response body
	Raw string

	// ID is the JSON-RPC response id
	ID int64

	// OK indicates if the whole batch succeeded
	OK bool

	// Errors contains device-reported error details when OK is false
	Errors []ErrorModel
}

// GetValue retrieves a value from the raw response using a gjson path.
// The path follows gjson syntax for querying JSON structures.
//
// Example paths:
//   - "result.0.version" - version field of the first command's result
//   - "result.1.output" - text output of the second command (text format)
//   - "error.message" - device rejection message on failure
//
// Returns gjson.Result which can be converted to specific types:
//   - result.String() for string values
//   - result.Int() for integer values
//   - result.Array() for array values
//
// Example:
//
//	res, err := client.RunCmds(ctx, []string{"show version"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	version := res.GetValue("result.0.version").String()
func (r CmdRes) GetValue(path string) gjson.Result {
	if r.Raw == "" {
		return gjson.Result{}
	}
	return gjson.Get(r.Raw, path)
}

// JSON returns the raw JSON-RPC response body.
// This is useful for debugging, logging, or custom parsing.
func (r CmdRes) JSON() string {
	return r.Raw
}

// VersionRes represents the parsed result of "show version"
type VersionRes struct {
	// Version is the EOS software version (e.g. "4.32.1F")
	Version string

	// Model is the device model name (e.g. "cEOSLab", "DCS-7280SR")
	Model string

	// SerialNumber is the device serial number
	SerialNumber string

	// OK indicates if the operation succeeded
	OK bool

	// Errors contains any error information
	Errors []ErrorModel
}
