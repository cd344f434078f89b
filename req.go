// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Netclab Contributors

package eos

import (
	"fmt"
	"time"
)

// Output format constants for eAPI requests
const (
	// FormatJSON requests structured JSON output per command (default)
	FormatJSON = "json"

	// FormatText requests raw CLI text output per command, wrapped in an
	// {"output": "..."} object. Required for "show running-config".
	FormatText = "text"
)

// ValidFormats contains the list of valid output format values
var ValidFormats = []string{FormatJSON, FormatText}

// ValidateFormat checks if the output format is valid
//
// Example:
//
//	if err := eos.ValidateFormat("json"); err != nil {
//	    log.Fatal(err)
//	}
func ValidateFormat(format string) error {
	for _, valid := range ValidFormats {
		if format == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid format: %s (valid values: json, text)", format)
}

// Req represents an eAPI request modifier.
//
// This struct is used to apply request-specific options via functional
// modifiers. The command batch itself is passed directly to RunCmds.
//
// Example:
//
//	res, err := client.RunCmds(ctx, cmds,
//	    eos.Format(eos.FormatText),
//	    eos.Timeout(30*time.Second))
type Req struct {
	// Format specifies the output format: json (default) or text
	Format string

	// Timeout is the request-specific timeout.
	// Overrides the client default timeout if set.
	Timeout time.Duration
}
