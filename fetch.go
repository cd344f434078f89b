// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Netclab Contributors

package eos

import (
	"context"
)

// FetchRunningConfig retrieves and parses the device's running configuration
// into a command Tree.
//
// The fetch runs ["enable", "show running-config"] in text format: EOS has
// no structured model for the full running config, so the raw CLI text is
// taken from the second command's output field and parsed by indentation.
//
// The returned Tree reflects the device's observed state at fetch time and
// can be compared against a desired Tree with Diff.
//
// Example:
//
//	observed, err := client.FetchRunningConfig(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	plan := eos.Diff(desired, observed)
func (c *Client) FetchRunningConfig(ctx context.Context) (*Tree, error) {
	res, err := c.RunCmds(ctx, []string{"enable", "show running-config"}, Format(FormatText))
	if err != nil {
		return nil, err
	}

	output := res.Results[1].Get("output").String()
	if output == "" {
		msg := "device returned an empty running configuration"
		return nil, &EosError{Operation: "fetch-running-config", Kind: KindParse, Message: msg, CommandIndex: -1}
	}

	tree, err := ParseRunningConfig(output)
	if err != nil {
		return nil, &EosError{Operation: "fetch-running-config", Kind: KindParse, Message: err.Error(), CommandIndex: -1, Err: err}
	}

	c.logger.Debug(ctx, "running configuration fetched",
		"target", c.Target,
		"roots", len(tree.Roots))

	return tree, nil
}
