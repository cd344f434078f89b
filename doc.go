// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Netclab Contributors

// Package eos provides declarative configuration reconciliation for Arista
// EOS devices over the eAPI JSON-RPC management interface.
//
// The library models hierarchical CLI configuration as an ordered command
// tree, computes a minimal order-correct convergence plan between a desired
// and an observed tree, and applies that plan transactionally inside a
// revertible configure session.
//
// # Quick Start
//
// Create a client and reconcile a desired configuration document:
//
//	client, err := eos.NewClient(
//	    "ceos01.example.com",
//	    eos.Username("admin"),
//	    eos.Password("secret"),
//	    eos.TLS(true),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	desired, err := eos.ParseDocument([]byte(`
//	ip prefix-list PL-Loopback0:
//	  seq 10 permit 10.0.0.1/32 eq 32: {}
//	  seq 20 permit 10.0.0.2/32 eq 32: {}
//	`))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := eos.NewReconciler(client).Reconcile(context.Background(), desired)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Status, result.Commands)
//
// # Command Trees
//
// A desired document is an ordered mapping from CLI command strings to either
// an empty value (leaf command) or a nested mapping of the same shape
// (configuration block). Document order is preserved exactly: ordering-
// sensitive commands such as numbered list entries are never reordered.
// The device's running configuration is fetched and normalized into the same
// tree shape so the two sides compare under identical canonicalization.
//
// # Convergence Plans
//
// Diff produces an ordered sequence of enter/exit/add/remove operations.
// Within each context removals precede additions, and added commands follow
// desired-document order. Plan.Commands flattens a plan into the literal CLI
// batch sent to the device.
//
// # Transactional Apply
//
// The reconciler applies each plan inside a named configure session. On
// success the session is committed; on a rejected command or caller
// cancellation the session is aborted, leaving the device in its pre-call
// state. Each reconcile call is self-contained and idempotent: re-running
// against a converged device issues zero write RPCs.
//
// # Error Handling
//
// Failures carry a structured *EosError with an error kind (parse,
// connection, device, diff-conflict), the eAPI error code, and the index of
// the rejected command where applicable. Transient transport errors are
// retried with exponential backoff for read-only command batches only;
// configuration batches are sent exactly once.
//
// # References
//
//   - Arista eAPI: https://www.arista.com/en/support/toi/eos-4-12-0/13365-eapi
//   - gjson: https://github.com/tidwall/gjson
//   - sjson: https://github.com/tidwall/sjson
package eos
