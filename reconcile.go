// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Netclab Contributors

package eos

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
)

// Status is the outcome of a single Reconcile call
type Status string

const (
	// StatusConverged means the observed state already matched the desired
	// state and no write RPC was issued
	StatusConverged Status = "converged"

	// StatusApplied means a convergence plan was computed and committed
	StatusApplied Status = "applied"

	// StatusFailed means the reconcile attempt did not converge the device;
	// any opened configure session was aborted
	StatusFailed Status = "failed"
)

// Result reports the outcome of a Reconcile call.
//
// Commands holds the executed convergence plan (without the enable /
// configure-session / commit scaffolding) so callers can surface it in
// their own status reporting.
type Result struct {
	// Status is the outcome tag
	Status Status

	// Message is a human-readable outcome description; on failure it
	// carries the device's rejection message or the transport error
	Message string

	// Commands is the flattened convergence plan that was (or would have
	// been) executed. Empty when Status is StatusConverged.
	Commands []string

	// FailedIndex is the index into Commands of the rejected command, or
	// -1 when no single command can be blamed
	FailedIndex int
}

// Reconciler drives a device's running configuration toward a desired
// command tree.
//
// Each Reconcile call is a complete observe-diff-apply cycle: it fetches the
// running configuration, computes a convergence plan, and either reports
// convergence or applies the plan inside a named configure session. A failed
// apply aborts the session, so the device never keeps a partial plan.
//
// Reconcile never retries a failed apply; the caller decides whether and
// when to run another cycle. Calls are idempotent: reconciling an already
// converged device issues no write RPCs.
type Reconciler struct {
	client *Client
	logger Logger
}

// NewReconciler creates a Reconciler over an existing eAPI client.
//
// Example:
//
//	r := eos.NewReconciler(client)
//	res, err := r.Reconcile(ctx, desired)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Status, res.Commands)
func NewReconciler(client *Client, opts ...func(*Reconciler)) *Reconciler {
	r := &Reconciler{
		client: client,
		logger: client.logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithReconcilerLogger configures a custom logger for the reconciler,
// independent of the client's logger
func WithReconcilerLogger(logger Logger) func(*Reconciler) {
	return func(r *Reconciler) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// sessionPrefix names the configure sessions this package opens, making
// them recognizable in "show configuration sessions" output
const sessionPrefix = "ncl-"

// newSessionName generates a random configure session name. Randomness
// keeps concurrent reconcilers against different devices from colliding
// in operator tooling that aggregates session names.
func newSessionName() string {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Session names only need uniqueness per device, and the client
		// serializes configuration batches, so a fixed fallback is safe
		return sessionPrefix + "fallback"
	}
	return sessionPrefix + hex.EncodeToString(buf[:])
}

// Reconcile runs one observe-diff-apply cycle against the device.
//
// The cycle:
//  1. Fetch the running configuration and parse it into a Tree.
//  2. Diff the desired tree against the observed tree.
//  3. Empty plan: return StatusConverged without any write RPC.
//  4. Non-empty plan: open a named configure session, run the flattened
//     plan, and commit - all in a single runCmds batch. On a device error
//     or context cancellation the session is aborted before returning.
//
// The returned Result is populated on both success and failure; the error
// (an *EosError) is non-nil exactly when Status is StatusFailed.
//
// Example:
//
//	desired, err := eos.ParseDocument(doc)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := r.Reconcile(ctx, desired)
//	if err != nil {
//	    log.Printf("reconcile failed at command %d: %v", res.FailedIndex, err)
//	}
func (r *Reconciler) Reconcile(ctx context.Context, desired *Tree) (Result, error) {
	if desired == nil {
		msg := "desired tree cannot be nil"
		return Result{Status: StatusFailed, Message: msg, FailedIndex: -1},
			&EosError{Operation: "reconcile", Kind: KindParse, Message: msg, CommandIndex: -1}
	}

	observed, err := r.client.FetchRunningConfig(ctx)
	if err != nil {
		return Result{Status: StatusFailed, Message: err.Error(), FailedIndex: -1}, err
	}

	plan := Diff(desired, observed)
	if len(plan) == 0 {
		r.logger.Info(ctx, "device converged",
			"target", r.client.Target)
		return Result{Status: StatusConverged, Message: "observed state matches desired state", FailedIndex: -1}, nil
	}

	commands := plan.Commands()
	session := newSessionName()

	r.logger.Info(ctx, "applying convergence plan",
		"target", r.client.Target,
		"session", session,
		"commands", len(commands))

	// One batch: privilege escalation, session open, the plan, commit.
	// EOS aborts the batch at the first rejected command, leaving the
	// session pending; the abort below discards it.
	batch := make([]string, 0, len(commands)+3)
	batch = append(batch, "enable", "configure session "+session)
	batch = append(batch, commands...)
	batch = append(batch, "commit")

	_, err = r.client.RunCmds(ctx, batch)
	if err != nil {
		// Validation failures never reach the device, so there is no
		// session to discard
		if KindOf(err) != KindParse {
			r.abortSession(ctx, session)
		}

		failedIdx := -1
		var eosErr *EosError
		if errors.As(err, &eosErr) && eosErr.Kind == KindDevice {
			// Map the batch index back onto the plan: indexes 0 and 1 are
			// the enable and session-open scaffolding
			if idx := eosErr.CommandIndex - 2; idx >= 0 && idx < len(commands) {
				failedIdx = idx
			}
		}

		r.logger.Error(ctx, "convergence plan rejected",
			"target", r.client.Target,
			"session", session,
			"failed_index", failedIdx,
			"error", err.Error())

		return Result{
			Status:      StatusFailed,
			Message:     err.Error(),
			Commands:    commands,
			FailedIndex: failedIdx,
		}, err
	}

	r.logger.Info(ctx, "convergence plan committed",
		"target", r.client.Target,
		"session", session,
		"commands", len(commands))

	return Result{
		Status:      StatusApplied,
		Message:     fmt.Sprintf("applied %d commands", len(commands)),
		Commands:    commands,
		FailedIndex: -1,
	}, nil
}

// abortSession discards a pending configure session. It runs detached from
// the caller's cancellation so an abort still reaches the device when the
// reconcile context has already been canceled.
func (r *Reconciler) abortSession(ctx context.Context, session string) {
	abortCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.client.OperationTimeout)
	defer cancel()

	_, err := r.client.RunCmds(abortCtx, []string{"enable", "configure session " + session + " abort"})
	if err != nil {
		// The session may never have been opened (the batch can fail before
		// the session-open command); EOS rejects the abort in that case
		r.logger.Warn(ctx, "configure session abort failed",
			"target", r.client.Target,
			"session", session,
			"error", err.Error())
		return
	}

	r.logger.Info(ctx, "configure session aborted",
		"target", r.client.Target,
		"session", session)
}
