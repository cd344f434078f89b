// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Netclab Contributors

package eos

import "time"

// Client configuration options using the functional options pattern

// Username sets the username for eAPI basic authentication
func Username(username string) func(*Client) {
	return func(c *Client) {
		c.username = username
	}
}

// Password sets the password for eAPI basic authentication
func Password(password string) func(*Client) {
	return func(c *Client) {
		c.password = password
	}
}

// Port sets the eAPI port (default: 443 with TLS, 80 without)
func Port(port int) func(*Client) {
	return func(c *Client) {
		c.Port = port
	}
}

// TLS enables or disables HTTPS transport (default: enabled)
//
// WARNING: Disabling TLS sends credentials and configuration in clear text.
// Only use this in isolated lab environments.
func TLS(enabled bool) func(*Client) {
	return func(c *Client) {
		c.UseTLS = enabled
	}
}

// VerifyCertificate enables or disables TLS certificate verification
// (default: enabled)
//
// WARNING: Disabling certificate verification makes the connection
// vulnerable to Man-in-the-Middle attacks. Only use this in testing
// environments where security is not a concern.
//
// Example:
//
//	client, _ := eos.NewClient("ceos01",
//	    eos.Username("admin"),
//	    eos.Password("secret"),
//	    eos.VerifyCertificate(false))  // Insecure, use only for testing
func VerifyCertificate(verify bool) func(*Client) {
	return func(c *Client) {
		c.VerifyCertificate = verify
	}
}

// ConnectTimeout sets the TCP/TLS connection timeout (default: 30s)
func ConnectTimeout(duration time.Duration) func(*Client) {
	return func(c *Client) {
		c.ConnectTimeout = duration
	}
}

// OperationTimeout sets the per-RPC timeout (default: 60s)
func OperationTimeout(duration time.Duration) func(*Client) {
	return func(c *Client) {
		c.OperationTimeout = duration
	}
}

// MaxRetries sets the maximum number of retry attempts for transient
// transport errors on read-only command batches (default: 3).
// Configuration batches are never retried.
func MaxRetries(retries int) func(*Client) {
	return func(c *Client) {
		c.MaxRetries = retries
	}
}

// BackoffMinDelay sets the minimum backoff delay (default: 1s)
func BackoffMinDelay(duration time.Duration) func(*Client) {
	return func(c *Client) {
		c.BackoffMinDelay = duration
	}
}

// BackoffMaxDelay sets the maximum backoff delay (default: 60s)
func BackoffMaxDelay(duration time.Duration) func(*Client) {
	return func(c *Client) {
		c.BackoffMaxDelay = duration
	}
}

// BackoffDelayFactor sets the backoff multiplication factor (default: 2.0)
func BackoffDelayFactor(factor float64) func(*Client) {
	return func(c *Client) {
		c.BackoffDelayFactor = factor
	}
}

// WithLogger configures a custom logger for the client
//
// By default the client uses NoOpLogger, which discards all log messages.
// All JSON content logged at Debug level is automatically redacted to remove
// sensitive data (passwords, secrets, keys, tokens).
//
// Example:
//
//	logger := eos.NewDefaultLogger(eos.LogLevelInfo)
//	client, _ := eos.NewClient("ceos01",
//	    eos.Username("admin"),
//	    eos.Password("secret"),
//	    eos.WithLogger(logger))
func WithLogger(logger Logger) func(*Client) {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithPrettyPrintLogs enables/disables JSON pretty printing in Debug logs
//
// When enabled, JSON request and response bodies in debug logs are indented
// for readability. Disabling it avoids the formatting cost when logging
// high-frequency operations.
func WithPrettyPrintLogs(enabled bool) func(*Client) {
	return func(c *Client) {
		c.prettyPrintLogs = enabled
	}
}

// Request modifiers for individual operations

// Timeout returns a request modifier that sets a custom timeout for the
// operation.
//
// The timeout priority model is:
//  1. Request-specific timeout (this modifier) - highest priority
//  2. Context deadline (if already set) - medium priority
//  3. Client.OperationTimeout - fallback default
//
// Example:
//
//	res, err := client.RunCmds(ctx, []string{"show running-config"},
//	    eos.Timeout(2*time.Minute))
func Timeout(duration time.Duration) func(*Req) {
	return func(req *Req) {
		req.Timeout = duration
	}
}

// Format returns a request modifier that sets the output format for the
// batch.
//
// Valid formats: json (default), text. The text format wraps each command's
// raw CLI output in an {"output": "..."} object and is required for commands
// without a structured model, notably "show running-config".
//
// Example:
//
//	res, err := client.RunCmds(ctx, []string{"show running-config"},
//	    eos.Format(eos.FormatText))
func Format(format string) func(*Req) {
	return func(req *Req) {
		req.Format = format
	}
}
