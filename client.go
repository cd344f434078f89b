// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Netclab Contributors

package eos

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/tls"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tidwall/gjson"
)

// Default client configuration values
const (
	DefaultPortHTTPS         = 443
	DefaultPortHTTP          = 80
	DefaultMaxRetries        = 3
	DefaultBackoffMinDelay   = 1 * time.Second
	DefaultBackoffMaxDelay   = 60 * time.Second
	DefaultBackoffFactor     = 2
	DefaultConnectTimeout    = 30 * time.Second
	DefaultOperationTimeout  = 60 * time.Second // show running-config can be slow on loaded devices
	DefaultUseTLS            = true
	DefaultVerifyCertificate = true
	DefaultPrettyPrintLogs   = true
)

// Security limits for JSON processing and logging
const (
	MaxJSONSizeForLogging = 1 * 1024 * 1024 // 1MB limit to prevent ReDoS during redaction
	MaxSensitiveFields    = 1000            // Max redaction operations to prevent DoS

	// MaxBatchSize is the maximum number of commands per runCmds request
	MaxBatchSize = 10000

	// MaxResponseSize is the maximum accepted response body size (50MB);
	// full running configs on dense devices run to a few MB
	MaxResponseSize = 50 * 1024 * 1024
)

// Logging message constants
const (
	JSONTooLargeMessage     = "[JSON TOO LARGE FOR LOGGING]"
	JSONTooManySensitiveMsg = "[JSON CONTAINS TOO MANY SENSITIVE FIELDS]"
)

// defaultRedactionPatterns contains regex patterns for redacting sensitive
// data in logged JSON. "input" covers enable-password payloads in structured
// command objects.
var defaultRedactionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`"password"\s*:\s*"[^"]*"`),
	regexp.MustCompile(`"secret"\s*:\s*"[^"]*"`),
	regexp.MustCompile(`"key"\s*:\s*"[^"]*"`),
	regexp.MustCompile(`"community"\s*:\s*"[^"]*"`),
	regexp.MustCompile(`"token"\s*:\s*"[^"]*"`),
	regexp.MustCompile(`"input"\s*:\s*"[^"]*"`),
}

var redactionReplacements = []string{
	`"password":"[REDACTED]"`,
	`"secret":"[REDACTED]"`,
	`"key":"[REDACTED]"`,
	`"community":"[REDACTED]"`,
	`"token":"[REDACTED]"`,
	`"input":"[REDACTED]"`,
}

// Client is a stateless per-call JSON-RPC client for the eAPI management
// interface of an Arista EOS device.
//
// Each RunCmds call is a self-contained HTTP POST; no session state persists
// between calls. A Client is safe for concurrent use: read-only batches run
// in parallel, configuration batches are serialized by a write lock so two
// configure sessions never interleave on the same device.
type Client struct {
	// httpc is the underlying HTTP client (created at construction)
	httpc *http.Client

	// mu serializes configuration batches against each other
	mu sync.RWMutex

	// nextID is the JSON-RPC request id counter
	nextID atomic.Int64

	// Connection parameters
	Target   string
	Port     int
	username string // unexported for security
	password string // unexported for security

	// TLS options
	UseTLS             bool
	VerifyCertificate  bool
	InsecureSkipVerify bool // Alias for !VerifyCertificate

	// Timeout configuration
	ConnectTimeout   time.Duration
	OperationTimeout time.Duration

	// Retry configuration (read-only batches only)
	MaxRetries         int
	BackoffMinDelay    time.Duration
	BackoffMaxDelay    time.Duration
	BackoffDelayFactor float64

	// Logging configuration
	logger            Logger
	prettyPrintLogs   bool
	redactionPatterns []*regexp.Regexp
}

// NewClient creates a new eAPI client for the specified device and options.
//
// The target is the device hostname or address, without scheme or port.
// No connection is established at construction; each RunCmds call performs
// its own HTTP round trip. Use Ping() to explicitly verify connectivity.
//
// Example:
//
//	client, err := eos.NewClient(
//	    "ceos01.example.com",
//	    eos.Username("admin"),
//	    eos.Password("secret"),
//	    eos.TLS(true),
//	    eos.VerifyCertificate(false),
//	)
//	if err != nil {
//	    log.Fatal(err)  // Configuration error
//	}
//
//	if err := client.Ping(ctx); err != nil {
//	    log.Fatal(err)  // Connection error
//	}
//
// Returns a configured Client or an error if configuration validation fails.
func NewClient(target string, opts ...func(*Client)) (*Client, error) {
	client := &Client{
		Target:             target,
		UseTLS:             DefaultUseTLS,
		VerifyCertificate:  DefaultVerifyCertificate,
		ConnectTimeout:     DefaultConnectTimeout,
		OperationTimeout:   DefaultOperationTimeout,
		MaxRetries:         DefaultMaxRetries,
		BackoffMinDelay:    DefaultBackoffMinDelay,
		BackoffMaxDelay:    DefaultBackoffMaxDelay,
		BackoffDelayFactor: DefaultBackoffFactor,
		logger:             &NoOpLogger{},
		prettyPrintLogs:    DefaultPrettyPrintLogs,
		redactionPatterns:  defaultRedactionPatterns,
	}

	for _, opt := range opts {
		opt(client)
	}

	// Set InsecureSkipVerify alias
	client.InsecureSkipVerify = !client.VerifyCertificate

	// Default port follows the scheme unless explicitly set
	if client.Port == 0 {
		if client.UseTLS {
			client.Port = DefaultPortHTTPS
		} else {
			client.Port = DefaultPortHTTP
		}
	}

	if err := client.validateConfig(); err != nil {
		return nil, err
	}

	client.httpc = &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: client.ConnectTimeout,
			}).DialContext,
			TLSHandshakeTimeout: client.ConnectTimeout,
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: client.InsecureSkipVerify, //nolint:gosec // Explicit user opt-in via VerifyCertificate(false)
			},
		},
	}

	client.logger.Info(context.Background(), "eAPI client created",
		"target", client.Target,
		"port", client.Port,
		"tls", client.UseTLS)

	return client, nil
}

// URL returns the eAPI endpoint URL for this client
func (c *Client) URL() string {
	scheme := "https"
	if !c.UseTLS {
		scheme = "http"
	}
	return fmt.Sprintf("%s://%s:%d/command-api", scheme, c.Target, c.Port)
}

// HasCredentials returns true if credentials are configured
//
// This method only indicates if credentials exist without exposing the
// actual values.
func (c *Client) HasCredentials() bool {
	return c.username != "" || c.password != ""
}

// RunCmds submits an ordered CLI command batch to the device over JSON-RPC.
//
// The batch is executed atomically from the caller's perspective: on a
// device-reported error, EOS aborts the remaining commands and the returned
// *EosError carries the index of the failing command and the device's
// rejection message. Commands already run before the failure have taken
// effect only if they were outside a configure session; the reconciler
// always wraps configuration batches in a session for that reason.
//
// Timeout priority:
//  1. Request-specific timeout (via eos.Timeout modifier)
//  2. Context deadline (if already set)
//  3. Client.OperationTimeout (fallback default)
//
// Transient transport errors are retried with exponential backoff, but only
// when every command in the batch is read-only ("show ..." or "enable");
// configuration batches are submitted exactly once.
//
// Example:
//
//	res, err := client.RunCmds(ctx, []string{"show version"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.GetValue("result.0.version").String())
//
// Returns CmdRes with per-command results, OK status, and any errors.
func (c *Client) RunCmds(ctx context.Context, cmds []string, mods ...func(*Req)) (CmdRes, error) {
	// Validate the batch before acquiring any lock
	if err := validateCommands(cmds); err != nil {
		return CmdRes{
			OK:     false,
			Errors: []ErrorModel{{Message: err.Error()}},
		}, &EosError{Operation: "run-cmds", Kind: KindParse, Message: err.Error(), CommandIndex: -1, Err: err}
	}

	// Build request with default format
	req := &Req{
		Format: FormatJSON,
	}
	for _, mod := range mods {
		mod(req)
	}

	if err := ValidateFormat(req.Format); err != nil {
		return CmdRes{
			OK:     false,
			Errors: []ErrorModel{{Message: err.Error()}},
		}, &EosError{Operation: "run-cmds", Kind: KindParse, Message: err.Error(), CommandIndex: -1, Err: err}
	}

	if err := checkContextCancellation(ctx); err != nil {
		return CmdRes{
			OK:     false,
			Errors: []ErrorModel{{Message: err.Error()}},
		}, &EosError{Operation: "run-cmds", Kind: KindConnection, Message: err.Error(), CommandIndex: -1, Err: err}
	}

	readOnly := isReadOnlyBatch(cmds)

	// Read-only batches may run concurrently; configuration batches are
	// serialized so configure sessions never interleave
	if readOnly {
		c.mu.RLock()
		defer c.mu.RUnlock()
	} else {
		c.mu.Lock()
		defer c.mu.Unlock()
	}

	id := c.nextID.Add(1)

	payload, err := c.buildEnvelope(cmds, req.Format, id)
	if err != nil {
		return CmdRes{
			OK:     false,
			Errors: []ErrorModel{{Message: err.Error()}},
		}, &EosError{Operation: "run-cmds", Kind: KindParse, Message: fmt.Sprintf("failed to build request: %s", err.Error()), CommandIndex: -1, Err: err}
	}

	c.logger.Debug(ctx, "eAPI runCmds request",
		"target", c.Target,
		"id", id,
		"commands", len(cmds),
		"format", req.Format,
		"read_only", readOnly,
		"body", c.prepareJSONForLogging(payload))

	maxAttempts := 1
	if readOnly {
		// Total timeout budget covers the operation plus all backoff delays
		totalTimeout := c.calculateTotalTimeout()
		var parentCancel context.CancelFunc
		ctx, parentCancel = context.WithTimeout(ctx, totalTimeout)
		defer parentCancel()
		maxAttempts = c.MaxRetries + 1
	}

	var raw []byte
	var lastErr error
	retries := 0

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := checkContextCancellation(ctx); err != nil {
			return CmdRes{
				OK:     false,
				Errors: []ErrorModel{{Message: fmt.Sprintf("context canceled: %s", err.Error())}},
			}, &EosError{Operation: "run-cmds", Kind: KindConnection, Message: err.Error(), CommandIndex: -1, Retries: retries, Err: err}
		}

		attemptCtx, attemptCancel := c.createAttemptContext(ctx, req)
		body, status, err := c.post(attemptCtx, payload)
		attemptCancel()

		if err == nil && status == http.StatusOK {
			raw = body
			lastErr = nil
			break
		}

		if err != nil {
			lastErr = err
		} else {
			lastErr = fmt.Errorf("unexpected HTTP status %d", status)
			if status == http.StatusUnauthorized || status == http.StatusForbidden {
				lastErr = fmt.Errorf("authentication failed (status %d)", status)
				// Credentials will not improve on retry
				break
			}
		}

		transient := isTransientNetErr(err) || (err == nil && isTransientStatus(status))
		if !transient || attempt == maxAttempts-1 {
			break
		}

		backoff := c.Backoff(attempt)
		retries++
		c.logger.Warn(ctx, "transient transport error, retrying",
			"operation", "run-cmds",
			"attempt", attempt+1,
			"max_retries", c.MaxRetries,
			"backoff", backoff,
			"error", lastErr.Error())

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return CmdRes{
				OK:     false,
				Errors: []ErrorModel{{Message: fmt.Sprintf("context canceled during backoff: %s", ctx.Err().Error())}},
			}, &EosError{Operation: "run-cmds", Kind: KindConnection, Message: ctx.Err().Error(), CommandIndex: -1, Retries: retries, Err: ctx.Err()}
		}
	}

	if lastErr != nil {
		c.logger.Error(ctx, "eAPI runCmds failed",
			"target", c.Target,
			"error", lastErr.Error())
		return CmdRes{
			OK:     false,
			Errors: []ErrorModel{{Message: lastErr.Error()}},
		}, &EosError{Operation: "run-cmds", Kind: KindConnection, Message: lastErr.Error(), CommandIndex: -1, Retries: retries, Err: lastErr}
	}

	return c.parseResponse(ctx, raw, id, len(cmds), retries)
}

// post performs one HTTP round trip, returning the response body and status
func (c *Client) post(ctx context.Context, payload string) ([]byte, int, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL(), strings.NewReader(payload))
	if err != nil {
		return nil, 0, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.HasCredentials() {
		httpReq.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close() //nolint:errcheck // Read side already consumed

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}

// buildEnvelope assembles the JSON-RPC request envelope. Field order is
// fixed by the wire contract: jsonrpc, method, params, id.
func (c *Client) buildEnvelope(cmds []string, format string, id int64) (string, error) {
	return Body{}.
		Set("jsonrpc", "2.0").
		Set("method", "runCmds").
		Set("params.version", 1).
		Set("params.cmds", cmds).
		Set("params.format", format).
		Set("id", id).
		String()
}

// parseResponse converts a 200 response body into a CmdRes or an error
func (c *Client) parseResponse(ctx context.Context, raw []byte, id int64, numCmds, retries int) (CmdRes, error) {
	if !gjson.ValidBytes(raw) {
		msg := "device returned a non-JSON response"
		return CmdRes{
			OK:     false,
			Errors: []ErrorModel{{Message: msg}},
		}, &EosError{Operation: "run-cmds", Kind: KindParse, Message: msg, CommandIndex: -1, Retries: retries}
	}

	rawStr := string(raw)

	c.logger.Debug(ctx, "eAPI runCmds response",
		"target", c.Target,
		"id", id,
		"body", c.prepareJSONForLogging(rawStr))

	if respID := gjson.Get(rawStr, "id"); respID.Exists() && respID.Int() != id {
		c.logger.Warn(ctx, "eAPI response id mismatch",
			"target", c.Target,
			"request_id", id,
			"response_id", respID.Int())
	}

	// Device-reported error: the batch was aborted at the failing command.
	// error.data carries one result object per command executed up to and
	// including the failed one, which yields the failing index.
	if errField := gjson.Get(rawStr, "error"); errField.Exists() {
		code := int(errField.Get("code").Int())
		message := errField.Get("message").String()
		failedIdx := -1
		if data := errField.Get("data"); data.IsArray() {
			if n := len(data.Array()); n > 0 {
				failedIdx = n - 1
			}
		}

		c.logger.Error(ctx, "eAPI command rejected",
			"target", c.Target,
			"code", code,
			"message", message,
			"command_index", failedIdx)

		return CmdRes{
				Raw: rawStr,
				ID:  id,
				OK:  false,
				Errors: []ErrorModel{{
					Code:    code,
					Message: message,
					Details: errField.Get("data").Raw,
				}},
			}, &EosError{
				Operation:    "run-cmds",
				Kind:         KindDevice,
				Message:      message,
				Code:         code,
				CommandIndex: failedIdx,
				Retries:      retries,
			}
	}

	result := gjson.Get(rawStr, "result")
	if !result.IsArray() {
		msg := "device response has no result array"
		return CmdRes{
			Raw:    rawStr,
			ID:     id,
			OK:     false,
			Errors: []ErrorModel{{Message: msg}},
		}, &EosError{Operation: "run-cmds", Kind: KindParse, Message: msg, CommandIndex: -1, Retries: retries}
	}

	results := result.Array()
	if len(results) != numCmds {
		msg := fmt.Sprintf("device returned %d results for %d commands", len(results), numCmds)
		return CmdRes{
			Raw:    rawStr,
			ID:     id,
			OK:     false,
			Errors: []ErrorModel{{Message: msg}},
		}, &EosError{Operation: "run-cmds", Kind: KindParse, Message: msg, CommandIndex: -1, Retries: retries}
	}

	return CmdRes{
		Results: results,
		Raw:     rawStr,
		ID:      id,
		OK:      true,
	}, nil
}

// Ping verifies connectivity and credentials by running "show version"
//
// Example:
//
//	if err := client.Ping(ctx); err != nil {
//	    log.Fatal(err)  // Connection or auth error
//	}
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Version(ctx)
	return err
}

// Version retrieves the device's software version, model, and serial number
// from "show version"
//
// Example:
//
//	v, err := client.Version(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%s running EOS %s\n", v.Model, v.Version)
func (c *Client) Version(ctx context.Context) (VersionRes, error) {
	res, err := c.RunCmds(ctx, []string{"show version"})
	if err != nil {
		return VersionRes{OK: false, Errors: res.Errors}, err
	}
	return VersionRes{
		Version:      res.GetValue("result.0.version").String(),
		Model:        res.GetValue("result.0.modelName").String(),
		SerialNumber: res.GetValue("result.0.serialNumber").String(),
		OK:           true,
	}, nil
}

// Backoff calculates the delay before retry attempt using exponential
// backoff with jitter
//
// The formula is: delay = min(minDelay * (factor ^ attempt) + jitter, maxDelay)
// where jitter is a cryptographically secure random value in [0, delay * 0.1].
//
// Parameters:
//   - attempt: The retry attempt number (0-indexed)
//
// Returns the duration to wait before retrying.
func (c *Client) Backoff(attempt int) time.Duration {
	delay := float64(c.BackoffMinDelay) * math.Pow(c.BackoffDelayFactor, float64(attempt))

	if math.IsInf(delay, 1) || delay > float64(c.BackoffMaxDelay) {
		delay = float64(c.BackoffMaxDelay)
	}

	// Jitter (0-10% of delay) disperses simultaneous retries
	jitterMax := int64(delay * 0.1)
	if jitterMax > 0 {
		var jitterBytes [8]byte
		if _, err := rand.Read(jitterBytes[:]); err == nil {
			//nolint:gosec // G115: sign bit masked off to keep the value positive
			jitter := int64(binary.BigEndian.Uint64(jitterBytes[:]) & 0x7FFFFFFFFFFFFFFF)
			delay += float64(jitter % jitterMax)
		} else {
			// Fallback to timestamp-based jitter if crypto/rand fails
			timestamp := time.Now().UnixNano()
			delay += float64((timestamp%jitterMax + jitterMax) % jitterMax)
		}
	}

	return time.Duration(delay)
}

// calculateTotalTimeout calculates the total timeout budget for a read-only
// operation including all retry attempts:
//
//	OperationTimeout + sum(Backoff(0), ..., Backoff(MaxRetries-1))
func (c *Client) calculateTotalTimeout() time.Duration {
	totalBackoff := time.Duration(0)
	for attempt := 0; attempt < c.MaxRetries; attempt++ {
		totalBackoff += c.Backoff(attempt)
	}
	return c.OperationTimeout + totalBackoff
}

// createAttemptContext creates the context for a single attempt.
//
// Timeout priority model:
//  1. Request-specific timeout (req.Timeout > 0) - highest priority
//  2. Existing context deadline - medium priority
//  3. Client default timeout (c.OperationTimeout) - fallback
//
// Caller must call the returned cancel function after the attempt completes.
func (c *Client) createAttemptContext(ctx context.Context, req *Req) (context.Context, context.CancelFunc) {
	if req.Timeout > 0 {
		return context.WithTimeout(ctx, req.Timeout)
	}
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.OperationTimeout)
}

// checkContextCancellation is a non-blocking check for a canceled or
// expired context
func checkContextCancellation(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

// validateCommands validates a CLI command batch
//
// Checks:
//   - Batch is not empty and does not exceed MaxBatchSize
//   - Each command is non-empty after trimming
//   - Each command length does not exceed MaxCommandLength
//   - No command contains control characters (batch injection)
//
// Returns an error if any command is invalid with a descriptive message.
func validateCommands(cmds []string) error {
	if len(cmds) == 0 {
		return fmt.Errorf("command batch cannot be empty")
	}
	if len(cmds) > MaxBatchSize {
		return fmt.Errorf("command batch exceeds %d commands", MaxBatchSize)
	}

	for i, cmd := range cmds {
		if strings.TrimSpace(cmd) == "" {
			return fmt.Errorf("command cannot be empty (at index %d)", i)
		}
		if len(cmd) > MaxCommandLength {
			return fmt.Errorf("command at index %d exceeds maximum length of %d characters", i, MaxCommandLength)
		}
		for j := 0; j < len(cmd); j++ {
			if cmd[j] < 32 && cmd[j] != '\t' {
				return fmt.Errorf("command at index %d contains control character at position %d", i, j)
			}
		}
	}
	return nil
}

// isReadOnlyBatch reports whether every command in the batch is read-only.
// Only read-only batches are safe to retry on transport errors.
func isReadOnlyBatch(cmds []string) bool {
	for _, cmd := range cmds {
		trimmed := strings.TrimSpace(cmd)
		if trimmed == "enable" {
			continue
		}
		if strings.HasPrefix(trimmed, "show ") {
			continue
		}
		return false
	}
	return true
}

// prepareJSONForLogging redacts sensitive data and formats JSON for logging
//
// Performs security checks and data sanitization:
//  1. Validates JSON size to prevent ReDoS attacks (max 1MB)
//  2. Checks sensitive field count to prevent DoS (max 1000 fields)
//  3. Redacts sensitive data (passwords, secrets, keys, tokens)
//  4. Pretty-prints JSON if prettyPrintLogs is enabled
//
// Returns the processed JSON string safe for logging.
func (c *Client) prepareJSONForLogging(jsonStr string) string {
	if len(jsonStr) > MaxJSONSizeForLogging {
		return JSONTooLargeMessage
	}

	sensitiveCount := strings.Count(jsonStr, `"password"`) +
		strings.Count(jsonStr, `"secret"`) +
		strings.Count(jsonStr, `"key"`) +
		strings.Count(jsonStr, `"community"`) +
		strings.Count(jsonStr, `"token"`) +
		strings.Count(jsonStr, `"input"`)

	if sensitiveCount > MaxSensitiveFields {
		return JSONTooManySensitiveMsg
	}

	redacted := c.redactSensitiveData(jsonStr)

	if c.prettyPrintLogs {
		var buf bytes.Buffer
		if err := json.Indent(&buf, []byte(redacted), "", "  "); err == nil {
			return buf.String()
		}
		// Indent fails on non-JSON input; fall through to the raw redacted form
	}

	return redacted
}

// redactSensitiveData replaces sensitive JSON field values with [REDACTED]
func (c *Client) redactSensitiveData(jsonStr string) string {
	result := jsonStr
	for i, pattern := range c.redactionPatterns {
		result = pattern.ReplaceAllString(result, redactionReplacements[i])
	}
	return result
}

// validateConfig validates client configuration before use
//
// Validates:
//   - Target is not empty
//   - Port range (1-65535)
//   - Positive timeouts (ConnectTimeout, OperationTimeout > 0)
//   - Retry params (MaxRetries >= 0, BackoffMaxDelay > BackoffMinDelay > 0)
//   - BackoffDelayFactor >= 1.0
//
// Returns an error if validation fails.
func (c *Client) validateConfig() error {
	if strings.TrimSpace(c.Target) == "" {
		return fmt.Errorf("target address cannot be empty")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d (must be 1-65535)", c.Port)
	}

	if c.ConnectTimeout <= 0 {
		return fmt.Errorf("connect timeout must be positive, got: %v", c.ConnectTimeout)
	}
	if c.OperationTimeout <= 0 {
		return fmt.Errorf("operation timeout must be positive, got: %v", c.OperationTimeout)
	}

	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries must be non-negative, got: %d", c.MaxRetries)
	}
	if c.BackoffMinDelay <= 0 {
		return fmt.Errorf("backoff min delay must be positive, got: %v", c.BackoffMinDelay)
	}
	if c.BackoffMaxDelay <= c.BackoffMinDelay {
		return fmt.Errorf("backoff max delay (%v) must be greater than min delay (%v)",
			c.BackoffMaxDelay, c.BackoffMinDelay)
	}
	if c.BackoffDelayFactor < 1.0 {
		return fmt.Errorf("backoff delay factor must be >= 1.0, got: %f", c.BackoffDelayFactor)
	}

	if c.UseTLS && c.InsecureSkipVerify {
		c.logger.Warn(context.Background(), "TLS certificate verification disabled",
			"target", c.Target,
			"security_risk", "Man-in-the-Middle attacks possible",
			"recommendation", "Use only in testing environments")
	}

	if !c.UseTLS {
		c.logger.Warn(context.Background(), "TLS disabled - connection is not encrypted",
			"target", c.Target,
			"security_risk", "Credentials and configuration transmitted in clear text",
			"recommendation", "Enable TLS for production use")
	}

	if !c.HasCredentials() {
		c.logger.Warn(context.Background(), "No credentials configured",
			"target", c.Target,
			"message", "device will likely reject requests")
	}

	return nil
}
