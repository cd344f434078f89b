// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Netclab Contributors

package eos

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// newTestClient creates a client pointed at an httptest server, with fast
// backoff so retry tests stay quick
func newTestClient(t *testing.T, serverURL string, opts ...func(*Client)) *Client {
	t.Helper()

	u, err := url.Parse(serverURL)
	if err != nil {
		t.Fatalf("failed to parse server URL: %v", err)
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil {
		t.Fatalf("failed to parse server port: %v", err)
	}

	base := []func(*Client){
		Username("admin"),
		Password("admin"),
		TLS(false),
		Port(port),
		MaxRetries(2),
		BackoffMinDelay(1 * time.Millisecond),
		BackoffMaxDelay(10 * time.Millisecond),
	}
	client, err := NewClient(u.Hostname(), append(base, opts...)...)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

// eapiSuccess builds a success response echoing the request id with one
// empty result object per submitted command
func eapiSuccess(requestBody []byte) string {
	id := gjson.GetBytes(requestBody, "id").Int()
	n := len(gjson.GetBytes(requestBody, "params.cmds").Array())

	results := make([]map[string]any, n)
	for i := range results {
		results[i] = map[string]any{}
	}
	resp, _ := sjson.Set(`{"jsonrpc":"2.0"}`, "id", id)
	resp, _ = sjson.Set(resp, "result", results)
	return resp
}

func TestNewClientDefaults(t *testing.T) {
	client, err := NewClient("ceos01", Username("admin"), Password("admin"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if client.Port != DefaultPortHTTPS {
		t.Errorf("expected default HTTPS port %d, got %d", DefaultPortHTTPS, client.Port)
	}
	if !client.UseTLS || !client.VerifyCertificate {
		t.Error("TLS and certificate verification should default to enabled")
	}
	if client.MaxRetries != DefaultMaxRetries {
		t.Errorf("expected default max retries %d, got %d", DefaultMaxRetries, client.MaxRetries)
	}
	if client.URL() != "https://ceos01:443/command-api" {
		t.Errorf("unexpected URL: %s", client.URL())
	}
}

func TestNewClientPlaintextPort(t *testing.T) {
	client, err := NewClient("ceos01", Username("admin"), Password("admin"), TLS(false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Port != DefaultPortHTTP {
		t.Errorf("expected default HTTP port %d, got %d", DefaultPortHTTP, client.Port)
	}
	if client.URL() != "http://ceos01:80/command-api" {
		t.Errorf("unexpected URL: %s", client.URL())
	}
}

func TestNewClientValidation(t *testing.T) {
	tests := []struct {
		name   string
		target string
		opts   []func(*Client)
	}{
		{"empty target", "", nil},
		{"whitespace target", "   ", nil},
		{"invalid port", "ceos01", []func(*Client){Port(70000)}},
		{"negative retries", "ceos01", []func(*Client){MaxRetries(-1)}},
		{"zero connect timeout", "ceos01", []func(*Client){ConnectTimeout(0)}},
		{"zero operation timeout", "ceos01", []func(*Client){OperationTimeout(0)}},
		{"max delay below min", "ceos01", []func(*Client){
			BackoffMinDelay(10 * time.Second), BackoffMaxDelay(1 * time.Second)}},
		{"factor below one", "ceos01", []func(*Client){BackoffDelayFactor(0.5)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewClient(tt.target, tt.opts...); err == nil {
				t.Error("expected a configuration error")
			}
		})
	}
}

func TestHasCredentials(t *testing.T) {
	withCreds, _ := NewClient("ceos01", Username("admin"), Password("admin"))
	if !withCreds.HasCredentials() {
		t.Error("expected HasCredentials to be true")
	}

	without, _ := NewClient("ceos01")
	if without.HasCredentials() {
		t.Error("expected HasCredentials to be false")
	}
}

func TestRunCmdsWireContract(t *testing.T) {
	var captured []byte
	var contentType string
	var gotUser, gotPass string
	var gotAuth bool
	var path string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = io.ReadAll(r.Body)
		contentType = r.Header.Get("Content-Type")
		gotUser, gotPass, gotAuth = r.BasicAuth()
		path = r.URL.Path
		w.Write([]byte(eapiSuccess(captured))) //nolint:errcheck
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	res, err := client.RunCmds(context.Background(), []string{"enable", "show version"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.OK {
		t.Error("expected OK result")
	}

	// The envelope is byte-for-byte fixed, including field order
	expected := `{"jsonrpc":"2.0","method":"runCmds","params":{"version":1,"cmds":["enable","show version"],"format":"json"},"id":1}`
	if string(captured) != expected {
		t.Errorf("request body mismatch:\ngot:      %s\nexpected: %s", captured, expected)
	}

	if path != "/command-api" {
		t.Errorf("unexpected request path: %s", path)
	}
	if contentType != "application/json" {
		t.Errorf("unexpected content type: %s", contentType)
	}
	if !gotAuth || gotUser != "admin" || gotPass != "admin" {
		t.Errorf("basic auth not sent correctly: auth=%v user=%q", gotAuth, gotUser)
	}
}

func TestRunCmdsIDIncrements(t *testing.T) {
	var ids []int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		ids = append(ids, gjson.GetBytes(body, "id").Int())
		w.Write([]byte(eapiSuccess(body))) //nolint:errcheck
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := client.RunCmds(ctx, []string{"show version"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	for i, id := range ids {
		if id != int64(i+1) {
			t.Errorf("request %d has id %d, expected %d", i, id, i+1)
		}
	}
}

func TestRunCmdsTextFormat(t *testing.T) {
	var captured []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = io.ReadAll(r.Body)
		w.Write([]byte(eapiSuccess(captured))) //nolint:errcheck
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.RunCmds(context.Background(), []string{"show running-config"}, Format(FormatText))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := gjson.GetBytes(captured, "params.format").String(); got != "text" {
		t.Errorf("expected text format in request, got %q", got)
	}
}

func TestRunCmdsDeviceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		id := gjson.GetBytes(body, "id").Int()
		resp, _ := sjson.Set(`{"jsonrpc":"2.0"}`, "id", id)
		// Two data entries: the first command ran, the second was rejected
		resp, _ = sjson.SetRaw(resp, "error",
			`{"code":1002,"message":"CLI command 2 of 2 'bogus command' failed: invalid command","data":[{},{"errors":["Invalid input"]}]}`)
		w.Write([]byte(resp)) //nolint:errcheck
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	res, err := client.RunCmds(context.Background(), []string{"show version", "bogus command"})
	if err == nil {
		t.Fatal("expected a device error")
	}
	if res.OK {
		t.Error("result should not be OK")
	}

	var eosErr *EosError
	if !errors.As(err, &eosErr) {
		t.Fatalf("expected *EosError, got %T", err)
	}
	if eosErr.Kind != KindDevice {
		t.Errorf("expected device kind, got %q", eosErr.Kind)
	}
	if eosErr.CommandIndex != 1 {
		t.Errorf("expected failing command index 1, got %d", eosErr.CommandIndex)
	}
	if eosErr.Code != 1002 {
		t.Errorf("expected code 1002, got %d", eosErr.Code)
	}
	if len(res.Errors) != 1 || !strings.Contains(res.Errors[0].Message, "failed") {
		t.Errorf("device error details missing: %+v", res.Errors)
	}
}

func TestRunCmdsInvalidJSONResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>")) //nolint:errcheck
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.RunCmds(context.Background(), []string{"show version"})
	if KindOf(err) != KindParse {
		t.Errorf("expected parse kind, got %q (err: %v)", KindOf(err), err)
	}
}

func TestRunCmdsResultCountMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":[{}]}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.RunCmds(context.Background(), []string{"show version", "show hostname"})
	if KindOf(err) != KindParse {
		t.Errorf("expected parse kind, got %q (err: %v)", KindOf(err), err)
	}
}

func TestRunCmdsAuthFailureNotRetried(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.RunCmds(context.Background(), []string{"show version"})
	if KindOf(err) != KindConnection {
		t.Errorf("expected connection kind, got %q (err: %v)", KindOf(err), err)
	}
	if requests != 1 {
		t.Errorf("auth failure should not be retried, got %d requests", requests)
	}
}

func TestRunCmdsRetriesTransientForReadOnly(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		body, _ := io.ReadAll(r.Body)
		w.Write([]byte(eapiSuccess(body))) //nolint:errcheck
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	res, err := client.RunCmds(context.Background(), []string{"enable", "show version"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.OK {
		t.Error("expected OK result after retry")
	}
	if requests != 2 {
		t.Errorf("expected 2 requests, got %d", requests)
	}
}

func TestRunCmdsConfigBatchNotRetried(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.RunCmds(context.Background(), []string{"enable", "configure session x", "ip routing", "commit"})
	if KindOf(err) != KindConnection {
		t.Errorf("expected connection kind, got %q (err: %v)", KindOf(err), err)
	}
	if requests != 1 {
		t.Errorf("configuration batch must be sent exactly once, got %d requests", requests)
	}
}

func TestRunCmdsCanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Write([]byte(eapiSuccess(body))) //nolint:errcheck
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.RunCmds(ctx, []string{"show version"})
	if KindOf(err) != KindConnection {
		t.Errorf("expected connection kind for canceled context, got %q", KindOf(err))
	}
}

func TestValidateCommands(t *testing.T) {
	tests := []struct {
		name    string
		cmds    []string
		wantErr bool
	}{
		{"valid batch", []string{"enable", "show version"}, false},
		{"empty batch", []string{}, true},
		{"nil batch", nil, true},
		{"empty command", []string{"enable", ""}, true},
		{"whitespace command", []string{"   "}, true},
		{"newline injection", []string{"show version\nbogus"}, true},
		{"null byte", []string{"show\x00version"}, true},
		{"tab allowed", []string{"show\tversion"}, false},
		{"overlong command", []string{strings.Repeat("x", MaxCommandLength+1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCommands(tt.cmds)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateCommands(%v) error = %v, wantErr %v", tt.cmds, err, tt.wantErr)
			}
		})
	}
}

func TestIsReadOnlyBatch(t *testing.T) {
	tests := []struct {
		name     string
		cmds     []string
		expected bool
	}{
		{"show only", []string{"show version"}, true},
		{"enable plus show", []string{"enable", "show running-config"}, true},
		{"config command", []string{"ip routing"}, false},
		{"mixed", []string{"show version", "configure session x"}, false},
		{"show prefix abuse", []string{"showdown"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isReadOnlyBatch(tt.cmds); got != tt.expected {
				t.Errorf("isReadOnlyBatch(%v) = %v, expected %v", tt.cmds, got, tt.expected)
			}
		})
	}
}

func TestRedactSensitiveData(t *testing.T) {
	client, _ := NewClient("ceos01", Username("admin"), Password("admin"))

	tests := []struct {
		name     string
		input    string
		redacted []string
		kept     []string
	}{
		{
			"password field",
			`{"username":"admin","password":"hunter2"}`,
			[]string{"hunter2"},
			[]string{"admin"},
		},
		{
			"enable secret input",
			`{"cmd":"enable","input":"topsecret"}`,
			[]string{"topsecret"},
			[]string{"enable"},
		},
		{
			"multiple fields",
			`{"secret":"a","token":"b","community":"c","key":"d"}`,
			[]string{`"a"`, `"b"`, `"c"`, `"d"`},
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := client.redactSensitiveData(tt.input)
			for _, s := range tt.redacted {
				if strings.Contains(got, s) {
					t.Errorf("sensitive value %q not redacted: %s", s, got)
				}
			}
			for _, s := range tt.kept {
				if !strings.Contains(got, s) {
					t.Errorf("non-sensitive value %q lost: %s", s, got)
				}
			}
			if !strings.Contains(got, "[REDACTED]") {
				t.Errorf("redaction marker missing: %s", got)
			}
		})
	}
}

func TestPrepareJSONForLoggingLimits(t *testing.T) {
	client, _ := NewClient("ceos01", Username("admin"), Password("admin"))

	oversized := `{"data":"` + strings.Repeat("x", MaxJSONSizeForLogging) + `"}`
	if got := client.prepareJSONForLogging(oversized); got != JSONTooLargeMessage {
		t.Errorf("oversized JSON not rejected: %d chars returned", len(got))
	}

	var b strings.Builder
	b.WriteString("{")
	for i := 0; i <= MaxSensitiveFields; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(`"password":"x"`)
	}
	b.WriteString("}")
	if got := client.prepareJSONForLogging(b.String()); got != JSONTooManySensitiveMsg {
		t.Errorf("sensitive-field flood not rejected")
	}
}

func TestVersion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		id := gjson.GetBytes(body, "id").Int()
		resp, _ := sjson.Set(`{"jsonrpc":"2.0"}`, "id", id)
		resp, _ = sjson.SetRaw(resp, "result",
			`[{"version":"4.32.1F","modelName":"cEOSLab","serialNumber":"ABC123"}]`)
		w.Write([]byte(resp)) //nolint:errcheck
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	v, err := client.Version(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Version != "4.32.1F" || v.Model != "cEOSLab" || v.SerialNumber != "ABC123" {
		t.Errorf("unexpected version result: %+v", v)
	}

	if err := client.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}
