package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read stdout: %v", err)
	}
	return buf.String()
}

func TestPrintRaw(t *testing.T) {
	out := captureOutput(t, func() {
		printRaw([]byte(`{"a":1}`))
	})

	expected := "{\n  \"a\": 1\n}\n"
	if out != expected {
		t.Fatalf("unexpected json output:\n%s", out)
	}

	out = captureOutput(t, func() {
		printRaw([]byte("not json"))
	})
	if out != "not json\n" {
		t.Fatalf("expected raw fallback, got %q", out)
	}
}

func TestDoRequestSendsJSON(t *testing.T) {
	var gotMethod, gotPath, gotContentType string
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	baseURL = server.URL
	timeout = time.Second

	status, body := doRequest(http.MethodPost, "/api/v1/ledger/accruals", map[string]string{"period": "2026-08"})

	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if gotMethod != http.MethodPost || gotPath != "/api/v1/ledger/accruals" {
		t.Fatalf("unexpected request: %s %s", gotMethod, gotPath)
	}
	if gotContentType != "application/json" {
		t.Fatalf("expected JSON content type, got %q", gotContentType)
	}
	if !strings.Contains(string(gotBody), `"period":"2026-08"`) {
		t.Fatalf("expected period in payload, got %s", gotBody)
	}
	if string(body) != `{"ok":true}` {
		t.Fatalf("unexpected response body: %s", body)
	}
}
