package http1

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
)

func TestWriteResponse_Wire(t *testing.T) {
	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)
	hdr := map[string][]string{"content-type": {"text/plain"}}
	if err := WriteResponse(bw, 200, "OK", hdr, []byte("hey")); err != nil {
		t.Fatalf("WriteResponse error: %v", err)
	}
	bw.Flush()
	want := "HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\n\r\nhey"
	if got := buf.String(); got != want {
		t.Fatalf("wire = %q, want %q", got, want)
	}
}

func TestWriteResponse_MultiValueHeader(t *testing.T) {
	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)
	hdr := map[string][]string{"set-cookie": {"a=1", "b=2"}}
	if err := WriteResponse(bw, 204, "No Content", hdr, nil); err != nil {
		t.Fatalf("WriteResponse error: %v", err)
	}
	bw.Flush()
	if got := strings.Count(buf.String(), "Set-Cookie: "); got != 2 {
		t.Fatalf("Set-Cookie lines = %d, want 2", got)
	}
}

func TestWriteRequest_Wire(t *testing.T) {
	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)
	hdr := map[string][]string{"content-length": {"5"}}
	if err := WriteRequest(bw, "POST", "/submit", hdr, []byte("hello")); err != nil {
		t.Fatalf("WriteRequest error: %v", err)
	}
	bw.Flush()
	want := "POST /submit HTTP/1.1\r\nContent-Length: 5\r\n\r\nhello"
	if got := buf.String(); got != want {
		t.Fatalf("wire = %q, want %q", got, want)
	}
}

func TestSanitizeHeaderValue(t *testing.T) {
	if got := sanitizeHeaderValue("a\r\nInjected: yes"); got != "aInjected: yes" {
		t.Fatalf("sanitized = %q", got)
	}
	if got := sanitizeHeaderValue("tab\tok"); got != "tab\tok" {
		t.Fatalf("sanitized = %q", got)
	}
}

func TestCanonicalHeaderKey(t *testing.T) {
	if got := canonicalHeaderKey("x-custom-header"); got != "X-Custom-Header" {
		t.Fatalf("canonical = %q", got)
	}
}
