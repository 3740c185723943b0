package http1

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"testing"
)

func readReq(t *testing.T, raw string) (*ParsedRequest, error) {
	t.Helper()
	r := &Reader{BR: bufio.NewReader(strings.NewReader(raw)), MaxLineBytes: 8 << 10}
	return r.ReadRequest()
}

func TestReader_SimpleGet(t *testing.T) {
	raw := "GET /index HTTP/1.1\r\nHost: x\r\nX-A: one\r\nx-a: two\r\n\r\n"
	pr, err := readReq(t, raw)
	if err != nil {
		t.Fatalf("ReadRequest error: %v", err)
	}
	if pr.Method != "GET" || pr.RequestURI != "/index" || pr.Proto != "HTTP/1.1" {
		t.Fatalf("request line parsed as %q %q %q", pr.Method, pr.RequestURI, pr.Proto)
	}
	if got := pr.Header["host"]; len(got) != 1 || got[0] != "x" {
		t.Fatalf("host = %v", got)
	}
	// Duplicate names append in arrival order under one lower-cased key.
	if got := pr.Header["x-a"]; len(got) != 2 || got[0] != "one" || got[1] != "two" {
		t.Fatalf("x-a = %v", got)
	}
	if pr.Body != nil {
		t.Fatalf("body = %q, want none", pr.Body)
	}
}

func TestReader_ContentLengthBody(t *testing.T) {
	raw := "POST / HTTP/1.1\r\nHost: x\r\nContent-Length: 5\r\n\r\nhello"
	pr, err := readReq(t, raw)
	if err != nil {
		t.Fatalf("ReadRequest error: %v", err)
	}
	if string(pr.Body) != "hello" {
		t.Fatalf("body=%q", string(pr.Body))
	}
}

func TestReader_CleanEOF(t *testing.T) {
	if _, err := readReq(t, ""); !errors.Is(err, ErrConnClosed) {
		t.Fatalf("err = %v, want ErrConnClosed", err)
	}
}

func TestReader_MalformedRequestLine(t *testing.T) {
	var me *MalformedError
	if _, err := readReq(t, "jibberish\r\n"); !errors.As(err, &me) {
		t.Fatalf("err = %v, want MalformedError", err)
	}
}

func TestReader_UnknownProtocolToken(t *testing.T) {
	var me *MalformedError
	if _, err := readReq(t, "GET / SMTP/1.0\r\n\r\n"); !errors.As(err, &me) {
		t.Fatalf("err = %v, want MalformedError", err)
	}
}

func TestReader_HeaderWithoutColon(t *testing.T) {
	var me *MalformedError
	if _, err := readReq(t, "GET / HTTP/1.1\r\nbroken header\r\n\r\n"); !errors.As(err, &me) {
		t.Fatalf("err = %v, want MalformedError", err)
	}
}

func TestReader_InvalidContentLengthMeansNoBody(t *testing.T) {
	raw := "POST / HTTP/1.1\r\nContent-Length: abc\r\n\r\n"
	pr, err := readReq(t, raw)
	if err != nil {
		t.Fatalf("ReadRequest error: %v", err)
	}
	if pr.Body != nil {
		t.Fatalf("body = %q, want none", pr.Body)
	}
}

func TestReader_TruncatedBody(t *testing.T) {
	raw := "POST / HTTP/1.1\r\nContent-Length: 10\r\n\r\nhi"
	if _, err := readReq(t, raw); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("err = %v, want ErrUnexpectedEOF", err)
	}
}

func TestReader_LineLimit(t *testing.T) {
	r := &Reader{
		BR:           bufio.NewReader(strings.NewReader("GET /" + strings.Repeat("a", 64) + " HTTP/1.1\r\n\r\n")),
		MaxLineBytes: 16,
	}
	var me *MalformedError
	if _, err := r.ReadRequest(); !errors.As(err, &me) {
		t.Fatalf("err = %v, want MalformedError", err)
	}
}

func TestReader_ReadResponse(t *testing.T) {
	raw := "HTTP/1.1 200 OK\r\nContent-Length: 2\r\n\r\nok"
	r := &Reader{BR: bufio.NewReader(strings.NewReader(raw)), MaxLineBytes: 8 << 10}
	pr, err := r.ReadResponse()
	if err != nil {
		t.Fatalf("ReadResponse error: %v", err)
	}
	if pr.StatusCode != 200 || pr.Reason != "OK" {
		t.Fatalf("status = %d %q", pr.StatusCode, pr.Reason)
	}
	if string(pr.Body) != "ok" {
		t.Fatalf("body = %q", string(pr.Body))
	}
}
