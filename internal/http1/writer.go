package http1

import (
	"bufio"
	"fmt"
	"strings"
)

// WriteResponse writes a full HTTP/1.1 response: status line, one line per
// header value, blank line, body. hdr keys are expected lower-cased; they
// are rendered in canonical form. The writer is not flushed here.
func WriteResponse(bw *bufio.Writer, code int, reason string, hdr map[string][]string, body []byte) error {
	if _, err := fmt.Fprintf(bw, "HTTP/1.1 %d %s\r\n", code, reason); err != nil {
		return err
	}
	if err := writeHeaders(bw, hdr); err != nil {
		return err
	}
	if _, err := bw.WriteString("\r\n"); err != nil {
		return err
	}
	if len(body) > 0 {
		if _, err := bw.Write(body); err != nil {
			return err
		}
	}
	return nil
}

// WriteRequest writes a full HTTP/1.1 request. Used by the client side.
func WriteRequest(bw *bufio.Writer, method, path string, hdr map[string][]string, body []byte) error {
	if _, err := fmt.Fprintf(bw, "%s %s HTTP/1.1\r\n", method, path); err != nil {
		return err
	}
	if err := writeHeaders(bw, hdr); err != nil {
		return err
	}
	if _, err := bw.WriteString("\r\n"); err != nil {
		return err
	}
	if len(body) > 0 {
		if _, err := bw.Write(body); err != nil {
			return err
		}
	}
	return nil
}

func writeHeaders(bw *bufio.Writer, hdr map[string][]string) error {
	for k, vv := range hdr {
		ck := canonicalHeaderKey(k)
		for _, v := range vv {
			if _, err := fmt.Fprintf(bw, "%s: %s\r\n", ck, sanitizeHeaderValue(v)); err != nil {
				return err
			}
		}
	}
	return nil
}

func sanitizeHeaderValue(v string) string {
	if v == "" {
		return v
	}
	// Remove CR/LF and other control chars except HTAB
	var b strings.Builder
	b.Grow(len(v))
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c == '\r' || c == '\n' || c == 0x7f {
			continue
		}
		if c < 0x20 && c != '\t' {
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// Very small canonicalizer to avoid importing textproto here.
func canonicalHeaderKey(s string) string {
	b := []byte(strings.ToLower(s))
	upper := true
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			if upper {
				b[i] = byte(c - 'a' + 'A')
			}
			upper = false
			continue
		}
		upper = c == '-'
	}
	return string(b)
}
