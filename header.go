package naphi

import (
	"strconv"
	"strings"
)

// Headers maps lower-cased header names to ordered value lists. Headers may
// repeat; insertion order within a name is preserved. Lookups are
// case-insensitive. The map is treated as immutable: With returns a new
// instance instead of mutating the receiver, so decoded requests can be
// shared freely.
type Headers map[string][]string

// Get returns the value list for name, case-insensitively. The list is nil
// when the header is absent.
func (h Headers) Get(name string) []string {
	if h == nil {
		return nil
	}
	return h[strings.ToLower(name)]
}

// With returns a new Headers with value appended to name's list. The
// receiver is not modified.
func (h Headers) With(name, value string) Headers {
	out := make(Headers, len(h)+1)
	for k, vv := range h {
		out[k] = vv
	}
	k := strings.ToLower(name)
	// Copy the slice so the receiver's list cannot be aliased.
	out[k] = append(append([]string(nil), h[k]...), value)
	return out
}

// ContentLength parses the first content-length value as a non-negative
// integer. Absent, non-numeric, or negative values count as 0.
func (h Headers) ContentLength() int {
	vv := h.Get("content-length")
	if len(vv) == 0 {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(vv[0]))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Connection returns the first connection header value, or "" when absent.
func (h Headers) Connection() string {
	vv := h.Get("connection")
	if len(vv) == 0 {
		return ""
	}
	return vv[0]
}
