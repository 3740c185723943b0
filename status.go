package naphi

import "fmt"

// Status is an HTTP status line: numeric code plus reason phrase. The
// predeclared set below is deliberately partial; handlers may construct any
// Status literal for codes outside it.
type Status struct {
	Code   int
	Reason string
}

var (
	StatusOK                  = Status{Code: 200, Reason: "OK"}
	StatusCreated             = Status{Code: 201, Reason: "Created"}
	StatusNoContent           = Status{Code: 204, Reason: "No Content"}
	StatusBadRequest          = Status{Code: 400, Reason: "Bad Request"}
	StatusNotFound            = Status{Code: 404, Reason: "Not Found"}
	StatusInternalServerError = Status{Code: 500, Reason: "Internal Server Error"}
)

var statusByCode = map[int]Status{
	200: StatusOK,
	201: StatusCreated,
	204: StatusNoContent,
	400: StatusBadRequest,
	404: StatusNotFound,
	500: StatusInternalServerError,
}

// StatusFromCode resolves a numeric code against the predeclared catalog.
// Codes outside it are an error; callers needing such codes construct the
// Status directly.
func StatusFromCode(code int) (Status, error) {
	s, ok := statusByCode[code]
	if !ok {
		return Status{}, fmt.Errorf("naphi: no status registered for code %d", code)
	}
	return s, nil
}
