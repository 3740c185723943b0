package naphi

// Method is an HTTP request method.
type Method string

const (
	GET     Method = "GET"
	HEAD    Method = "HEAD"
	OPTIONS Method = "OPTIONS"
	POST    Method = "POST"
	PUT     Method = "PUT"
	DELETE  Method = "DELETE"
	TRACE   Method = "TRACE"
	CONNECT Method = "CONNECT"
)

var methods = map[string]Method{
	"GET":     GET,
	"HEAD":    HEAD,
	"OPTIONS": OPTIONS,
	"POST":    POST,
	"PUT":     PUT,
	"DELETE":  DELETE,
	"TRACE":   TRACE,
	"CONNECT": CONNECT,
}

// MethodFromToken resolves a raw wire token to a Method. Unknown tokens
// return false; callers reject the request as malformed.
func MethodFromToken(token string) (Method, bool) {
	m, ok := methods[token]
	return m, ok
}
