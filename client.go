package naphi

import (
	"bufio"
	"net"
)

// Client is a minimal HTTP/1.1 client over a single connection. It exists
// to exercise the server (keep-alive across sequential requests, raw wire
// behavior); it is not a general-purpose client.
type Client struct {
	conn net.Conn
	br   *bufio.Reader
	bw   *bufio.Writer
}

// Dial opens one TCP connection to addr.
func Dial(addr string) (*Client, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Client{
		conn: conn,
		br:   bufio.NewReader(conn),
		bw:   bufio.NewWriter(conn),
	}, nil
}

// Send writes one request and reads one response on the same connection.
// Requests are strictly sequential; there is no pipelining.
func (c *Client) Send(method Method, path string, headers Headers, body []byte) (Response, error) {
	req := Request{Method: method, Path: path, Headers: headers, Body: body}
	if err := WriteRequest(c.bw, req); err != nil {
		return Response{}, err
	}
	return ReadResponse(c.br)
}

func (c *Client) Close() error {
	return c.conn.Close()
}
