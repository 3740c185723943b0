// Package naphi is a from-scratch HTTP/1.1 server built directly on TCP
// sockets: it parses request framing itself, dispatches each request to a
// user-supplied handler, and manages connection lifetime including
// keep-alive reuse and idle-timeout eviction.
//
// Highlights
//   - Server: single acceptor, bounded worker pool with an admission
//     queue, strictly sequential request handling per connection.
//   - Pool: tracks every open connection, re-stamps it on each request,
//     and sweeps out the ones idle past the keep-alive timeout.
//   - Codec: Content-Length framing only; decode distinguishes a clean
//     disconnect from a malformed request, so a client that sends garbage
//     gets a 400 and may retry on the same connection.
//
// Quick start:
//
//	srv, err := naphi.NewServer(naphi.Config{Addr: ":8090"}, func(req naphi.Request) naphi.Response {
//	    return naphi.Response{Status: naphi.StatusOK, Body: req.Body}
//	})
//	if err != nil { log.Fatal(err) }
//	defer srv.Close()
package naphi
