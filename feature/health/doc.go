// Package health reports whether the storage bucket and the optional database
// pool are reachable.
//
// # HTTP Endpoints
//
//   - GET /health : 200 with the report when every configured dependency is
//     healthy, 503 with the same report otherwise.
package health
