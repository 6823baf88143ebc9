// Package middleware groups HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation (X-API-Key header or api_key query parameter).
//   - rayid: assigns a unique request ID (RayID) to every request, stores it in
//     fiber locals under "ray_id" and echoes it in the X-Ray-ID response header.
//
// RayID must be registered first so every later log line carries it.
package middleware
