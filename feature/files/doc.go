// Package files exposes the storage facade over HTTP.
//
// Every route answers with the standard {success, message, error, data}
// envelope except the download route, which streams the object itself.
//
// # HTTP Endpoints
//
//   - PUT /files?key= : Uploads the raw request body. Content-Type, Cache-Control,
//     X-Storage-Class, X-Encryption and X-Meta-* headers become upload options.
//   - GET /files/download?key= : Downloads an object (supports Range and conditional headers).
//   - DELETE /files?key= : Deletes an object.
//   - POST /files/batch-delete : Deletes many objects, {"keys": [...]}.
//   - GET /files : Lists one page (prefix, delimiter, start_after, continuation_token, max_keys, fetch_owner).
//   - GET /files/metadata?key= : Returns object metadata, exists=false when absent.
//   - GET /files/exists?key= : Returns whether the object exists and its size.
//   - POST /files/sign : Creates a signed read or write URL.
//
// Validation failures answer 400, missing objects 404, denied access 403 and
// any other storage failure 502.
package files
