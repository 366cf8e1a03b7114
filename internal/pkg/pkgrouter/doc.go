// Package pkgrouter wraps httprouter with the JSON envelope and middleware
// used by the ops surface.
//
// Handlers return a payload or an error; the router encodes payloads as
// {"message","data","meta"} and maps *pkgerror.Error values to status codes.
package pkgrouter
