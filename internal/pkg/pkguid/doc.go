// Package pkguid provides helpers for generating unique identifiers.
//
// Run IDs are UUIDv7 strings; dataset attempt IDs are Snowflake numbers.
package pkguid
