// Package session holds in-progress intake answers between requests.
//
// Nothing is persisted: a session lives in memory until it is reset, expires
// or the process exits.
package session
