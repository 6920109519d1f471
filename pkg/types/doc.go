// Package types defines the Store and Table interfaces, the flat storage
// records for portfolio content, and the standard error values shared by the
// folio backends, services, and CLI.
package types
