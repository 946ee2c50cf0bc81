// Package store provides the document persistence backends. Each backend
// maps a room id to the room's current document text; a write replaces the
// prior value wholesale. All backends are safe for concurrent use across
// connections editing the same room.
package store

import "errors"

// ErrNotFound is returned when a room has no stored document.
var ErrNotFound = errors.New("document not found")
