// Package models holds the server-side records persisted by the repositories.
// Group elements are stored as lowercase hex strings.
package models

import "time"

// Identity is the registered verification pair for one username.
// ID is hex(BLAKE2b-256(username)); Y1 = g^x and Y2 = h^x.
type Identity struct {
	ID        string
	Y1        string
	Y2        string
	CreatedAt time.Time
}

// PendingAuth is the server half of an in-flight login: the client's
// commitment (R1, R2) and the challenge C issued for it.
type PendingAuth struct {
	ID        string
	R1        string
	R2        string
	C         string
	CreatedAt time.Time
}
