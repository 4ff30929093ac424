// Package domain contains entity without logic, just meta-data
package domain

// RoomID is assigned from a per-registry counter starting at 0 and is never reused.
type RoomID int64
