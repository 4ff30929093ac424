package core

import (
	"github.com/dkeye/Handshake/internal/domain"
)

// RoomInfo is a read-only view for APIs.
type RoomInfo struct {
	ID          domain.RoomID `json:"id"`
	Members     []SessionID   `json:"members"`
	MemberCount int           `json:"member_count"`
}

// RoomRegistry owns room membership. All mutations are serialized.
// It never touches transport resources.
type RoomRegistry interface {
	CreateRoom(sid SessionID) domain.RoomID
	// JoinRoom returns the members present before sid was appended.
	// ok is false when the room does not exist; nothing is mutated then.
	JoinRoom(sid SessionID, id domain.RoomID) (before []SessionID, ok bool)
	// Leave removes every entry of sid from the first room (lowest id) that
	// lists it and returns that room together with the members that remain.
	// ok is false when sid is in no room.
	Leave(sid SessionID) (id domain.RoomID, remaining []SessionID, ok bool)
	Members(id domain.RoomID) ([]SessionID, bool)
	List() []RoomInfo
}
