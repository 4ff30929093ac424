package app

import (
	"maps"
	"slices"
	"sync"

	"github.com/dkeye/Handshake/internal/core"
	"github.com/dkeye/Handshake/internal/domain"
	"github.com/rs/zerolog/log"
)

// RoomRegistry keeps ordered member lists per room behind a single mutex.
// Empty rooms are deleted as soon as the last member leaves.
type RoomRegistry struct {
	mu     sync.RWMutex
	nextID domain.RoomID
	rooms  map[domain.RoomID][]core.SessionID
}

func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{rooms: make(map[domain.RoomID][]core.SessionID)}
}

func (r *RoomRegistry) CreateRoom(sid core.SessionID) domain.RoomID {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	r.rooms[id] = []core.SessionID{sid}
	log.Info().Str("module", "app.rooms").Str("sid", string(sid)).Int64("room_id", int64(id)).Msg("room created")
	return id
}

func (r *RoomRegistry) JoinRoom(sid core.SessionID, id domain.RoomID) ([]core.SessionID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	members, ok := r.rooms[id]
	if !ok {
		return nil, false
	}
	before := slices.Clone(members)
	r.rooms[id] = append(members, sid)
	log.Info().Str("module", "app.rooms").Str("sid", string(sid)).Int64("room_id", int64(id)).Int("members", len(members)+1).Msg("member joined")
	return before, true
}

func (r *RoomRegistry) Leave(sid core.SessionID) (domain.RoomID, []core.SessionID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range slices.Sorted(maps.Keys(r.rooms)) {
		members := r.rooms[id]
		if !slices.Contains(members, sid) {
			continue
		}
		// a session that joined twice is listed twice; drop every entry
		remaining := slices.DeleteFunc(slices.Clone(members), func(m core.SessionID) bool {
			return m == sid
		})
		if len(remaining) == 0 {
			delete(r.rooms, id)
			log.Info().Str("module", "app.rooms").Int64("room_id", int64(id)).Msg("room deleted")
			return id, nil, true
		}
		r.rooms[id] = remaining
		log.Info().Str("module", "app.rooms").Str("sid", string(sid)).Int64("room_id", int64(id)).Int("members", len(remaining)).Msg("member left")
		return id, slices.Clone(remaining), true
	}
	return 0, nil, false
}

func (r *RoomRegistry) Members(id domain.RoomID) ([]core.SessionID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	members, ok := r.rooms[id]
	if !ok {
		return nil, false
	}
	return slices.Clone(members), true
}

func (r *RoomRegistry) List() []core.RoomInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]core.RoomInfo, 0, len(r.rooms))
	for _, id := range slices.Sorted(maps.Keys(r.rooms)) {
		members := slices.Clone(r.rooms[id])
		out = append(out, core.RoomInfo{ID: id, Members: members, MemberCount: len(members)})
	}
	return out
}
