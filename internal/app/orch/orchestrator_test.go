package orch

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"sync"
	"testing"

	"github.com/dkeye/Handshake/internal/app"
	"github.com/dkeye/Handshake/internal/core"
	"github.com/dkeye/Handshake/internal/domain"
	"github.com/dkeye/Handshake/internal/telemetry"
)

type fakeConn struct {
	mu  sync.Mutex
	out []domain.Envelope
}

func (c *fakeConn) TrySend(f core.Frame) error {
	var env domain.Envelope
	if err := json.Unmarshal(f, &env); err != nil {
		return err
	}
	c.mu.Lock()
	c.out = append(c.out, env)
	c.mu.Unlock()
	return nil
}

func (c *fakeConn) Close() {}

// take returns and clears everything received so far.
func (c *fakeConn) take() []domain.Envelope {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.out
	c.out = nil
	return out
}

func newTestOrchestrator() *Orchestrator {
	sessions := app.NewDirectory()
	return &Orchestrator{
		Sessions: sessions,
		Rooms:    app.NewRoomRegistry(),
		Relay:    app.NewRelay(sessions, nil),
		Stats:    telemetry.NewMemoryStore(),
	}
}

func connect(t *testing.T, o *Orchestrator, sid core.SessionID) *fakeConn {
	t.Helper()
	c := &fakeConn{}
	o.Connect(sid, c, nil)
	evs := c.take()
	if len(evs) != 1 || evs[0].Event != domain.EventOnSession {
		t.Fatalf("%s: expected on-session, got %+v", sid, evs)
	}
	return c
}

func only(t *testing.T, c *fakeConn, event string) json.RawMessage {
	t.Helper()
	evs := c.take()
	if len(evs) != 1 || evs[0].Event != event {
		t.Fatalf("expected exactly one %s, got %+v", event, evs)
	}
	return evs[0].Data
}

func mustSignal(t *testing.T, o *Orchestrator, sid core.SessionID, kind domain.SignalKind, payload json.RawMessage) {
	t.Helper()
	if ok, err := o.Signal(sid, kind, payload); !ok || err != nil {
		t.Fatalf("%s from %s: got (%v, %v)", kind, sid, ok, err)
	}
}

func decodeIDs(t *testing.T, data json.RawMessage) []core.SessionID {
	t.Helper()
	var ids []core.SessionID
	if err := json.Unmarshal(data, &ids); err != nil {
		t.Fatalf("decode ids %s: %v", data, err)
	}
	return ids
}

func TestOrchestrator_TwoPeerHandshake(t *testing.T) {
	o := newTestOrchestrator()
	a := connect(t, o, "A")
	b := connect(t, o, "B")

	o.CreateRoom("A")
	if got := string(only(t, a, domain.EventOnCreate)); got != "0" {
		t.Fatalf("on-create: %s", got)
	}

	o.JoinRoom("B", 0)
	if ids := decodeIDs(t, only(t, b, domain.EventOnJoin)); !slices.Equal(ids, []core.SessionID{"A"}) {
		t.Fatalf("on-join: %v", ids)
	}
	if n := len(a.take()); n != 0 {
		t.Fatalf("A must not hear about the join, got %d events", n)
	}

	offer := json.RawMessage(`{"sdp":{"type":"offer","sdp":"v=0"},"senderId":"B","receiverId":"A"}`)
	if ok, err := o.Signal("B", domain.SignalOffer, offer); !ok || err != nil {
		t.Fatalf("offer not delivered")
	}
	if got := only(t, a, domain.EventOnReceivedOffer); string(got) != string(offer) {
		t.Fatalf("offer payload changed: %s", got)
	}

	answer := json.RawMessage(`{"sdp":{"type":"answer","sdp":"v=0"},"senderId":"A","receiverId":"B"}`)
	mustSignal(t, o, "A", domain.SignalAnswer, answer)
	if got := only(t, b, domain.EventOnReceivedAnswer); string(got) != string(answer) {
		t.Fatalf("answer payload changed: %s", got)
	}

	cand := json.RawMessage(`{"candidate":{"candidate":"candidate:1 1 udp 1 10.0.0.1 5000 typ host"},"senderId":"A","receiverId":"B"}`)
	mustSignal(t, o, "A", domain.SignalCandidate, cand)
	only(t, b, domain.EventOnReceivedCandidate)

	o.Disconnect("B")
	var who string
	if err := json.Unmarshal(only(t, a, domain.EventOnUserDisconnect), &who); err != nil || who != "B" {
		t.Fatalf("on-user-disconnect: %q %v", who, err)
	}
	members, ok := o.Rooms.Members(0)
	if !ok || !slices.Equal(members, []core.SessionID{"A"}) {
		t.Fatalf("room 0 members: %v %v", members, ok)
	}

	o.Disconnect("A")
	if _, ok := o.Rooms.Members(0); ok {
		t.Fatalf("room 0 should be gone")
	}
	if o.Sessions.Count() != 0 {
		t.Fatalf("sessions left: %d", o.Sessions.Count())
	}
}

func TestOrchestrator_JoinMissingRoom(t *testing.T) {
	o := newTestOrchestrator()
	b := connect(t, o, "B")

	if _, ok := o.JoinRoom("B", 42); ok {
		t.Fatalf("join on missing room succeeded")
	}
	evs := b.take()
	if len(evs) != 1 || evs[0].Event != domain.EventOnJoin || len(evs[0].Data) != 0 {
		t.Fatalf("expected bare on-join, got %+v", evs)
	}
	if len(o.Rooms.List()) != 0 {
		t.Fatalf("join must not create a room")
	}
}

func TestOrchestrator_SignalMalformedRoute(t *testing.T) {
	o := newTestOrchestrator()
	a := connect(t, o, "A")
	b := connect(t, o, "B")

	payloads := []string{
		`{"senderId":"A"}`,
		`[1,2]`,
		`{"senderId":"A","receiverId":5}`,
		`{"senderId":7,"receiverId":"B"}`,
	}
	for _, p := range payloads {
		ok, err := o.Signal("A", domain.SignalOffer, json.RawMessage(p))
		if ok || !errors.Is(err, ErrBadSignal) {
			t.Fatalf("%s: got (%v, %v), want ErrBadSignal", p, ok, err)
		}
	}
	if n := len(a.take()) + len(b.take()); n != 0 {
		t.Fatalf("unexpected events: %d", n)
	}
}

func TestOrchestrator_SignalToDepartedPeer(t *testing.T) {
	o := newTestOrchestrator()
	connect(t, o, "A")
	connect(t, o, "B")
	o.Disconnect("B")

	if ok, err := o.Signal("A", domain.SignalCandidate, json.RawMessage(`{"senderId":"A","receiverId":"B"}`)); ok || err != nil {
		t.Fatalf("delivered to departed session")
	}
}

func TestOrchestrator_StrictSender(t *testing.T) {
	o := newTestOrchestrator()
	o.StrictSender = true
	connect(t, o, "A")
	b := connect(t, o, "B")

	spoofed := json.RawMessage(`{"senderId":"someone-else","receiverId":"B"}`)
	if ok, err := o.Signal("A", domain.SignalOffer, spoofed); ok || err != nil {
		t.Fatalf("spoofed sender delivered")
	}
	if n := len(b.take()); n != 0 {
		t.Fatalf("B got %d events", n)
	}

	honest := json.RawMessage(`{"senderId":"A","receiverId":"B"}`)
	if ok, err := o.Signal("A", domain.SignalOffer, honest); !ok || err != nil {
		t.Fatalf("honest sender dropped")
	}
	only(t, b, domain.EventOnReceivedOffer)
}

func TestOrchestrator_RemoveConnection(t *testing.T) {
	o := newTestOrchestrator()
	connect(t, o, "A")
	b := connect(t, o, "B")

	if !o.RemoveConnection("A", "B") {
		t.Fatalf("remove-connection not delivered")
	}
	var origin string
	if err := json.Unmarshal(only(t, b, domain.EventOnConnectionRemoval), &origin); err != nil || origin != "A" {
		t.Fatalf("origin: %q %v", origin, err)
	}
	if o.RemoveConnection("A", "nobody") {
		t.Fatalf("remove-connection to unknown session reported delivered")
	}
}

func TestOrchestrator_DisconnectLeavesEveryRoom(t *testing.T) {
	o := newTestOrchestrator()
	a := connect(t, o, "A")
	b := connect(t, o, "B")
	c := connect(t, o, "C")

	first := o.CreateRoom("A")
	second := o.CreateRoom("A")
	o.JoinRoom("B", first)
	o.JoinRoom("C", second)
	a.take()
	b.take()
	c.take()

	o.Disconnect("A")

	only(t, b, domain.EventOnUserDisconnect)
	only(t, c, domain.EventOnUserDisconnect)
	for _, id := range []domain.RoomID{first, second} {
		members, _ := o.Rooms.Members(id)
		if slices.Contains(members, "A") {
			t.Fatalf("room %d still lists A: %v", id, members)
		}
	}
}

func TestOrchestrator_DisconnectThreePeerRoom(t *testing.T) {
	o := newTestOrchestrator()
	connect(t, o, "A")
	b := connect(t, o, "B")
	c := connect(t, o, "C")

	id := o.CreateRoom("A")
	o.JoinRoom("B", id)
	o.JoinRoom("C", id)
	b.take()
	c.take()

	o.Disconnect("A")
	only(t, b, domain.EventOnUserDisconnect)
	only(t, c, domain.EventOnUserDisconnect)

	members, _ := o.Rooms.Members(id)
	if !slices.Equal(members, []core.SessionID{"B", "C"}) {
		t.Fatalf("members: %v", members)
	}
}

func TestOrchestrator_ReportStatistics(t *testing.T) {
	o := newTestOrchestrator()
	connect(t, o, "A")

	rec := telemetry.Record{
		Timestamp: 1700000000000,
		Battery:   81.5,
		Thermal:   []telemetry.ThermalReading{{Name: "cpu", Temperature: 41.2}},
	}
	o.ReportStatistics(context.Background(), "A", rec)

	snap, err := o.Stats.(telemetry.Store).Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snap["A"]) != 1 || snap["A"][0].Battery != 81.5 {
		t.Fatalf("snapshot: %+v", snap)
	}
}

func TestOrchestrator_ReportStatisticsWithoutSink(t *testing.T) {
	o := newTestOrchestrator()
	o.Stats = nil
	o.ReportStatistics(context.Background(), "A", telemetry.Record{})
}

func TestOrchestrator_DisconnectAfterDoubleJoinNotifiesOnce(t *testing.T) {
	o := newTestOrchestrator()
	a := connect(t, o, "A")
	b := connect(t, o, "B")

	id := o.CreateRoom("A")
	o.JoinRoom("B", id)
	o.JoinRoom("B", id)
	a.take()
	b.take()

	o.Disconnect("B")

	var who string
	if err := json.Unmarshal(only(t, a, domain.EventOnUserDisconnect), &who); err != nil || who != "B" {
		t.Fatalf("on-user-disconnect: %q %v", who, err)
	}
	members, _ := o.Rooms.Members(id)
	if !slices.Equal(members, []core.SessionID{"A"}) {
		t.Fatalf("members: %v", members)
	}
}
