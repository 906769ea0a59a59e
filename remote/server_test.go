package remote

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pthm-cable/discosculpter/components"
	"github.com/pthm-cable/discosculpter/config"
	"github.com/pthm-cable/discosculpter/telemetry"
)

func testControls() config.ControlsConfig {
	return config.ControlsConfig{
		ParticleCount: config.RangeConfig{Min: 1000, Max: 20000, Step: 1000},
		ParticleSize:  config.RangeConfig{Min: 0.02, Max: 0.3},
		MoldRadius:    config.RangeConfig{Min: 0.5, Max: 4},
		MoldStrength:  config.RangeConfig{Min: 0.01, Max: 1},
		Viscosity:     config.RangeConfig{Min: 0, Max: 0.2},
		Tension:       config.RangeConfig{Min: 0, Max: 0.1},
	}
}

func testBase() components.SphereConfig {
	return components.SphereConfig{
		ParticleCount: 12000,
		ParticleSize:  0.1,
		MoldRadius:    1.2,
		MoldStrength:  0.5,
		ColorA:        components.Hex(0x00ffff),
		ColorB:        components.Hex(0xff00ff),
		Mode:          components.ModeSolid,
		Viscosity:     0.05,
		Tension:       0.02,
		Effect:        components.EffectNone,
	}
}

func startTestServer(t *testing.T, buffer int) (*Server, *websocket.Conn) {
	t.Helper()
	s := NewServer(testControls(), buffer)
	hs := httptest.NewServer(s.Handler())
	t.Cleanup(hs.Close)

	url := "ws" + strings.TrimPrefix(hs.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	waitFor(t, func() bool { return s.Clients() == 1 })
	return s, conn
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for condition")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// drainOne waits until exactly one command is available and returns it.
func drainOne(t *testing.T, s *Server) Command {
	t.Helper()
	var got []Command
	waitFor(t, func() bool {
		s.Drain(func(c Command) { got = append(got, c) })
		return len(got) > 0
	})
	if len(got) != 1 {
		t.Fatalf("got %d commands, want 1", len(got))
	}
	return got[0]
}

func TestConfigMessageIsClampedAndMerged(t *testing.T) {
	s, conn := startTestServer(t, 4)

	msg := `{"type":"config","config":{"particleCount":50000,"mode":"liquid","effect":"fire","colorA":"#ff0000"}}`
	if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
		t.Fatal(err)
	}

	cmd := drainOne(t, s)
	if cmd.Kind != CommandConfig {
		t.Fatalf("kind = %d, want config", cmd.Kind)
	}
	cfg := cmd.Merge(testBase())
	if cfg.ParticleCount != 20000 {
		t.Errorf("ParticleCount = %d, want clamped 20000", cfg.ParticleCount)
	}
	if cfg.Mode != components.ModeLiquid || cfg.Effect != components.EffectFire {
		t.Errorf("mode/effect = %s/%s, want liquid/fire", cfg.Mode, cfg.Effect)
	}
	if cfg.ColorA != components.Hex(0xff0000) {
		t.Errorf("ColorA = %s, want #ff0000", cfg.ColorA)
	}
	// Omitted fields keep the live values
	if cfg.ColorB != components.Hex(0xff00ff) || cfg.MoldRadius != 1.2 {
		t.Errorf("omitted fields changed: colorB %s radius %f", cfg.ColorB, cfg.MoldRadius)
	}
}

func TestResetMessage(t *testing.T) {
	s, conn := startTestServer(t, 4)

	if err := conn.WriteJSON(Message{Type: TypeReset}); err != nil {
		t.Fatal(err)
	}
	if cmd := drainOne(t, s); cmd.Kind != CommandReset {
		t.Errorf("kind = %d, want reset", cmd.Kind)
	}
}

func TestInvalidMessagesGetErrorReply(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		want string
	}{
		{"malformed json", `{"type":`, "invalid message"},
		{"unknown type", `{"type":"explode"}`, "unknown message type"},
		{"config missing", `{"type":"config"}`, "without config"},
		{"bad effect", `{"type":"config","config":{"effect":"plasma"}}`, "invalid config"},
		{"bad color", `{"type":"config","config":{"colorA":"teal"}}`, "invalid config"},
	}

	s, conn := startTestServer(t, 4)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(tt.msg)); err != nil {
				t.Fatal(err)
			}
			conn.SetReadDeadline(time.Now().Add(2 * time.Second))
			var reply Message
			if err := conn.ReadJSON(&reply); err != nil {
				t.Fatalf("read reply: %v", err)
			}
			if reply.Type != TypeError || !strings.Contains(reply.Error, tt.want) {
				t.Errorf("reply = %+v, want error containing %q", reply, tt.want)
			}
		})
	}

	if n := s.Drain(func(Command) {}); n != 0 {
		t.Errorf("rejected messages enqueued %d commands", n)
	}
}

func TestBroadcastStats(t *testing.T) {
	s, conn := startTestServer(t, 4)

	s.Broadcast(telemetry.WindowStats{WindowEndFrame: 300, Particles: 12000, Effect: "water"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	if msg.Type != TypeStats || msg.Stats == nil {
		t.Fatalf("got %+v, want stats message", msg)
	}
	if msg.Stats.WindowEndFrame != 300 || msg.Stats.Particles != 12000 || msg.Stats.Effect != "water" {
		t.Errorf("stats = %+v", *msg.Stats)
	}
}

func TestClientRemovedOnDisconnect(t *testing.T) {
	s, conn := startTestServer(t, 4)
	conn.Close()
	waitFor(t, func() bool { return s.Clients() == 0 })
}

func TestEnqueueDropsOldest(t *testing.T) {
	s := NewServer(testControls(), 2)

	for i := 1; i <= 4; i++ {
		patch := []byte(fmt.Sprintf(`{"particleCount":%d}`, i*1000))
		s.enqueue(Command{Kind: CommandConfig, patch: patch, ranges: testControls()})
	}

	var counts []int
	s.Drain(func(c Command) { counts = append(counts, c.Merge(testBase()).ParticleCount) })
	if len(counts) != 2 || counts[0] != 3000 || counts[1] != 4000 {
		t.Errorf("drained %v, want [3000 4000]", counts)
	}
	if s.Dropped() != 2 {
		t.Errorf("Dropped = %d, want 2", s.Dropped())
	}
}

func TestStartAndShutdown(t *testing.T) {
	s := NewServer(testControls(), 1)
	if s.Addr() != "" {
		t.Errorf("Addr before Start = %q", s.Addr())
	}
	if err := s.Start("127.0.0.1:0"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.Addr() == "" {
		t.Error("Addr after Start is empty")
	}

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+s.Addr()+"/ws", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	waitFor(t, func() bool { return s.Clients() == 1 })

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown: %v", err)
	}
	waitFor(t, func() bool { return s.Clients() == 0 })
}

func TestPartialConfigMessagesCompose(t *testing.T) {
	s, conn := startTestServer(t, 4)

	msgs := []string{
		`{"type":"config","config":{"mode":"liquid"}}`,
		`{"type":"config","config":{"effect":"water","moldRadius":9}}`,
	}
	for _, m := range msgs {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(m)); err != nil {
			t.Fatal(err)
		}
	}

	// Both land before the loop drains, as within one frame.
	var cmds []Command
	waitFor(t, func() bool {
		s.Drain(func(c Command) { cmds = append(cmds, c) })
		return len(cmds) == 2
	})

	live := testBase()
	live.ColorB = components.Hex(0x00ff00) // an edit made locally
	for _, c := range cmds {
		live = c.Merge(live)
	}

	if live.Mode != components.ModeLiquid {
		t.Errorf("Mode = %s, want liquid from the first message", live.Mode)
	}
	if live.Effect != components.EffectWater {
		t.Errorf("Effect = %s, want water", live.Effect)
	}
	if live.MoldRadius != 4 {
		t.Errorf("MoldRadius = %f, want clamped 4", live.MoldRadius)
	}
	if live.ColorB != components.Hex(0x00ff00) {
		t.Errorf("ColorB = %s, want the local edit kept", live.ColorB)
	}
}

func TestMergeIgnoresResetCommands(t *testing.T) {
	live := testBase()
	if got := (Command{Kind: CommandReset}).Merge(live); got != live {
		t.Errorf("reset Merge changed config: %+v", got)
	}
}

func TestBroadcastDoesNotWaitOnSlowClients(t *testing.T) {
	s := NewServer(testControls(), 1)

	// A client whose write loop never runs fills up after one message.
	stalled := &client{send: make(chan Message, 1)}
	s.clientsMu.Lock()
	s.clients[stalled] = struct{}{}
	s.clientsMu.Unlock()

	start := time.Now()
	for i := 0; i < 5; i++ {
		s.Broadcast(telemetry.WindowStats{WindowEndFrame: int32(i)})
	}
	if d := time.Since(start); d > 100*time.Millisecond {
		t.Errorf("Broadcast took %s with a stalled client", d)
	}
	if s.Lagged() != 4 {
		t.Errorf("Lagged = %d, want 4", s.Lagged())
	}
	if msg := <-stalled.send; msg.Stats.WindowEndFrame != 0 {
		t.Errorf("queued frame %d, want the first broadcast", msg.Stats.WindowEndFrame)
	}

	s.removeClient(stalled)
	if _, open := <-stalled.send; open {
		t.Error("send queue still open after removeClient")
	}
}

func TestBroadcastReachesHealthyClientBesideStalledOne(t *testing.T) {
	s, conn := startTestServer(t, 4)

	stalled := &client{send: make(chan Message)}
	s.clientsMu.Lock()
	s.clients[stalled] = struct{}{}
	s.clientsMu.Unlock()

	s.Broadcast(telemetry.WindowStats{WindowEndFrame: 42})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	if msg.Stats == nil || msg.Stats.WindowEndFrame != 42 {
		t.Errorf("got %+v, want stats for frame 42", msg)
	}
}
