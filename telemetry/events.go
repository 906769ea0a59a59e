// Package telemetry provides frame statistics, performance timing and CSV
// output for sculpting sessions.
package telemetry

import (
	"log/slog"

	"github.com/pthm-cable/discosculpter/components"
)

// EventType identifies telemetry events.
type EventType uint8

const (
	EventReset EventType = iota
	EventRebuild
	EventModeSwitch
	EventEffectSwitch
	EventRemoteConfig
)

var eventNames = [...]string{
	EventReset:        "reset",
	EventRebuild:      "rebuild",
	EventModeSwitch:   "mode_switch",
	EventEffectSwitch: "effect_switch",
	EventRemoteConfig: "remote_config",
}

// String returns the event name.
func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Event represents a single discrete change to the sphere.
type Event struct {
	Type  EventType
	Frame int32

	// Optional fields depending on event type
	Count  int               // particle count after a rebuild
	Mode   components.Mode   // mode after a switch
	Effect components.Effect // effect after a switch
}

// NewResetEvent creates a reset event.
func NewResetEvent(frame int32) Event {
	return Event{Type: EventReset, Frame: frame}
}

// NewRebuildEvent creates a rebuild event.
func NewRebuildEvent(frame int32, count int) Event {
	return Event{Type: EventRebuild, Frame: frame, Count: count}
}

// NewModeSwitchEvent creates a mode switch event.
func NewModeSwitchEvent(frame int32, mode components.Mode) Event {
	return Event{Type: EventModeSwitch, Frame: frame, Mode: mode}
}

// NewEffectSwitchEvent creates an effect switch event.
func NewEffectSwitchEvent(frame int32, effect components.Effect) Event {
	return Event{Type: EventEffectSwitch, Frame: frame, Effect: effect}
}

// NewRemoteConfigEvent creates an event for a snapshot received over the
// remote channel.
func NewRemoteConfigEvent(frame int32) Event {
	return Event{Type: EventRemoteConfig, Frame: frame}
}

// LogValue implements slog.LogValuer for structured logging.
func (e Event) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("type", e.Type.String()),
		slog.Int("frame", int(e.Frame)),
	}
	switch e.Type {
	case EventRebuild:
		attrs = append(attrs, slog.Int("count", e.Count))
	case EventModeSwitch:
		attrs = append(attrs, slog.String("mode", e.Mode.String()))
	case EventEffectSwitch:
		attrs = append(attrs, slog.String("effect", e.Effect.String()))
	}
	return slog.GroupValue(attrs...)
}
