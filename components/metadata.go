package components

import "fmt"

// String returns the lowercase name of a Mode.
func (m Mode) String() string {
	names := ModeNames()
	if int(m) < len(names) {
		return names[m]
	}
	return "unknown"
}

// ModeNames returns the names of all modes, in constant order.
func ModeNames() []string {
	return []string{"solid", "liquid"}
}

// ParseMode returns the Mode with the given name.
func ParseMode(s string) (Mode, error) {
	for i, name := range ModeNames() {
		if name == s {
			return Mode(i), nil
		}
	}
	return ModeSolid, fmt.Errorf("unknown mode %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// String returns the lowercase name of an Effect.
func (e Effect) String() string {
	names := EffectNames()
	if int(e) < len(names) {
		return names[e]
	}
	return "unknown"
}

// EffectNames returns the names of all effects, in constant order.
func EffectNames() []string {
	return []string{"none", "fire", "water", "toxic", "lightning"}
}

// EffectCount returns the number of effects.
func EffectCount() int {
	return len(EffectNames())
}

// ParseEffect returns the Effect with the given name.
func ParseEffect(s string) (Effect, error) {
	for i, name := range EffectNames() {
		if name == s {
			return Effect(i), nil
		}
	}
	return EffectNone, fmt.Errorf("unknown effect %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (e Effect) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Effect) UnmarshalText(text []byte) error {
	parsed, err := ParseEffect(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}
