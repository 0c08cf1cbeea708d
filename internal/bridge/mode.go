// Package bridge describes the command bridge scene: its light/dark
// palettes, the fixtures that make up the interior and the order they are
// drawn in. It holds data only; the engine packages turn it into GPU work.
package bridge

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Mode selects the color scheme of the scene. It never affects motion.
type Mode string

const (
	ModeDark  Mode = "dark"
	ModeLight Mode = "light"
)

// ParseMode parses a mode name, ignoring case and surrounding space.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeDark:
		return ModeDark, nil
	case ModeLight:
		return ModeLight, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want %q or %q)", s, ModeDark, ModeLight)
	}
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeLight {
		return ModeDark
	}
	return ModeLight
}

func (m Mode) String() string {
	return string(m)
}

// UnmarshalYAML rejects unknown modes when loading config files.
func (m *Mode) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseMode(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*m = parsed
	return nil
}
