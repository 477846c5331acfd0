package vertex

import (
	"fmt"
	"strconv"
	"strings"
)

// Dash is an on/off pattern measured in path points, not pixels.
// A zero Off length disables dashing.
type Dash struct {
	On  int
	Off int
}

// Solid is the disabled pattern.
var Solid = Dash{}

// Enabled reports whether the pattern produces gaps.
func (d Dash) Enabled() bool {
	return d.Off > 0
}

// off reports whether path position pos falls into the off phase.
func (d Dash) off(pos int) bool {
	return d.Off > 0 && pos%(d.On+d.Off) >= d.On
}

// String formats the pattern as "on,off".
func (d Dash) String() string {
	return strconv.Itoa(d.On) + "," + strconv.Itoa(d.Off)
}

// ParseDash parses "on,off". An empty string is the solid pattern.
func ParseDash(s string) (Dash, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Solid, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Dash{}, fmt.Errorf("invalid dash pattern %q: expected on,off", s)
	}

	on, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Dash{}, fmt.Errorf("invalid dash on length: %w", err)
	}
	off, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Dash{}, fmt.Errorf("invalid dash off length: %w", err)
	}
	if on < 0 || off < 0 {
		return Dash{}, fmt.Errorf("invalid dash pattern %q: lengths must be non-negative", s)
	}

	return Dash{On: on, Off: off}, nil
}
