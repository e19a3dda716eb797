package engine

import (
	"encoding/json"
	"fmt"

	"eve-navigator/internal/graph"
)

// Mode selects the cost model applied per traversed edge. The cost is a
// function of the destination system's security only; nothing is stored on
// the edges themselves.
type Mode int

const (
	// ModeShortest charges 1 per edge: pure hop count.
	ModeShortest Mode = iota
	// ModeSafe charges 1 for high-security destinations and penalizes
	// anything below the threshold, so low-security detours are only taken
	// when no high-security alternative exists.
	ModeSafe
	// ModeUnsafe is the symmetric inversion of ModeSafe, favoring
	// low- and null-security space.
	ModeUnsafe
)

// Penalty multipliers for the safe/unsafe cost models. Large enough that a
// penalized jump always loses to any plausible preferred-space detour.
const (
	kSafe   = 20.0
	kUnsafe = 20.0
)

// ParseMode maps the wire/CLI string onto the closed mode set. The empty
// string means shortest.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "shortest":
		return ModeShortest, nil
	case "safe":
		return ModeSafe, nil
	case "unsafe":
		return ModeUnsafe, nil
	default:
		return ModeShortest, invalidQueryf("unknown mode %q (want shortest, safe, or unsafe)", s)
	}
}

func (m Mode) String() string {
	switch m {
	case ModeSafe:
		return "safe"
	case ModeUnsafe:
		return "unsafe"
	default:
		return "shortest"
	}
}

// EdgeCost returns the cost of jumping into a system with the given security.
func (m Mode) EdgeCost(destSecurity float64) float64 {
	switch m {
	case ModeSafe:
		if destSecurity >= graph.HighSecThreshold {
			return 1
		}
		return 1 + kSafe*(graph.HighSecThreshold-destSecurity)
	case ModeUnsafe:
		if destSecurity < graph.HighSecThreshold {
			return 1
		}
		return 1 + kUnsafe*destSecurity
	default:
		return 1
	}
}

// MarshalJSON renders the mode as its wire string.
func (m Mode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON parses the wire string form.
func (m *Mode) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("mode: %w", err)
	}
	parsed, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
