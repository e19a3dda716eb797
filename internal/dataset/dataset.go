package dataset

import (
	"fmt"

	"eve-navigator/internal/graph"
)

// SchemaVersion is the canonical artifact schema understood by this build.
const SchemaVersion = 1

// Region represents a region from the static dataset.
type Region struct {
	ID   int32
	Name string
}

// Constellation represents a constellation from the static dataset.
type Constellation struct {
	ID       int32
	RegionID int32
	Name     string
}

// System represents a solar system from the static dataset. Security is a
// continuous value, typically -1.0..1.0 but deliberately not clamped;
// wormhole and edge-case systems may carry sentinel values.
type System struct {
	ID              int32
	Name            string
	RegionID        int32
	ConstellationID int32
	Security        float64
}

// Data holds the fully validated dataset: entity lookups plus the frozen
// Universe graph. It is built exactly once per process lifetime and never
// mutated afterwards.
type Data struct {
	Systems        map[int32]*System
	SystemByName   map[string]int32 // lowercase name -> systemID
	SystemNames    []string
	Regions        map[int32]*Region
	RegionByName   map[string]int32 // lowercase name -> regionID
	Constellations map[int32]*Constellation
	Universe       *graph.Universe

	SchemaVersion int
	Checksum      string // hex SHA-256 of the artifact bytes
	GeneratedAt   string
}

// IntegrityError reports a checksum mismatch between the artifact bytes and
// the manifest. It is fatal for the load attempt; deserialization is never
// attempted on mismatching bytes.
type IntegrityError struct {
	Path string
	Want string
	Got  string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("dataset %s failed integrity check: manifest sha256 %s, artifact sha256 %s", e.Path, e.Want, e.Got)
}

// SchemaError reports a malformed or invariant-violating dataset. It is fatal
// for the load attempt.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return "dataset schema violation: " + e.Reason
}

func schemaErrorf(format string, args ...interface{}) *SchemaError {
	return &SchemaError{Reason: fmt.Sprintf(format, args...)}
}
