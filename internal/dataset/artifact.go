package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"eve-navigator/internal/graph"
)

// Link is an undirected stargate connection between two system ids.
type Link struct {
	A int32 `json:"a"`
	B int32 `json:"b"`
}

// Artifact is the plain-data form of a dataset: what the canonical JSONL
// format (and the legacy gob format) decode into before validation. Only
// primitives and flat structs are ever materialized from disk.
type Artifact struct {
	SchemaVersion  int
	GeneratedAt    string
	Regions        []Region
	Constellations []Constellation
	Systems        []System
	Links          []Link
}

// Build validates the artifact invariants and assembles the immutable Data.
// Any violation yields a SchemaError; no partially-built Data is returned.
func (a *Artifact) Build() (*Data, error) {
	if a.SchemaVersion != SchemaVersion {
		return nil, schemaErrorf("unsupported schema version %d (want %d)", a.SchemaVersion, SchemaVersion)
	}
	if len(a.Systems) == 0 {
		return nil, schemaErrorf("artifact contains no systems")
	}

	data := &Data{
		Systems:        make(map[int32]*System, len(a.Systems)),
		SystemByName:   make(map[string]int32, len(a.Systems)),
		Regions:        make(map[int32]*Region, len(a.Regions)),
		RegionByName:   make(map[string]int32, len(a.Regions)),
		Constellations: make(map[int32]*Constellation, len(a.Constellations)),
		Universe:       graph.NewUniverse(),
		SchemaVersion:  a.SchemaVersion,
		GeneratedAt:    a.GeneratedAt,
	}

	for i := range a.Regions {
		r := a.Regions[i]
		if _, dup := data.Regions[r.ID]; dup {
			return nil, schemaErrorf("duplicate region id %d", r.ID)
		}
		data.Regions[r.ID] = &r
		data.RegionByName[strings.ToLower(r.Name)] = r.ID
	}
	for i := range a.Constellations {
		c := a.Constellations[i]
		if _, dup := data.Constellations[c.ID]; dup {
			return nil, schemaErrorf("duplicate constellation id %d", c.ID)
		}
		data.Constellations[c.ID] = &c
	}

	for i := range a.Systems {
		s := a.Systems[i]
		if s.ID <= 0 {
			return nil, schemaErrorf("system id %d must be positive", s.ID)
		}
		if s.Name == "" {
			return nil, schemaErrorf("system %d has empty name", s.ID)
		}
		if _, dup := data.Systems[s.ID]; dup {
			return nil, schemaErrorf("duplicate system id %d", s.ID)
		}
		lower := strings.ToLower(s.Name)
		if _, dup := data.SystemByName[lower]; dup {
			return nil, schemaErrorf("duplicate system name %q", s.Name)
		}
		data.Systems[s.ID] = &s
		data.SystemByName[lower] = s.ID
		data.SystemNames = append(data.SystemNames, s.Name)
		data.Universe.AddSystem(s.ID, s.Security, s.RegionID, s.ConstellationID)
	}
	sort.Strings(data.SystemNames)

	for _, l := range a.Links {
		if l.A == l.B {
			return nil, schemaErrorf("self-loop link on system %d", l.A)
		}
		if _, ok := data.Systems[l.A]; !ok {
			return nil, schemaErrorf("link references unknown system %d", l.A)
		}
		if _, ok := data.Systems[l.B]; !ok {
			return nil, schemaErrorf("link references unknown system %d", l.B)
		}
		data.Universe.AddLink(l.A, l.B)
	}

	data.Universe.Freeze()
	return data, nil
}

// record is the kind-tagged line format of the canonical JSONL artifact.
type record struct {
	Kind string `json:"kind"`

	// meta
	SchemaVersion int    `json:"schema_version,omitempty"`
	GeneratedAt   string `json:"generated_at,omitempty"`

	// region / constellation / system
	ID       int32   `json:"id,omitempty"`
	Name     string  `json:"name,omitempty"`
	RegionID int32   `json:"region_id,omitempty"`
	ConstID  int32   `json:"constellation_id,omitempty"`
	Security float64 `json:"security,omitempty"`

	// link
	A int32 `json:"a,omitempty"`
	B int32 `json:"b,omitempty"`
}

// Encode renders the artifact as canonical JSONL: one meta line followed by
// regions, constellations, systems, and links, each sorted by id so identical
// inputs always produce identical bytes (and therefore identical checksums).
func (a *Artifact) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)

	write := func(r record) error { return enc.Encode(r) }

	if err := write(record{Kind: "meta", SchemaVersion: a.SchemaVersion, GeneratedAt: a.GeneratedAt}); err != nil {
		return nil, err
	}

	regions := append([]Region(nil), a.Regions...)
	sort.Slice(regions, func(i, j int) bool { return regions[i].ID < regions[j].ID })
	for _, r := range regions {
		if err := write(record{Kind: "region", ID: r.ID, Name: r.Name}); err != nil {
			return nil, err
		}
	}

	consts := append([]Constellation(nil), a.Constellations...)
	sort.Slice(consts, func(i, j int) bool { return consts[i].ID < consts[j].ID })
	for _, c := range consts {
		if err := write(record{Kind: "constellation", ID: c.ID, RegionID: c.RegionID, Name: c.Name}); err != nil {
			return nil, err
		}
	}

	systems := append([]System(nil), a.Systems...)
	sort.Slice(systems, func(i, j int) bool { return systems[i].ID < systems[j].ID })
	for _, s := range systems {
		if err := write(record{
			Kind: "system", ID: s.ID, Name: s.Name,
			RegionID: s.RegionID, ConstID: s.ConstellationID, Security: s.Security,
		}); err != nil {
			return nil, err
		}
	}

	links := append([]Link(nil), a.Links...)
	for i, l := range links {
		if l.B < l.A {
			links[i] = Link{A: l.B, B: l.A}
		}
	}
	sort.Slice(links, func(i, j int) bool {
		if links[i].A == links[j].A {
			return links[i].B < links[j].B
		}
		return links[i].A < links[j].A
	})
	for _, l := range links {
		if err := write(record{Kind: "link", A: l.A, B: l.B}); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// decodeJSONL parses canonical JSONL bytes into an Artifact. The first
// non-empty line must be the meta record; any malformed line fails the whole
// load rather than being skipped.
func decodeJSONL(raw []byte) (*Artifact, error) {
	a := &Artifact{}
	sawMeta := false

	lines := bytes.Split(raw, []byte("\n"))
	for i, line := range lines {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		var r record
		if err := json.Unmarshal(line, &r); err != nil {
			return nil, schemaErrorf("line %d: %v", i+1, err)
		}
		switch r.Kind {
		case "meta":
			if sawMeta {
				return nil, schemaErrorf("line %d: duplicate meta record", i+1)
			}
			sawMeta = true
			a.SchemaVersion = r.SchemaVersion
			a.GeneratedAt = r.GeneratedAt
		case "region":
			a.Regions = append(a.Regions, Region{ID: r.ID, Name: r.Name})
		case "constellation":
			a.Constellations = append(a.Constellations, Constellation{ID: r.ID, RegionID: r.RegionID, Name: r.Name})
		case "system":
			a.Systems = append(a.Systems, System{
				ID: r.ID, Name: r.Name,
				RegionID: r.RegionID, ConstellationID: r.ConstID, Security: r.Security,
			})
		case "link":
			a.Links = append(a.Links, Link{A: r.A, B: r.B})
		default:
			return nil, schemaErrorf("line %d: unknown record kind %q", i+1, r.Kind)
		}
		if !sawMeta {
			return nil, schemaErrorf("line %d: first record must be meta", i+1)
		}
	}
	if !sawMeta {
		return nil, schemaErrorf("artifact has no meta record")
	}
	return a, nil
}

// String implements fmt.Stringer for load-time logging.
func (a *Artifact) String() string {
	return fmt.Sprintf("schema v%d: %d regions, %d constellations, %d systems, %d links",
		a.SchemaVersion, len(a.Regions), len(a.Constellations), len(a.Systems), len(a.Links))
}
