package dataset

import (
	"bytes"
	"encoding/gob"
)

// legacyDataset is the retired gob artifact layout, kept for read
// compatibility only. Decoding materializes plain structs and nothing else;
// the result still passes through the same invariant checks as the canonical
// format.
type legacyDataset struct {
	SchemaVersion  int
	GeneratedAt    string
	Regions        []legacyRegion
	Constellations []legacyConstellation
	Systems        []legacySystem
	Links          [][2]int32
}

type legacyRegion struct {
	ID   int32
	Name string
}

type legacyConstellation struct {
	ID       int32
	RegionID int32
	Name     string
}

type legacySystem struct {
	ID              int32
	Name            string
	RegionID        int32
	ConstellationID int32
	Security        float64
}

func decodeLegacy(raw []byte) (*Artifact, error) {
	var legacy legacyDataset
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&legacy); err != nil {
		return nil, schemaErrorf("legacy gob decode: %v", err)
	}

	a := &Artifact{
		SchemaVersion: legacy.SchemaVersion,
		GeneratedAt:   legacy.GeneratedAt,
	}
	for _, r := range legacy.Regions {
		a.Regions = append(a.Regions, Region(r))
	}
	for _, c := range legacy.Constellations {
		a.Constellations = append(a.Constellations, Constellation(c))
	}
	for _, s := range legacy.Systems {
		a.Systems = append(a.Systems, System(s))
	}
	for _, l := range legacy.Links {
		a.Links = append(a.Links, Link{A: l[0], B: l[1]})
	}
	return a, nil
}

// encodeLegacy renders an artifact in the retired gob layout. Only tests use
// it, to prove the compatibility path stays honest.
func encodeLegacy(a *Artifact) ([]byte, error) {
	legacy := legacyDataset{
		SchemaVersion: a.SchemaVersion,
		GeneratedAt:   a.GeneratedAt,
	}
	for _, r := range a.Regions {
		legacy.Regions = append(legacy.Regions, legacyRegion(r))
	}
	for _, c := range a.Constellations {
		legacy.Constellations = append(legacy.Constellations, legacyConstellation(c))
	}
	for _, s := range a.Systems {
		legacy.Systems = append(legacy.Systems, legacySystem(s))
	}
	for _, l := range a.Links {
		legacy.Links = append(legacy.Links, [2]int32{l.A, l.B})
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(legacy); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
