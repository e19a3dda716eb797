package dataset

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
)

// Manifest is the out-of-band integrity record for a dataset artifact. It is
// produced by the dataset build process and shipped next to the artifact.
type Manifest struct {
	SchemaVersion int    `json:"schema_version"`
	SHA256        string `json:"sha256"`
	GeneratedAt   string `json:"generated_at,omitempty"`
}

// ManifestPathFor returns the conventional manifest location for an artifact.
func ManifestPathFor(datasetPath string) string {
	return datasetPath + ".manifest.json"
}

// ReadManifest reads and parses a manifest file.
func ReadManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if m.SHA256 == "" {
		return nil, fmt.Errorf("manifest %s has no sha256 entry", path)
	}
	return &m, nil
}

// WriteManifest writes a manifest for the given artifact bytes. Used by tests
// and fixture tooling; production manifests come from the dataset build.
func WriteManifest(path string, artifact []byte, schemaVersion int, generatedAt string) error {
	m := Manifest{
		SchemaVersion: schemaVersion,
		SHA256:        Digest(artifact),
		GeneratedAt:   generatedAt,
	}
	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(raw, '\n'), 0644)
}

// Digest returns the lowercase hex SHA-256 of the artifact bytes.
func Digest(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
