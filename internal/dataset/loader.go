package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"eve-navigator/internal/logger"
)

// Load reads, integrity-checks, parses, and validates a dataset artifact.
// manifestPath may be empty, in which case the "<dataset>.manifest.json"
// convention is used. The order is strict: bytes are digested and compared
// against the manifest before any deserialization is attempted, and every
// failure aborts the whole load — there is no partially-loaded graph.
func Load(path, manifestPath string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	if manifestPath == "" {
		manifestPath = ManifestPathFor(path)
	}
	manifest, err := ReadManifest(manifestPath)
	if err != nil {
		return nil, err
	}

	digest := Digest(raw)
	if !strings.EqualFold(digest, manifest.SHA256) {
		return nil, &IntegrityError{Path: path, Want: strings.ToLower(manifest.SHA256), Got: digest}
	}

	var artifact *Artifact
	if isLegacyPath(path) {
		logger.Warn("Dataset", fmt.Sprintf("%s uses the deprecated gob format; re-pack it as JSONL", filepath.Base(path)))
		artifact, err = decodeLegacy(raw)
	} else {
		artifact, err = decodeJSONL(raw)
	}
	if err != nil {
		return nil, err
	}
	if manifest.SchemaVersion != 0 && artifact.SchemaVersion != manifest.SchemaVersion {
		return nil, schemaErrorf("artifact schema version %d disagrees with manifest %d",
			artifact.SchemaVersion, manifest.SchemaVersion)
	}

	data, err := artifact.Build()
	if err != nil {
		return nil, err
	}
	data.Checksum = digest

	logger.Info("Dataset", fmt.Sprintf("Loaded %s (%s)", filepath.Base(path), artifact))
	logger.Section("Dataset Statistics")
	logger.Stats("Regions", len(data.Regions))
	logger.Stats("Systems", len(data.Systems))
	logger.Stats("Links", data.Universe.Links())
	logger.Stats("Borders", data.Universe.Borders())
	return data, nil
}

// Verify runs the same integrity, parse, and invariant pipeline as Load but
// discards the built graph. Used by the verify subcommand.
func Verify(path, manifestPath string) error {
	_, err := Load(path, manifestPath)
	return err
}

func isLegacyPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".gob")
}
