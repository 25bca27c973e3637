package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/zeebo/blake3"
	"gopkg.in/yaml.v3"
)

// DefaultLastSettingsFile is where the CLI remembers the settings file of
// the previous run.
const DefaultLastSettingsFile = ".confix_last_settings.yml"

// LastSettings is the persisted record of the previous run. Digest is the
// BLAKE3 hash of the settings file when it was recorded.
type LastSettings struct {
	SettingsFile string `yaml:"settings_file"`
	Digest       string `yaml:"digest,omitempty"`
}

// SettingsDigest returns the hex BLAKE3 digest of the file at path.
func SettingsDigest(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("settings: digest %s: %w", path, err)
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Changed reports whether the recorded settings file no longer matches its
// digest. Records without a digest never report a change.
func (l *LastSettings) Changed() (bool, error) {
	if l.Digest == "" {
		return false, nil
	}
	current, err := SettingsDigest(l.SettingsFile)
	if err != nil {
		return false, err
	}
	return current != l.Digest, nil
}

// LoadLastSettings reads the record at path. A missing file yields an error
// matching os.ErrNotExist.
func LoadLastSettings(path string) (*LastSettings, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("last settings: open %s: %w", path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var last LastSettings
	if err := decoder.Decode(&last); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("last settings: %s is empty", path)
		}
		return nil, fmt.Errorf("last settings: parse %s: %w", path, err)
	}
	last.SettingsFile = strings.TrimSpace(last.SettingsFile)
	if last.SettingsFile == "" {
		return nil, fmt.Errorf("last settings: %s names no settings file", path)
	}
	return &last, nil
}

// SaveLastSettings writes the record to path, replacing any previous one.
func SaveLastSettings(path string, last LastSettings) error {
	data, err := yaml.Marshal(last)
	if err != nil {
		return fmt.Errorf("last settings: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("last settings: write %s: %w", path, err)
	}
	return nil
}
