package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileHeader = "# wildwest scene config. Flags override these values.\n"

// WriteFile validates the config and writes it as YAML to path, creating
// parent directories. An empty path means the user's config directory.
func (c *Config) WriteFile(path string) error {
	if path == "" {
		path = filepath.Join(ConfigDir(), "config.yaml")
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("refusing to write invalid config: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(fileHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
