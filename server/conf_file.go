package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
)

// ReadConfig reads a UserConfig from the TOML file at path. If the file does
// not exist, DefaultConfig is written to it and returned. Fields missing from
// the file keep their default values.
func ReadConfig(path string) (UserConfig, error) {
	c := DefaultConfig()
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return c, WriteConfig(path, c)
		}
		return c, fmt.Errorf("read config: %w", err)
	}
	if len(contents) != 0 {
		if err := toml.Unmarshal(contents, &c); err != nil {
			return c, fmt.Errorf("decode config: %w", err)
		}
	}
	return c, nil
}

// WriteConfig encodes c as TOML and writes it to path, creating the parent
// directory if needed.
func WriteConfig(path string, c UserConfig) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0777); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	encoded, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, encoded, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
