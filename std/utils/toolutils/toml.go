package toolutils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
)

// ReadToml decodes a TOML file into dest. Unknown keys are an error.
func ReadToml(dest any, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("unable to open configuration file: %w", err)
	}
	defer f.Close()

	if err = toml.NewDecoder(f).Strict(true).Decode(dest); err != nil {
		return fmt.Errorf("unable to parse configuration file: %w", err)
	}
	return nil
}

// ReadConfig decodes a TOML file if its name ends in .toml, YAML otherwise.
func ReadConfig(dest any, file string) error {
	if filepath.Ext(file) == ".toml" {
		return ReadToml(dest, file)
	}
	return ReadYaml(dest, file)
}
