package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const templateHeader = `# datumctl configuration
#
# log.level: trace|debug|info|warn|error|off
# output.format: table|json|yaml
# output.time_layout placeholders: %Y %m %d %H %M %S %n

`

// Template renders Default as a commented TOML document.
func Template() ([]byte, error) {
	body, err := toml.Marshal(Default())
	if err != nil {
		return nil, fmt.Errorf("config template render failed: %w", err)
	}
	return append([]byte(templateHeader), body...), nil
}

func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	data, err := Template()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config dir create failed (%s): %w", dir, err)
		}
	}
	return os.WriteFile(path, data, 0o600)
}
