package utils

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadConfiguration reads the JSON file at path into config.
// Fields absent from the file keep the value config already holds,
// so callers pass a struct pre-filled with defaults.
// A missing file is reported with an error wrapping fs.ErrNotExist.
func LoadConfiguration(path string, config any) error {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}
	// Parse the file into the configuration struct
	if err = json.Unmarshal(bytes, config); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
