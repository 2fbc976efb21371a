package utils

import (
	"encoding/json"
	"fmt"
	"os"
)

// Marshal generic struct to JSON
func MarshalToJSON[T any](input T) (string, error) {
	jsonData, err := json.Marshal(input)
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

// Unmarshal JSON to generic struct
func UnmarshalFromJSON[T any](data []byte, output *T) error {
	return json.Unmarshal(data, output)
}

// ReadJSONFile decodes the file into output. Fields missing from the file keep whatever output
// already holds, so callers can pre-fill defaults.
func ReadJSONFile[T any](path string, output *T) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := UnmarshalFromJSON(data, output); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
