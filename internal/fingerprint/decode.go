package fingerprint

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// Decode reads a JSON encoded Result. Unknown fields are ignored and weights are
// not range checked.
func Decode(r io.Reader) (Result, error) {
	var result Result
	if r == nil {
		return result, errors.New("decode fingerprint: nil reader")
	}
	if err := json.NewDecoder(r).Decode(&result); err != nil {
		return Result{}, fmt.Errorf("decode fingerprint: %w", err)
	}
	return result, nil
}

// ReadFile decodes the Result stored at path.
func ReadFile(path string) (Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open fingerprint %q: %w", path, err)
	}
	defer file.Close()

	result, err := Decode(file)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", path, err)
	}
	return result, nil
}
