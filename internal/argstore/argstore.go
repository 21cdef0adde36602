// Package argstore reads and rewrites the JSON file carrying extra engine
// run arguments. The file holds exactly one list of strings; anything else
// is a validation failure. A successful load rewrites the file
// pretty-printed so hand edits converge to a canonical form.
package argstore

import (
	"encoding/json"
	"fmt"
	"os"

	"podbay/pkg/logging"
)

// ValidationError reports a file whose contents are not a list of strings.
type ValidationError struct {
	// Path is the offending file.
	Path string
	// Reason describes what was wrong with the contents.
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid argument file %s: %s", e.Path, e.Reason)
}

// Store is a JSON argument file on disk.
type Store struct {
	path string
}

// New returns a store over the given file path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the file the store reads and rewrites.
func (s *Store) Path() string {
	return s.path
}

// Load reads the file, validates that it holds exactly one list of strings
// and rewrites it pretty-printed. The validated arguments are returned in
// file order.
func (s *Store) Load() ([]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	args, err := parse(s.path, data)
	if err != nil {
		return nil, err
	}

	pretty, err := json.MarshalIndent(args, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("formatting %s: %w", s.path, err)
	}
	if err := os.WriteFile(s.path, pretty, 0o644); err != nil {
		return nil, fmt.Errorf("rewriting %s: %w", s.path, err)
	}

	logging.Debug("ArgStore", "loaded %d arguments from %s", len(args), s.path)
	return args, nil
}

// Validate checks the file without rewriting it.
func (s *Store) Validate() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", s.path, err)
	}
	_, err = parse(s.path, data)
	return err
}

func parse(path string, data []byte) ([]string, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ValidationError{Path: path, Reason: err.Error()}
	}

	list, ok := raw.([]interface{})
	if !ok {
		return nil, &ValidationError{Path: path, Reason: fmt.Sprintf("%v is not a list", raw)}
	}

	args := make([]string, 0, len(list))
	for _, element := range list {
		str, ok := element.(string)
		if !ok {
			return nil, &ValidationError{Path: path, Reason: fmt.Sprintf("%v is not a string", element)}
		}
		args = append(args, str)
	}
	return args, nil
}
