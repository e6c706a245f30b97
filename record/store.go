package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore reads and writes deployment records under a root directory. One
// JSON document per deployment; the path is derived deterministically from the
// record Key.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir. The directory is created
// lazily on the first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Dir returns the root directory of the store.
func (s *FileStore) Dir() string {
	return s.dir
}

// FilePath returns the absolute path of the record for the given key.
func (s *FileStore) FilePath(key Key) string {
	return filepath.Join(s.dir, key.FileName())
}

// Record serializes rec to the path derived from key. This is the single
// durable write per successful deployment. Callers must derive a fresh key per
// new deployment; overwrites are not locked against.
func (s *FileStore) Record(key Key, rec DeploymentRecord) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("refusing to record: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create record directory %s: %w", s.dir, err)
	}

	b, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal deployment record: %w", err)
	}
	b = append(b, '\n')

	filePath := s.FilePath(key)
	if err := os.WriteFile(filePath, b, 0o644); err != nil {
		return fmt.Errorf("failed to write deployment record %s: %w", filePath, err)
	}

	return nil
}

// Load deserializes and validates the record at the path derived from key.
// It returns ErrRecordNotFound if no record exists, and ErrRecordCorrupt if
// the document is unreadable or missing required fields. Reads have no side
// effects.
func (s *FileStore) Load(key Key) (DeploymentRecord, error) {
	filePath := s.FilePath(key)

	b, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DeploymentRecord{}, fmt.Errorf("%w: %s", ErrRecordNotFound, filePath)
		}

		return DeploymentRecord{}, fmt.Errorf("failed to read deployment record %s: %w", filePath, err)
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var rec DeploymentRecord
	if err := dec.Decode(&rec); err != nil {
		return DeploymentRecord{}, fmt.Errorf("%w: %s: %v", ErrRecordCorrupt, filePath, err)
	}

	if err := rec.Validate(); err != nil {
		return DeploymentRecord{}, fmt.Errorf("%s: %w", filePath, err)
	}

	return rec, nil
}
