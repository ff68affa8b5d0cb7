package fx

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/etnz/vitals"
)

// Store persists the last known rate across processes.
type Store interface {
	Load() (vitals.ExchangeRate, error)
	Save(vitals.ExchangeRate) error
}

// FileStore keeps the last known rate as a JSON file.
type FileStore struct {
	Path string
}

// TempFileStore returns a FileStore in the temp directory, so that short lived CLI runs
// share their last rate.
func TempFileStore() *FileStore {
	return &FileStore{Path: filepath.Join(os.TempDir(), "vitals-rate.json")}
}

func (s *FileStore) Load() (vitals.ExchangeRate, error) {
	var r vitals.ExchangeRate
	content, err := os.ReadFile(s.Path)
	if err != nil {
		return r, err
	}
	err = json.Unmarshal(content, &r)
	return r, err
}

func (s *FileStore) Save(r vitals.ExchangeRate) error {
	content, err := json.Marshal(r)
	if err != nil {
		return err
	}
	// write a private file then rename it: concurrent writers never interleave and a
	// concurrent Load never reads a partial file.
	f, err := os.CreateTemp(filepath.Dir(s.Path), filepath.Base(s.Path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name()) // no-op once renamed
	if _, err := f.Write(content); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), s.Path)
}
