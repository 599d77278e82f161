// Package filerepo persists the session record as a JSON file, so a
// session set up by one run of the host application is found again by
// the next one on the same machine.
package filerepo

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	interrors "github.com/jrsteele09/go-commerce-client/internal/errors"
	"github.com/jrsteele09/go-commerce-client/session"
)

const sessionFileName = "session.json"

// File permissions are owner-only: the record contains live credentials.
const (
	dirPerm  = 0o700
	filePerm = 0o600
)

var _ session.Repo = (*FileRepo)(nil)

type FileRepo struct {
	path string
	lock sync.Mutex
}

// New creates a file-backed session repo rooted at dataFolder. The
// folder is created on first use if missing.
func New(dataFolder string) (*FileRepo, error) {
	if dataFolder == "" {
		return nil, errors.New("[filerepo.New] dataFolder is required")
	}
	if err := os.MkdirAll(dataFolder, dirPerm); err != nil {
		return nil, errors.Wrap(err, "[filerepo.New] create data folder")
	}
	return &FileRepo{path: filepath.Join(dataFolder, sessionFileName)}, nil
}

func (r *FileRepo) Load() (*session.Data, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	raw, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return nil, interrors.ErrNoSession
	}
	if err != nil {
		return nil, interrors.Wrapf(interrors.ErrSessionStorage, "read %s: %v", r.path, err)
	}

	var data session.Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, interrors.Wrapf(interrors.ErrSessionCorrupted, "decode %s: %v", r.path, err)
	}
	return &data, nil
}

// Save writes the record through a temp file and rename so a crash
// mid-write never leaves a truncated session behind.
func (r *FileRepo) Save(data *session.Data) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	raw, err := json.Marshal(data)
	if err != nil {
		return interrors.Wrapf(interrors.ErrSessionStorage, "encode session: %v", err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, raw, filePerm); err != nil {
		return interrors.Wrapf(interrors.ErrSessionStorage, "write %s: %v", tmp, err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return interrors.Wrapf(interrors.ErrSessionStorage, "rename %s: %v", tmp, err)
	}
	return nil
}

func (r *FileRepo) Delete() error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if err := os.Remove(r.path); err != nil && !os.IsNotExist(err) {
		return interrors.Wrapf(interrors.ErrSessionStorage, "remove %s: %v", r.path, err)
	}
	return nil
}
