package fakesessionrepo

import (
	"sync"

	"github.com/jrsteele09/go-commerce-client/internal/errors"
	"github.com/jrsteele09/go-commerce-client/session"
)

var _ session.Repo = (*FakeSessionRepo)(nil)

// FakeSessionRepo records every call so tests can assert on persistence
// behaviour without a real backend.
type FakeSessionRepo struct {
	lock sync.Mutex

	data *session.Data

	SaveCalls   int
	DeleteCalls int
}

func NewFakeSessionRepo() *FakeSessionRepo {
	return &FakeSessionRepo{}
}

func (fr *FakeSessionRepo) Load() (*session.Data, error) {
	fr.lock.Lock()
	defer fr.lock.Unlock()

	if fr.data == nil {
		return nil, errors.ErrNoSession
	}
	copied := *fr.data
	return &copied, nil
}

func (fr *FakeSessionRepo) Save(data *session.Data) error {
	fr.lock.Lock()
	defer fr.lock.Unlock()

	fr.SaveCalls++
	copied := *data
	fr.data = &copied
	return nil
}

func (fr *FakeSessionRepo) Delete() error {
	fr.lock.Lock()
	defer fr.lock.Unlock()

	fr.DeleteCalls++
	fr.data = nil
	return nil
}

// Seed installs a record directly, bypassing Save accounting.
func (fr *FakeSessionRepo) Seed(data *session.Data) {
	fr.lock.Lock()
	defer fr.lock.Unlock()

	copied := *data
	fr.data = &copied
}

var _ session.Repo = (*FailingSessionRepo)(nil)

// FailingSessionRepo fails every operation, standing in for disabled or
// broken storage. The store must degrade to a memory-only session when
// handed one of these.
type FailingSessionRepo struct{}

func NewFailingSessionRepo() *FailingSessionRepo {
	return &FailingSessionRepo{}
}

func (fr *FailingSessionRepo) Load() (*session.Data, error) {
	return nil, errors.ErrSessionStorage
}

func (fr *FailingSessionRepo) Save(_ *session.Data) error {
	return errors.ErrSessionStorage
}

func (fr *FailingSessionRepo) Delete() error {
	return errors.ErrSessionStorage
}
