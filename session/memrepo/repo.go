// Package memrepo stores the session record in process memory. This is
// the default scope: the session lives exactly as long as the process,
// the way tab-scoped browser storage lives as long as the tab.
package memrepo

import (
	"sync"

	"github.com/jrsteele09/go-commerce-client/internal/errors"
	"github.com/jrsteele09/go-commerce-client/session"
)

var _ session.Repo = (*MemRepo)(nil)

type MemRepo struct {
	lock sync.RWMutex
	data *session.Data
}

func New() *MemRepo {
	return &MemRepo{}
}

func (r *MemRepo) Load() (*session.Data, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	if r.data == nil {
		return nil, errors.ErrNoSession
	}
	copied := *r.data
	return &copied, nil
}

func (r *MemRepo) Save(data *session.Data) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	copied := *data
	r.data = &copied
	return nil
}

func (r *MemRepo) Delete() error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.data = nil
	return nil
}
