package session

// Repo defines the interface for persisting the session record.
// Implementations decide the storage scope: memrepo is process-local,
// filerepo survives restarts on one machine, redisrepo is shared
// across processes. The store treats every implementation the same.
type Repo interface {
	// Load retrieves the persisted session record. Implementations
	// return internal/errors.ErrNoSession when nothing is stored.
	Load() (*Data, error)

	// Save persists the session record, replacing any previous one
	Save(data *Data) error

	// Delete removes the persisted session record. Deleting an absent
	// record is not an error.
	Delete() error
}
