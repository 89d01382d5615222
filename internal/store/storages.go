package store

import "github.com/MKhiriev/insight-hunter/internal/logger"

// Storages aggregates the repositories built on one database handle.
type Storages struct {
	UserRepository UserRepository
}

func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository: NewUserRepository(db, log),
	}
}
