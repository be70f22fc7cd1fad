package config

type StorageConfig interface {
	GetDatabaseDSN() string
}

type Storage struct{}

var _ StorageConfig = Storage{}

// GetDatabaseDSN returns the Postgres connection string. Empty means run
// with the in-memory repositories (useful for local development and tests).
func (Storage) GetDatabaseDSN() string {
	return GetEnv("DATABASE_DSN", "")
}
