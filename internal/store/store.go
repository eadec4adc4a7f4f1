package store

import "database/sql"

// Store provides access to all storage repositories.
type Store struct {
	db     *sql.DB
	tables *TableStore
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:     db,
		tables: NewTableStore(newQueryInterceptor(db)),
	}
}

func (s *Store) Tables() *TableStore {
	return s.tables
}

func (s *Store) Close() error {
	return s.db.Close()
}
