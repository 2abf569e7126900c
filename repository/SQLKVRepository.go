package repository

import (
	"database/sql"
	"errors"
	"log"

	"groceryStore/models"
)

// SQLKVRepo keeps the key-value store in a single two-column table.
// It works unchanged over lib/pq and go-sqlite3: the sqlite driver gives
// the file-backed variant, postgres the shared one.
type SQLKVRepo struct {
	db *sql.DB
}

func NewSQLKVRepository(conn *sql.DB) (KVRepository, error) {
	if conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := conn.Ping()
	if err != nil {
		return nil, err
	}
	_, err = conn.Exec("CREATE TABLE IF NOT EXISTS KVStore (K TEXT PRIMARY KEY, V TEXT NOT NULL)")
	if err != nil {
		return nil, err
	}
	return &SQLKVRepo{
		db: conn,
	}, nil
}

func (s *SQLKVRepo) Get(key string) (value string, exists bool, err error) {
	row := s.db.QueryRow("SELECT V FROM KVStore WHERE K = $1", key)
	err = row.Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			err = nil
			return
		}
		log.Printf("Get: %v", err)
		err = models.ErrServerError
		return
	}
	exists = true
	return
}

func (s *SQLKVRepo) Set(key string, value string) (err error) {
	_, err = s.db.Exec("INSERT INTO KVStore (K, V) VALUES ($1, $2) ON CONFLICT (K) DO UPDATE SET V = $2", key, value)
	if err != nil {
		log.Printf("Set: %v", err)
		err = models.ErrServerError
	}
	return
}

func (s *SQLKVRepo) Delete(key string) (err error) {
	_, err = s.db.Exec("DELETE FROM KVStore WHERE K = $1", key)
	if err != nil {
		log.Printf("Delete: %v", err)
		err = models.ErrServerError
	}
	return
}
