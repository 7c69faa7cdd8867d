// Package history keeps a local record of entries written to the document.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"github.com/nareshroyalc/Docify/pkg/configuration"
	"github.com/nareshroyalc/Docify/pkg/worklog"
)

var bucketEntries = []byte("entries")

// Record is one written entry.
type Record struct {
	ID         string           `json:"id"`
	Timestamp  string           `json:"timestamp"`
	Title      string           `json:"title"`
	Priority   worklog.Priority `json:"priority"`
	DocID      string           `json:"doc_id"`
	Provider   string           `json:"provider"`
	Confidence float64          `json:"confidence,omitempty"`
}

// Store persists records in a bbolt database.
type Store struct {
	db *bbolt.DB
}

// Open opens (creating if necessary) the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("could not create history directory: %w", err)
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("could not open history database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketEntries)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create history bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// DefaultPath returns the standard location of the history database.
func DefaultPath() (string, error) {
	dir, err := configuration.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores one written entry. The key is the RFC3339 timestamp plus a
// random suffix so keys sort chronologically and never collide.
func (s *Store) Record(rec Record) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp == "" {
		rec.Timestamp = time.Now().Format(time.RFC3339)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("could not marshal history record: %w", err)
	}

	key := []byte(rec.Timestamp + "-" + rec.ID)
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketEntries).Put(key, data)
	})
}

// List returns up to limit records, newest first. A non-positive limit
// returns everything.
func (s *Store) List(limit int) ([]Record, error) {
	var records []Record
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(bucketEntries).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(records) >= limit {
				break
			}
			var rec Record
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("corrupt history record %q: %w", k, err)
			}
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
