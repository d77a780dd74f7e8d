package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	bolt "go.etcd.io/bbolt"

	"pdfbench/pipeline"
)

var bucketName = []byte("runs")

// Store keeps past run summaries in a local BoltDB file so extraction
// methods can be compared across documents and over time.
type Store struct {
	DBPath string
	db     *bolt.DB
	mu     sync.RWMutex
}

// Init opens the BoltDB database, creating it and its bucket if needed.
func (s *Store) Init() error {
	dbDir := filepath.Dir(s.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory for history DB: %w", err)
	}

	db, err := bolt.Open(s.DBPath, 0600, nil)
	if err != nil {
		return fmt.Errorf("failed to open history DB: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to create bucket: %w", err)
	}

	s.db = db
	return nil
}

// Save persists one run summary keyed by its run ID.
func (s *Store) Save(summary *pipeline.RunSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal run summary: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		return b.Put([]byte(summary.RunID), data)
	})
}

// Get returns one saved run summary by run ID.
func (s *Store) Get(runID string) (*pipeline.RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var summary *pipeline.RunSummary
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		v := b.Get([]byte(runID))
		if v == nil {
			return fmt.Errorf("run %s not found", runID)
		}
		summary = &pipeline.RunSummary{}
		return json.Unmarshal(v, summary)
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// List returns all saved run summaries, most recent first.
func (s *Store) List() ([]pipeline.RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var summaries []pipeline.RunSummary
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		return b.ForEach(func(_, v []byte) error {
			var summary pipeline.RunSummary
			if err := json.Unmarshal(v, &summary); err != nil {
				return err
			}
			summaries = append(summaries, summary)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].StartedAt > summaries[j].StartedAt
	})
	return summaries, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
