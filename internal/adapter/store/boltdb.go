package store

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
	"makedoc2rst/internal/domain"
)

var (
	bucketEntries = []byte("entries")
	bucketMeta    = []byte("meta")
)

// BoltStore is a bbolt-backed conversion manifest.
type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketEntries, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

type entryMeta struct {
	OutputPath  string `json:"output_path"`
	ContentHash string `json:"content_hash"`
	RunID       string `json:"run_id"`
	ConvertedAt int64  `json:"converted_at"`
	Status      string `json:"status"`
}

func encodeEntry(entry domain.ManifestEntry) ([]byte, error) {
	return json.Marshal(entryMeta{
		OutputPath:  entry.OutputPath,
		ContentHash: entry.ContentHash,
		RunID:       entry.RunID,
		ConvertedAt: entry.ConvertedAt.Unix(),
		Status:      string(entry.Status),
	})
}

func decodeEntry(key, data []byte) (domain.ManifestEntry, error) {
	var meta entryMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return domain.ManifestEntry{}, err
	}
	return domain.ManifestEntry{
		SourcePath:  string(key),
		OutputPath:  meta.OutputPath,
		ContentHash: meta.ContentHash,
		RunID:       meta.RunID,
		ConvertedAt: time.Unix(meta.ConvertedAt, 0),
		Status:      domain.ManifestStatus(meta.Status),
	}, nil
}

func (s *BoltStore) PutEntry(entry domain.ManifestEntry) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		data, err := encodeEntry(entry)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketEntries).Put([]byte(entry.SourcePath), data)
	})
}

func (s *BoltStore) GetEntry(sourcePath string) (domain.ManifestEntry, bool, error) {
	var entry domain.ManifestEntry
	var found bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketEntries).Get([]byte(sourcePath))
		if data == nil {
			return nil
		}
		var err error
		entry, err = decodeEntry([]byte(sourcePath), data)
		found = err == nil
		return err
	})
	return entry, found, err
}

func (s *BoltStore) DeleteEntry(sourcePath string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketEntries).Delete([]byte(sourcePath))
	})
}

func (s *BoltStore) ListEntries() ([]domain.ManifestEntry, error) {
	var entries []domain.ManifestEntry
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketEntries).ForEach(func(k, v []byte) error {
			entry, err := decodeEntry(k, v)
			if err != nil {
				return err
			}
			entries = append(entries, entry)
			return nil
		})
	})
	return entries, err
}
