package testmaker

import (
	"context"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
	"go.uber.org/zap"
)

type (
	// BoltStore keeps the timeline library in a single bbolt file, the
	// workstation counterpart of the shared Redis store
	BoltStore struct {
		db  *bbolt.DB
		log *zap.Logger
	}
)

var timelineBucket = []byte("timelines")

// OpenBoltStore opens the library file at path, creating it and its bucket
// when missing. A nil logger disables logging
func OpenBoltStore(path string, log *zap.Logger) (*BoltStore, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{
		Timeout: time.Second,
	})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(timelineBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &BoltStore{db: db, log: log}, nil
}

func (s *BoltStore) Save(_ context.Context, tl *Timeline) error {
	doc, err := encodeDoc(tl)
	if err != nil {
		return err
	}
	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(timelineBucket).Put([]byte(tl.Name), doc)
	})
	if err != nil {
		return err
	}
	s.log.Debug("Timeline saved",
		zap.String("timeline", tl.Name),
		zap.Int("bytes", len(doc)),
	)
	return nil
}

func (s *BoltStore) Load(_ context.Context, name string) (*Timeline, error) {
	var doc []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(timelineBucket).Get([]byte(name)); v != nil {
			// values are only valid inside the tx
			doc = append(doc, v...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: %q", ErrTimelineNotFound, name)
	}
	return decodeDoc(doc)
}

func (s *BoltStore) List(_ context.Context) ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(timelineBucket).ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (s *BoltStore) Delete(_ context.Context, name string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(timelineBucket)
		if b.Get([]byte(name)) == nil {
			return fmt.Errorf("%w: %q", ErrTimelineNotFound, name)
		}
		return b.Delete([]byte(name))
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
