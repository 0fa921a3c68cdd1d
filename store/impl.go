package store

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/untillpro/goutils/logger"
	bolt "go.etcd.io/bbolt"

	recmodel "github.com/reoring/recmodel"
	"github.com/reoring/recmodel/codec"
	"github.com/reoring/recmodel/tree"
)

// Close releases the database file.
func (s *Store) Close() error {
	if s.cache != nil {
		s.cache.Purge()
	}
	return s.db.Close()
}

// Add stores a new record. A record without a name is given a random UUID,
// which is also set on rec. It fails with ErrRecordExists when the style
// already holds a record of that name.
func (s *Store) Add(rec recmodel.Record) (name string, err error) {
	name = rec.Name()
	if name == "" {
		name = uuid.NewString()
	} else if err := checkName(name); err != nil {
		return "", err
	}
	doc, content, err := encode(rec)
	if err != nil {
		return "", err
	}
	style := rec.Style()
	err = s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(style))
		if err != nil {
			return err
		}
		if b.Get([]byte(name)) != nil {
			return fmt.Errorf("%w: %s/%s", ErrRecordExists, style, name)
		}
		return b.Put([]byte(name), content)
	})
	if err != nil {
		return "", err
	}
	rec.SetName(name)
	s.remember(style, name, doc)
	if logger.IsVerbose() {
		logger.Verbose("store: added", style+"/"+name)
	}
	return name, nil
}

// Update replaces the content of an existing record.
func (s *Store) Update(rec recmodel.Record) error {
	name, style := rec.Name(), rec.Style()
	if err := checkName(name); err != nil {
		return err
	}
	doc, content, err := encode(rec)
	if err != nil {
		return err
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(style))
		if b == nil || b.Get([]byte(name)) == nil {
			return fmt.Errorf("%w: %s/%s", ErrRecordNotFound, style, name)
		}
		return b.Put([]byte(name), content)
	})
	if err != nil {
		return err
	}
	s.remember(style, name, doc)
	if logger.IsVerbose() {
		logger.Verbose("store: updated", style+"/"+name)
	}
	return nil
}

// Get loads the named record of style.
func (s *Store) Get(style, name string) (recmodel.Record, error) {
	doc, err := s.document(style, name)
	if err != nil {
		return nil, err
	}
	return s.materialize(style, name, doc)
}

// Content returns the stored document of the named record without
// materializing it.
func (s *Store) Content(style, name string) (*tree.Dict, error) {
	doc, err := s.document(style, name)
	if err != nil {
		return nil, err
	}
	return doc.Clone(), nil
}

// List loads every record of style, ordered by name.
func (s *Store) List(style string) ([]recmodel.Record, error) {
	type entry struct {
		name string
		doc  *tree.Dict
	}
	var entries []entry
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(style))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			name := string(k)
			doc, ok := s.cached(style, name)
			if !ok {
				var err error
				if doc, err = decode(v); err != nil {
					logger.Error(fmt.Sprintf("store: %s/%s: %v", style, name, err))
					return fmt.Errorf("store: %s/%s: %w", style, name, err)
				}
				s.remember(style, name, doc)
			}
			entries = append(entries, entry{name: name, doc: doc})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	out := make([]recmodel.Record, 0, len(entries))
	for _, e := range entries {
		rec, err := s.materialize(style, e.name, e.doc)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// Names lists the record names of style in order.
func (s *Store) Names(style string) ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(style))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	return names, err
}

// Styles lists the styles that have a bucket in the database.
func (s *Store) Styles() ([]string, error) {
	var styles []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.ForEach(func(name []byte, _ *bolt.Bucket) error {
			styles = append(styles, string(name))
			return nil
		})
	})
	return styles, err
}

// Count returns the number of records of style.
func (s *Store) Count(style string) (n int, err error) {
	err = s.db.View(func(tx *bolt.Tx) error {
		if b := tx.Bucket([]byte(style)); b != nil {
			n = b.Stats().KeyN
		}
		return nil
	})
	return n, err
}

// Delete removes the named record of style.
func (s *Store) Delete(style, name string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(style))
		if b == nil || b.Get([]byte(name)) == nil {
			return fmt.Errorf("%w: %s/%s", ErrRecordNotFound, style, name)
		}
		return b.Delete([]byte(name))
	})
	if err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Remove(cacheKey{style, name})
	}
	if logger.IsVerbose() {
		logger.Verbose("store: deleted", style+"/"+name)
	}
	return nil
}

func (s *Store) document(style, name string) (*tree.Dict, error) {
	if doc, ok := s.cached(style, name); ok {
		return doc, nil
	}
	var doc *tree.Dict
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(style))
		if b == nil {
			return fmt.Errorf("%w: %s/%s", ErrRecordNotFound, style, name)
		}
		v := b.Get([]byte(name))
		if v == nil {
			return fmt.Errorf("%w: %s/%s", ErrRecordNotFound, style, name)
		}
		var err error
		doc, err = decode(v)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.remember(style, name, doc)
	return doc, nil
}

func (s *Store) materialize(style, name string, doc *tree.Dict) (recmodel.Record, error) {
	rec, err := s.registry.New(style)
	if err != nil {
		return nil, err
	}
	if err := rec.LoadModel(doc); err != nil {
		return nil, fmt.Errorf("store: %s/%s: %w", style, name, err)
	}
	rec.SetName(name)
	return rec, nil
}

func (s *Store) cached(style, name string) (*tree.Dict, bool) {
	if s.cache == nil {
		return nil, false
	}
	return s.cache.Get(cacheKey{style, name})
}

func (s *Store) remember(style, name string, doc *tree.Dict) {
	if s.cache != nil {
		s.cache.Add(cacheKey{style, name}, doc)
	}
}

func checkName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

func encode(rec recmodel.Record) (*tree.Dict, []byte, error) {
	doc, err := rec.BuildModel()
	if err != nil {
		return nil, nil, err
	}
	content, err := codec.Marshal(doc, codec.JSON, codec.Options{})
	if err != nil {
		return nil, nil, err
	}
	return doc, content, nil
}

// decode parses stored content. bbolt values are only valid inside their
// transaction; the decoder copies everything it keeps.
func decode(v []byte) (*tree.Dict, error) {
	return codec.Unmarshal(v, codec.JSON, codec.Options{})
}
