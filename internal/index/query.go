package index

import (
	"encoding/json"
	"errors"
	"strings"

	bolt "go.etcd.io/bbolt"

	"sitegen/internal/domain/build"
)

var ErrNotFound = errors.New("not found")

func (s *Store) LastBuild() (build.BuildRecord, error) {
	var rec build.BuildRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bBuild)
		if b == nil {
			return ErrNotFound
		}
		v := b.Get(keyLast)
		if v == nil {
			return ErrNotFound
		}
		return json.Unmarshal(v, &rec)
	})
	return rec, err
}

// ListPages returns page records in the order they were built.
func (s *Store) ListPages() ([]build.PageRecord, error) {
	var out []build.PageRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bPages)
		if b == nil {
			return nil
		}
		cur := b.Cursor()
		for k, v := cur.First(); k != nil; k, v = cur.Next() {
			var p build.PageRecord
			if err := json.Unmarshal(v, &p); err != nil {
				return err
			}
			out = append(out, p)
		}
		return nil
	})
	return out, err
}

func (s *Store) GetPage(url string) (build.PageRecord, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return build.PageRecord{}, ErrNotFound
	}
	var p build.PageRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		urlB := tx.Bucket(bURL)
		pagesB := tx.Bucket(bPages)
		if urlB == nil || pagesB == nil {
			return ErrNotFound
		}
		key := urlB.Get([]byte(url))
		if key == nil {
			return ErrNotFound
		}
		v := pagesB.Get(key)
		if v == nil {
			return ErrNotFound
		}
		return json.Unmarshal(v, &p)
	})
	return p, err
}

// Navigation returns page URLs in navigation order.
func (s *Store) Navigation() ([]string, error) {
	var out []string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bNav)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			out = append(out, string(v))
			return nil
		})
	})
	return out, err
}

type CollectionSummary struct {
	Name  string
	Count int
	// URLs of the collection's pages in build order.
	URLs []string
}

// ListCollections summarises each collection of the last build, by name.
func (s *Store) ListCollections() ([]CollectionSummary, error) {
	var out []CollectionSummary
	err := s.db.View(func(tx *bolt.Tx) error {
		parent := tx.Bucket(bCollection)
		if parent == nil {
			return nil
		}
		return parent.ForEachBucket(func(name []byte) error {
			sb := parent.Bucket(name)
			sum := CollectionSummary{Name: string(name)}
			cur := sb.Cursor()
			for k, _ := cur.First(); k != nil; k, _ = cur.Next() {
				if u := urlFromPosKey(k); u != "" {
					sum.URLs = append(sum.URLs, u)
					sum.Count++
				}
			}
			out = append(out, sum)
			return nil
		})
	})
	return out, err
}

// ReadManifest loads the whole stored manifest.
func (s *Store) ReadManifest() (build.Manifest, error) {
	rec, err := s.LastBuild()
	if err != nil {
		return build.Manifest{}, err
	}
	pages, err := s.ListPages()
	if err != nil {
		return build.Manifest{}, err
	}
	nav, err := s.Navigation()
	if err != nil {
		return build.Manifest{}, err
	}
	return build.Manifest{
		BuildID:    rec.BuildID,
		FinishedAt: rec.FinishedAt,
		BaseURL:    rec.BaseURL,
		Pages:      pages,
		Navigation: nav,
	}, nil
}
