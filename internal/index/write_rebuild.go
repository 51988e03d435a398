package index

import (
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"sitegen/internal/domain/build"
)

// Rebuild replaces the stored manifest with m in a single transaction.
func (s *Store) Rebuild(m build.Manifest) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bBuild, bPages, bURL, bNav, bCollection} {
			_ = tx.DeleteBucket(name)
		}

		buildB, err := tx.CreateBucket(bBuild)
		if err != nil {
			return err
		}
		pagesB, _ := tx.CreateBucket(bPages)
		urlB, _ := tx.CreateBucket(bURL)
		navB, _ := tx.CreateBucket(bNav)
		collB, _ := tx.CreateBucket(bCollection)

		rec := build.BuildRecord{
			BuildID:    m.BuildID,
			FinishedAt: m.FinishedAt,
			BaseURL:    m.BaseURL,
			PageCount:  len(m.Pages),
		}
		rb, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		if err := buildB.Put(keyLast, rb); err != nil {
			return err
		}

		for i, p := range m.Pages {
			if p.URL == "" {
				return fmt.Errorf("index: page %s has no url", p.Source)
			}
			key := makePosKey(i, p.URL)
			pb, err := json.Marshal(p)
			if err != nil {
				return err
			}
			if err := pagesB.Put(key, pb); err != nil {
				return err
			}
			if err := urlB.Put([]byte(p.URL), key); err != nil {
				return err
			}
			if p.Collection != "" {
				sb, err := collB.CreateBucketIfNotExists([]byte(p.Collection))
				if err != nil {
					return err
				}
				if err := sb.Put(key, []byte{1}); err != nil {
					return err
				}
			}
		}

		for i, u := range m.Navigation {
			if err := navB.Put(makePosKey(i, u), []byte(u)); err != nil {
				return err
			}
		}
		return nil
	})
}
