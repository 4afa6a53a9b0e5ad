package store

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/matzehuels/stagekit/pkg/asset"
	errs "github.com/matzehuels/stagekit/pkg/errors"
)

// Ext is the file extension of resource packs.
const Ext = ".res"

// FormatVersion is written into every pack and checked on read.
const FormatVersion = "1"

var (
	bucketMeta  = []byte("meta")
	bucketIndex = []byte("index")

	keySettings = []byte("settings")
	keyVersion  = []byte("version")
)

const openTimeout = time.Second

// bucketName maps a record category to its bucket.
func bucketName(c asset.Category) []byte {
	return []byte(strings.ToLower(string(c)))
}

func recordKey(seq int) []byte {
	return []byte(fmt.Sprintf("%08d", seq))
}

func indexKey(c asset.Category, assetID int) []byte {
	return []byte(string(c) + "/" + strconv.Itoa(assetID))
}

// Pack writes doc to the pack at path, replacing any content the file had.
func Pack(path string, doc *asset.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer db.Close()

	return db.Update(func(tx *bolt.Tx) error {
		for _, name := range allBuckets() {
			if tx.Bucket(name) != nil {
				if err := tx.DeleteBucket(name); err != nil {
					return err
				}
			}
		}

		index, err := tx.CreateBucket(bucketIndex)
		if err != nil {
			return err
		}
		for _, c := range asset.Categories {
			buck, err := tx.CreateBucket(bucketName(c))
			if err != nil {
				return err
			}
			for i, rec := range doc.Records(c) {
				id, err := rec.AssetID()
				if err != nil {
					return errs.New(errs.GetCode(err), "%s[%d]: %s", c, i, errs.UserMessage(err))
				}
				data, err := json.Marshal(rec)
				if err != nil {
					return fmt.Errorf("encode %s[%d]: %w", c, i, err)
				}
				key := recordKey(i)
				if err := buck.Put(key, data); err != nil {
					return err
				}
				if err := index.Put(indexKey(c, id), key); err != nil {
					return err
				}
			}
		}

		meta, err := tx.CreateBucket(bucketMeta)
		if err != nil {
			return err
		}
		settings, err := json.Marshal(doc.Meta.Settings)
		if err != nil {
			return fmt.Errorf("encode %s: %w", asset.FieldMeta, err)
		}
		if err := meta.Put(keySettings, settings); err != nil {
			return err
		}
		return meta.Put(keyVersion, []byte(FormatVersion))
	})
}

// Unpack reads the whole document stored in the pack at path.
func Unpack(path string) (*asset.Document, error) {
	db, err := openReadOnly(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	doc := &asset.Document{}
	err = db.View(func(tx *bolt.Tx) error {
		settings, err := readSettings(tx)
		if err != nil {
			return err
		}
		if doc.Meta, err = asset.MetaFromRecord(settings); err != nil {
			return err
		}

		for _, c := range asset.Categories {
			buck := tx.Bucket(bucketName(c))
			if buck == nil {
				return errs.New(errs.ErrCodeInvalidFormat, "pack has no %s bucket", bucketName(c))
			}
			recs := make([]asset.Record, 0, buck.Stats().KeyN)
			err := buck.ForEach(func(k, v []byte) error {
				var rec asset.Record
				if err := json.Unmarshal(v, &rec); err != nil {
					return errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode %s/%s", bucketName(c), k)
				}
				recs = append(recs, rec)
				return nil
			})
			if err != nil {
				return err
			}
			doc.SetRecords(c, recs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Lookup reads the record of one asset without unpacking the document.
// When a category holds the id more than once, the last record wins.
func Lookup(path string, c asset.Category, assetID int) (asset.Record, error) {
	db, err := openReadOnly(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var rec asset.Record
	err = db.View(func(tx *bolt.Tx) error {
		if _, err := readVersion(tx); err != nil {
			return err
		}
		index := tx.Bucket(bucketIndex)
		buck := tx.Bucket(bucketName(c))
		if index == nil || buck == nil {
			return errs.New(errs.ErrCodeInvalidFormat, "pack has no %s bucket", bucketName(c))
		}
		key := index.Get(indexKey(c, assetID))
		if key == nil {
			return errs.New(errs.ErrCodeAssetNotFound, "asset %d not found in %s", assetID, c)
		}
		if err := json.Unmarshal(buck.Get(key), &rec); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode %s/%s", bucketName(c), key)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func allBuckets() [][]byte {
	names := [][]byte{bucketMeta, bucketIndex}
	for _, c := range asset.Categories {
		names = append(names, bucketName(c))
	}
	return names
}

func openReadOnly(path string) (*bolt.DB, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	db, err := bolt.Open(path, 0o644, &bolt.Options{ReadOnly: true, Timeout: openTimeout})
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "open %s", path)
	}
	return db, nil
}

func readVersion(tx *bolt.Tx) (string, error) {
	meta := tx.Bucket(bucketMeta)
	if meta == nil {
		return "", errs.New(errs.ErrCodeInvalidFormat, "not a resource pack: no meta bucket")
	}
	v := string(meta.Get(keyVersion))
	if v != FormatVersion {
		return "", errs.New(errs.ErrCodeUnsupported, "unsupported pack version %q", v)
	}
	return v, nil
}

func readSettings(tx *bolt.Tx) (asset.Record, error) {
	if _, err := readVersion(tx); err != nil {
		return nil, err
	}
	var settings asset.Record
	if err := json.Unmarshal(tx.Bucket(bucketMeta).Get(keySettings), &settings); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode %s", asset.FieldMeta)
	}
	return settings, nil
}
