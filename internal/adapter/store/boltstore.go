package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"

	"go.etcd.io/bbolt"

	"bookdex/internal/domain"
)

var (
	bucketWords    = []byte("words")
	bucketGlobal   = []byte("global")
	bucketProgress = []byte("progress")

	keyLastAvailable = []byte("last_available")
	keyNextToIndex   = []byte("next_to_index")
)

// reservedNames are filesystem-reserved words inherited from the original
// per-word-file storage medium. Kept as an explicit exclusion list: such
// words are skipped at merge time and report as never indexed.
var reservedNames = map[string]struct{}{
	"con": {}, "prn": {}, "aux": {}, "nul": {},
	"com1": {}, "com2": {}, "com3": {}, "com4": {}, "com5": {},
	"com6": {}, "com7": {}, "com8": {}, "com9": {},
	"lpt1": {}, "lpt2": {}, "lpt3": {}, "lpt4": {}, "lpt5": {},
	"lpt6": {}, "lpt7": {}, "lpt8": {}, "lpt9": {},
}

// IsReservedName reports whether a word collides with the exclusion list.
func IsReservedName(word string) bool {
	_, ok := reservedNames[word]
	return ok
}

// BoltStore persists word records (sharded by first letter), the global
// word -> document index and the progress cursor in one bbolt database.
// Single writer at a time; bbolt serializes the rest.
type BoltStore struct {
	db  *bbolt.DB
	log *slog.Logger
}

func NewBoltStore(path string, log *slog.Logger) (*BoltStore, error) {
	if log == nil {
		log = slog.Default()
	}
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open index db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketWords, bucketGlobal, bucketProgress} {
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

	return &BoltStore{db: db, log: log}, nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

// shardKey buckets words by their lowercase first character.
func shardKey(word string) []byte {
	return []byte(word[:1])
}

// MergeDocument merges one document's folded extraction result into the
// persisted word records and the global index, in a single transaction.
// Reserved names are skipped with a warning, never an error. Totals and
// counts are always recomputed from the merged position sets, so merging
// the same document twice leaves every record byte-identical.
func (s *BoltStore) MergeDocument(docID int, local map[string]domain.Allocation) error {
	words := make([]string, 0, len(local))
	for word := range local {
		if word == "" {
			continue
		}
		if IsReservedName(word) {
			s.log.Warn("word skipped: reserved filesystem name",
				slog.String("word", word), slog.Int("book", docID))
			continue
		}
		words = append(words, word)
	}
	sort.Strings(words)

	return s.db.Update(func(tx *bbolt.Tx) error {
		wordsBucket := tx.Bucket(bucketWords)
		globalBucket := tx.Bucket(bucketGlobal)

		for _, word := range words {
			shard, err := wordsBucket.CreateBucketIfNotExists(shardKey(word))
			if err != nil {
				return fmt.Errorf("failed to create shard %q: %w", word[:1], err)
			}

			rec := domain.NewWordRecord(word)
			if data := shard.Get([]byte(word)); data != nil {
				if err := json.Unmarshal(data, rec); err != nil {
					return fmt.Errorf("corrupt record for %q: %w", word, err)
				}
			}
			rec.MergeAllocation(docID, local[word])

			data, err := json.Marshal(rec)
			if err != nil {
				return err
			}
			if err := shard.Put([]byte(word), data); err != nil {
				return err
			}

			if err := mergeGlobalEntry(globalBucket, word, docID); err != nil {
				return err
			}
		}
		return nil
	})
}

// mergeGlobalEntry ensures docID is a member of the word's document set.
func mergeGlobalEntry(b *bbolt.Bucket, word string, docID int) error {
	var ids []int
	if data := b.Get([]byte(word)); data != nil {
		if err := json.Unmarshal(data, &ids); err != nil {
			return fmt.Errorf("corrupt global entry for %q: %w", word, err)
		}
	}
	at := sort.SearchInts(ids, docID)
	if at < len(ids) && ids[at] == docID {
		return nil
	}
	ids = append(ids, 0)
	copy(ids[at+1:], ids[at:])
	ids[at] = docID

	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return b.Put([]byte(word), data)
}

// Lookup reads the record for a canonical word. A missing word is a normal
// outcome, reported through the bool, not an error.
func (s *BoltStore) Lookup(word string) (*domain.WordRecord, bool, error) {
	if word == "" {
		return nil, false, nil
	}
	var rec *domain.WordRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		shard := tx.Bucket(bucketWords).Bucket(shardKey(word))
		if shard == nil {
			return nil
		}
		data := shard.Get([]byte(word))
		if data == nil {
			return nil
		}
		rec = domain.NewWordRecord(word)
		return json.Unmarshal(data, rec)
	})
	if err != nil {
		return nil, false, err
	}
	return rec, rec != nil, nil
}

// Documents reads the global index entry for a word. Missing words return
// an empty set.
func (s *BoltStore) Documents(word string) ([]int, error) {
	var ids []int
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketGlobal).Get([]byte(word))
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &ids)
	})
	return ids, err
}

// GlobalIndex returns the full word -> document-ID index.
func (s *BoltStore) GlobalIndex() (map[string][]int, error) {
	index := make(map[string][]int)
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketGlobal).ForEach(func(k, v []byte) error {
			var ids []int
			if err := json.Unmarshal(v, &ids); err != nil {
				return fmt.Errorf("corrupt global entry for %q: %w", k, err)
			}
			index[string(k)] = ids
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return index, nil
}

// Words walks every persisted word record, shard by shard.
func (s *BoltStore) Words(fn func(rec *domain.WordRecord) error) error {
	return s.db.View(func(tx *bbolt.Tx) error {
		words := tx.Bucket(bucketWords)
		return words.ForEachBucket(func(shardName []byte) error {
			shard := words.Bucket(shardName)
			return shard.ForEach(func(k, v []byte) error {
				rec := domain.NewWordRecord(string(k))
				if err := json.Unmarshal(v, rec); err != nil {
					return fmt.Errorf("corrupt record for %q: %w", k, err)
				}
				return fn(rec)
			})
		})
	})
}

// Cursor reads the progress pointer. Missing or malformed values recover to
// zero with a warning; a damaged cursor never fails the run, it only makes
// the next run start over (merges are idempotent, so that is safe).
func (s *BoltStore) Cursor() (domain.Cursor, error) {
	var cur domain.Cursor
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketProgress)
		cur.LastAvailable = s.readCursorValue(b, keyLastAvailable)
		cur.NextToIndex = s.readCursorValue(b, keyNextToIndex)
		return nil
	})
	return cur, err
}

func (s *BoltStore) readCursorValue(b *bbolt.Bucket, key []byte) int {
	data := b.Get(key)
	if data == nil {
		return 0
	}
	n, err := strconv.Atoi(string(bytes.TrimSpace(data)))
	if err != nil || n < 0 {
		s.log.Warn("malformed cursor value, resetting to 0",
			slog.String("key", string(key)), slog.String("value", string(data)))
		return 0
	}
	return n
}

// Advance rewrites only the next-to-index half of the cursor.
// Caller guarantees next <= lastAvailable+1.
func (s *BoltStore) Advance(next int) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketProgress).Put(keyNextToIndex, []byte(strconv.Itoa(next)))
	})
}

// SetLastAvailable records the highest acquired document ID. Only the
// acquisition pipeline calls this; the indexer never touches it.
func (s *BoltStore) SetLastAvailable(id int) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketProgress).Put(keyLastAvailable, []byte(strconv.Itoa(id)))
	})
}

// Stats gathers corpus-wide counts for reporting.
func (s *BoltStore) Stats() (domain.IndexStats, error) {
	stats := domain.IndexStats{ShardWords: make(map[string]int)}

	err := s.db.View(func(tx *bbolt.Tx) error {
		words := tx.Bucket(bucketWords)
		err := words.ForEachBucket(func(shardName []byte) error {
			shard := words.Bucket(shardName)
			return shard.ForEach(func(k, v []byte) error {
				rec := domain.NewWordRecord(string(k))
				if err := json.Unmarshal(v, rec); err != nil {
					return fmt.Errorf("corrupt record for %q: %w", k, err)
				}
				stats.Words++
				stats.Occurrences += rec.Total
				stats.ShardWords[string(shardName)]++
				return nil
			})
		})
		if err != nil {
			return err
		}
		return tx.Bucket(bucketGlobal).ForEach(func(k, v []byte) error {
			stats.GlobalEntries++
			return nil
		})
	})
	if err != nil {
		return domain.IndexStats{}, err
	}

	cur, err := s.Cursor()
	if err != nil {
		return domain.IndexStats{}, err
	}
	stats.Cursor = cur
	return stats, nil
}
