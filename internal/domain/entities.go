package domain

import (
	"encoding/json"
	"sort"
	"strconv"
)

// Position addresses one token occurrence within a document.
// Both fields are 1-based.
type Position struct {
	Line   int
	Offset int
}

// Less orders positions by line, then by offset within the line.
func (p Position) Less(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Offset < q.Offset
}

// PositionSet is a deduplicated set of positions. It marshals as a sorted
// list of [line, offset] pairs so identical sets are byte-identical on disk.
type PositionSet map[Position]struct{}

func NewPositionSet(positions ...Position) PositionSet {
	s := make(PositionSet, len(positions))
	for _, p := range positions {
		s[p] = struct{}{}
	}
	return s
}

func (s PositionSet) Add(p Position) {
	s[p] = struct{}{}
}

func (s PositionSet) Contains(p Position) bool {
	_, ok := s[p]
	return ok
}

// Union adds every position of other into s.
func (s PositionSet) Union(other PositionSet) {
	for p := range other {
		s[p] = struct{}{}
	}
}

// Sorted returns the positions ascending by line, then offset.
func (s PositionSet) Sorted() []Position {
	out := make([]Position, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

func (s PositionSet) MarshalJSON() ([]byte, error) {
	pairs := make([][2]int, 0, len(s))
	for _, p := range s.Sorted() {
		pairs = append(pairs, [2]int{p.Line, p.Offset})
	}
	return json.Marshal(pairs)
}

func (s *PositionSet) UnmarshalJSON(data []byte) error {
	var pairs [][2]int
	if err := json.Unmarshal(data, &pairs); err != nil {
		return err
	}
	set := make(PositionSet, len(pairs))
	for _, pair := range pairs {
		set[Position{Line: pair[0], Offset: pair[1]}] = struct{}{}
	}
	*s = set
	return nil
}

// Allocation records every occurrence of one word within one document.
// Invariant: Times == len(Positions).
type Allocation struct {
	Times     int         `json:"times"`
	Positions PositionSet `json:"position"`
}

func NewAllocation() Allocation {
	return Allocation{Positions: make(PositionSet)}
}

// Merge unions other's positions into a and recomputes the count.
func (a *Allocation) Merge(other Allocation) {
	if a.Positions == nil {
		a.Positions = make(PositionSet)
	}
	a.Positions.Union(other.Positions)
	a.Times = len(a.Positions)
}

// WordRecord is the full persisted record for one canonical word across the
// corpus. Allocations are keyed by the decimal document ID.
// Invariant: Total == sum of allocation counts.
type WordRecord struct {
	Word        string                `json:"word"`
	Allocations map[string]Allocation `json:"allocations"`
	Total       int                   `json:"total"`
}

func NewWordRecord(word string) *WordRecord {
	return &WordRecord{
		Word:        word,
		Allocations: make(map[string]Allocation),
	}
}

// MergeAllocation folds one document's allocation into the record and
// recomputes Total. Repeated merges of the same data are no-ops.
func (r *WordRecord) MergeAllocation(docID int, alloc Allocation) {
	key := DocKey(docID)
	existing, ok := r.Allocations[key]
	if !ok {
		existing = NewAllocation()
	}
	existing.Merge(alloc)
	r.Allocations[key] = existing
	r.RecomputeTotal()
}

// RecomputeTotal derives Total from the allocations. Totals are never
// incremented blindly.
func (r *WordRecord) RecomputeTotal() {
	total := 0
	for _, alloc := range r.Allocations {
		total += alloc.Times
	}
	r.Total = total
}

// DocIDs returns the record's document IDs ascending. Keys that do not
// parse are skipped.
func (r *WordRecord) DocIDs() []int {
	ids := make([]int, 0, len(r.Allocations))
	for key := range r.Allocations {
		if id, err := strconv.Atoi(key); err == nil {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// DocKey renders a document ID as an allocation map key.
func DocKey(docID int) string {
	return strconv.Itoa(docID)
}

// BookMeta is one row of the metadata catalog.
type BookMeta struct {
	ID          int
	Title       string
	Author      string
	ReleaseDate string
	Updated     string
	Language    string
}

// Cursor is the two-value indexing progress pointer.
// Invariant: NextToIndex <= LastAvailable+1.
type Cursor struct {
	LastAvailable int
	NextToIndex   int
}

// IndexStats summarizes a store for reporting.
type IndexStats struct {
	Words         int
	Occurrences   int
	GlobalEntries int
	ShardWords    map[string]int
	Books         int
	Cursor        Cursor
}
