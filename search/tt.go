// Package search implements iterative-deepening alpha-beta search with
// quiescence, null-move pruning, late-move reductions, and a Lazy-SMP
// parallel coordinator over a shared lock-free transposition table.
package search

import (
	"sync/atomic"

	"github.com/zugzwang-engine/zugzwang/board"
	"github.com/zugzwang-engine/zugzwang/eval"
)

// Bound records whether a transposition entry's score is exact or only
// a cutoff bound, the same three-way distinction as classical alpha-beta
// hash tables.
type Bound uint8

const (
	BoundNone Bound = iota
	BoundExact
	BoundLower // fail-high: score is at least this
	BoundUpper // fail-low: score is at most this
)

// ttSlot is one 16-byte transposition table slot: a guard key (the full
// Zobrist hash XORed with the packed data word, Stockfish-style) and the
// packed data itself. Both fields are updated with plain atomic stores;
// readers detect a torn write by re-deriving the hash from key^data and
// comparing it against the probed position's own hash, rather than by
// taking a lock.
type ttSlot struct {
	key  atomic.Uint64
	data atomic.Uint64
}

// ttBucket groups 4 slots, sized to fit one cache line, so a probe or a
// store touches a single line regardless of which slot within the
// bucket ends up used.
type ttBucket struct {
	slots [4]ttSlot
}

const slotsPerBucket = 4

// packed data word layout, low bits to high:
//
//	move        16 bits  (from 6 | to 6 | promotion 4)
//	score       16 bits  (signed, mate-distance normalized)
//	depth        8 bits
//	bound        2 bits
//	age          6 bits
//	hasStatic    1 bit
//	staticEval  15 bits  (signed, -16384..16383; the word has no 16th bit left)
const (
	shiftMove    = 0
	shiftScore   = 16
	shiftDepth   = 32
	shiftBound   = 40
	shiftAge     = 42
	shiftHasStat = 48
	shiftStatic  = 49
)

func packMove(m board.Move) uint64 {
	if m.IsNull() {
		return 0
	}
	return uint64(m.From) | uint64(m.To)<<6 | uint64(m.Promotion)<<12
}

func unpackMove(bits uint64) board.Move {
	if bits == 0 {
		return board.NullMove
	}
	return board.Move{
		From:      board.Square(bits & 0x3f),
		To:        board.Square((bits >> 6) & 0x3f),
		Promotion: board.Figure((bits >> 12) & 0xf),
	}
}

func pack(move board.Move, score int16, static int16, hasStatic bool, depth int8, bound Bound, age uint8) uint64 {
	w := packMove(move)
	w |= uint64(uint16(score)) << shiftScore
	w |= uint64(uint8(depth)) << shiftDepth
	w |= uint64(bound&3) << shiftBound
	w |= uint64(age&0x3f) << shiftAge
	if hasStatic {
		w |= 1 << shiftHasStat
		w |= uint64(uint16(static)) << shiftStatic
	}
	return w
}

// Entry is the decoded view of a transposition table slot returned by Probe.
type Entry struct {
	Move       board.Move
	Score      int16
	StaticEval int16
	HasStatic  bool
	Depth      int8
	Bound      Bound
	Age        uint8
}

func unpack(w uint64) Entry {
	return Entry{
		Move:       unpackMove(w & 0xffff),
		Score:      int16(uint16(w >> shiftScore)),
		Depth:      int8(uint8(w >> shiftDepth)),
		Bound:      Bound((w >> shiftBound) & 3),
		Age:        uint8((w >> shiftAge) & 0x3f),
		HasStatic:  (w>>shiftHasStat)&1 != 0,
		StaticEval: int16(uint16(w>>shiftStatic)<<1) >> 1,
	}
}

// Table is a fixed-size, lock-free, bucketed transposition table shared
// by every Lazy-SMP worker. Size is always a power of two number of
// buckets so indexing is a mask, not a modulo.
type Table struct {
	buckets []ttBucket
	mask    uint64
	age     uint32
}

// NewTable allocates a table of roughly sizeMB megabytes.
func NewTable(sizeMB int) *Table {
	if sizeMB < 1 {
		sizeMB = 1
	}
	bucketSize := uint64(slotsPerBucket * 16)
	numBuckets := uint64(sizeMB) * 1024 * 1024 / bucketSize
	numBuckets = nextPowerOfTwo(numBuckets)
	if numBuckets == 0 {
		numBuckets = 1
	}
	return &Table{
		buckets: make([]ttBucket, numBuckets),
		mask:    numBuckets - 1,
	}
}

func nextPowerOfTwo(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	p := uint64(1)
	for p < n {
		p <<= 1
	}
	return p
}

// Clear zeroes every slot; called on `ucinewgame`.
func (t *Table) Clear() {
	for i := range t.buckets {
		b := &t.buckets[i]
		for j := range b.slots {
			b.slots[j].key.Store(0)
			b.slots[j].data.Store(0)
		}
	}
	atomic.StoreUint32(&t.age, 0)
}

// NewSearch bumps the generation counter, so Store can prefer entries
// from older searches when a bucket is full.
func (t *Table) NewSearch() {
	atomic.AddUint32(&t.age, 1)
}

func (t *Table) bucket(hash uint64) *ttBucket {
	return &t.buckets[hash&t.mask]
}

// HashFull estimates occupancy in permille (0..1000), the UCI `info
// hashfull` unit, by sampling up to the first 1000 buckets rather than
// scanning the whole table.
func (t *Table) HashFull() int {
	sample := len(t.buckets)
	if sample > 1000 {
		sample = 1000
	}
	if sample == 0 {
		return 0
	}
	used := 0
	for i := 0; i < sample; i++ {
		for j := range t.buckets[i].slots {
			if t.buckets[i].slots[j].data.Load() != 0 {
				used++
			}
		}
	}
	return used * 1000 / (sample * slotsPerBucket)
}

// Prefetch hints the CPU to start pulling hash's bucket into cache
// before the caller actually needs it. The searcher does not call it.
func (t *Table) Prefetch(hash uint64) {
	_ = t.bucket(hash) // indexing is the whole hint available in pure Go
}

// Probe looks up hash. ok is false on a miss or a detected torn read.
func (t *Table) Probe(hash uint64) (Entry, bool) {
	b := t.bucket(hash)
	for i := range b.slots {
		key := b.slots[i].key.Load()
		data := b.slots[i].data.Load()
		if key^data == hash {
			return unpack(data), true
		}
	}
	return Entry{}, false
}

// Store inserts or updates the entry for hash. Within a bucket it
// prefers, in order: a slot already holding this hash, an empty slot, a
// slot from an older search generation, then the shallowest entry.
// Mate scores must already be made relative to the current ply by the
// caller (ply added on store, removed on probe is done by ToTTScore /
// FromTTScore below).
func (t *Table) Store(hash uint64, move board.Move, score int16, depth int8, bound Bound, static int16, hasStatic bool) {
	b := t.bucket(hash)
	age := uint8(atomic.LoadUint32(&t.age) & 0x3f)

	best := -1
	bestRank := int32(1 << 30)
	for i := range b.slots {
		key := b.slots[i].key.Load()
		data := b.slots[i].data.Load()
		if key^data == hash {
			best = i
			break
		}
		if data == 0 {
			best = i
			break
		}
		e := unpack(data)
		rank := int32(e.Depth)
		if e.Age != age {
			rank -= 64 // heavily prefer replacing stale-generation entries
		}
		if rank < bestRank {
			bestRank = rank
			best = i
		}
	}
	if best < 0 {
		best = 0
	}

	if move.IsNull() {
		if key := b.slots[best].key.Load(); key^b.slots[best].data.Load() == hash {
			if prev := unpack(b.slots[best].data.Load()); !prev.Move.IsNull() {
				move = prev.Move
			}
		}
	}

	data := pack(move, score, static, hasStatic, depth, bound, age)
	b.slots[best].data.Store(data)
	b.slots[best].key.Store(hash ^ data)
}

// ToTTScore adjusts a search score for storage, making mate scores
// relative to the root instead of the current ply (see FromTTScore).
func ToTTScore(score int32, ply int) int16 {
	if score >= eval.KnownWinScore {
		score += int32(ply)
	} else if score <= eval.KnownLossScore {
		score -= int32(ply)
	}
	return int16(score)
}

// FromTTScore reverses ToTTScore when a stored score is read back at a
// different ply than where it was stored, so mate distances stay
// correct regardless of which ply probed the entry.
func FromTTScore(score int16, ply int) int32 {
	s := int32(score)
	if s >= eval.KnownWinScore {
		s -= int32(ply)
	} else if s <= eval.KnownLossScore {
		s += int32(ply)
	}
	return s
}
