package engine

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	. "github.com/lazycounter/lazycounter/pkg/common"
)

var ErrTransTableAlloc = errors.New("transposition table allocation failed")

const (
	boundLower = 1 << iota
	boundUpper
)

const boundExact = boundLower | boundUpper

const transEntrySize = 16

// Entry payload layout.
const (
	dataMoveBits   = 24
	dataScoreShift = 24
	dataDepthShift = 40
	dataBoundShift = 48
	dataDateShift  = 50
)

func roundPowerOfTwo(size int) int {
	var x = 1
	for (x << 1) <= size {
		x <<= 1
	}
	return x
}

// transEntry keeps key^data next to data. A reader that sees halves of two
// different stores gets a key mismatch and treats the slot as empty.
type transEntry struct {
	check atomic.Uint64
	data  atomic.Uint64
}

type transTable struct {
	requested int
	megabytes int
	entries   []transEntry
	date      uint8
	mask      uint64
}

type probeKind int

const (
	probeMiss probeKind = iota
	probeHint
	probeCutoff
)

type probeResult struct {
	kind  probeKind
	depth int
	score int
	bound int
	move  Move
}

// allocateEntries is replaced in tests.
var allocateEntries = func(size int) (entries []transEntry, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v entries: %v", ErrTransTableAlloc, size, r)
		}
	}()
	return make([]transEntry, size), nil
}

// newTransTable allocates megabytes of entries, halving the size on failure
// down to one megabyte.
func newTransTable(megabytes int) (*transTable, error) {
	var lastErr error
	for mb := max(megabytes, 1); mb >= 1; mb /= 2 {
		var size = roundPowerOfTwo(1024 * 1024 * mb / transEntrySize)
		var entries, err = allocateEntries(size)
		if err != nil {
			lastErr = err
			log.Warn().Err(err).Int("megabytes", mb).Msg("transtable-alloc-failed")
			continue
		}
		if mb != megabytes {
			log.Warn().Int("requested", megabytes).Int("megabytes", mb).Msg("transtable-size-reduced")
		}
		log.Debug().Int("megabytes", mb).Int("entries", size).Msg("transtable-allocated")
		return &transTable{
			requested: megabytes,
			megabytes: mb,
			entries:   entries,
			mask:      uint64(size - 1),
		}, nil
	}
	if lastErr == nil {
		lastErr = ErrTransTableAlloc
	}
	return nil, lastErr
}

func (tt *transTable) Size() int {
	return tt.megabytes
}

// IncDate starts a new generation. Call between searches only.
func (tt *transTable) IncDate() {
	tt.date++
}

func (tt *transTable) Clear() {
	tt.date = 0
	for i := range tt.entries {
		tt.entries[i].check.Store(0)
		tt.entries[i].data.Store(0)
	}
}

func packData(depth, score, bound int, move Move, date uint8) uint64 {
	return uint64(uint32(move)&(1<<dataMoveBits-1)) |
		uint64(uint16(int16(score)))<<dataScoreShift |
		uint64(uint8(int8(depth)))<<dataDepthShift |
		uint64(bound&boundExact)<<dataBoundShift |
		uint64(date)<<dataDateShift
}

func unpackData(data uint64) (depth, score, bound int, move Move, date uint8) {
	move = Move(data & (1<<dataMoveBits - 1))
	score = int(int16(uint16(data >> dataScoreShift)))
	depth = int(int8(uint8(data >> dataDepthShift)))
	bound = int((data >> dataBoundShift) & boundExact)
	date = uint8(data >> dataDateShift)
	return
}

// validData rejects payloads that no store could have produced.
func validData(data uint64) bool {
	var depth, score, bound, _, _ = unpackData(data)
	return bound != 0 &&
		depth >= -1 && depth <= stackSize &&
		score >= -valueMate && score <= valueMate
}

func (tt *transTable) load(key uint64) (data uint64, ok bool) {
	var entry = &tt.entries[key&tt.mask]
	var check = entry.check.Load()
	data = entry.data.Load()
	if check^data != key || !validData(data) {
		return 0, false
	}
	return data, true
}

func (tt *transTable) Read(key uint64) (depth, score, bound int, move Move, ok bool) {
	var data, found = tt.load(key)
	if !found {
		return
	}
	depth, score, bound, move, _ = unpackData(data)
	ok = true
	return
}

// Probe reads the entry for key and tells whether its bound settles the
// window at the given depth. The score is adjusted to height.
func (tt *transTable) Probe(key uint64, depth, alpha, beta, height int) probeResult {
	var ttDepth, ttScore, ttBound, ttMove, ok = tt.Read(key)
	if !ok {
		return probeResult{kind: probeMiss}
	}
	var result = probeResult{
		kind:  probeHint,
		depth: ttDepth,
		score: valueFromTT(ttScore, height),
		bound: ttBound,
		move:  ttMove,
	}
	if ttDepth >= depth &&
		(ttBound == boundExact ||
			ttBound == boundLower && result.score >= beta ||
			ttBound == boundUpper && result.score <= alpha) {
		result.kind = probeCutoff
	}
	return result
}

// Update stores the entry unless the slot holds a deeper result of the
// current generation.
func (tt *transTable) Update(key uint64, depth, score, bound int, move Move) {
	var entry = &tt.entries[key&tt.mask]
	var check = entry.check.Load()
	var old = entry.data.Load()
	if validData(old) {
		var oldDepth, _, _, oldMove, oldDate = unpackData(old)
		var sameKey = check^old == key
		if oldDate == tt.date && depth < oldDepth {
			return
		}
		if sameKey && move == MoveEmpty {
			move = oldMove
		}
	}
	var data = packData(depth, score, bound, move, tt.date)
	entry.data.Store(data)
	entry.check.Store(key ^ data)
}

// Hashfull estimates per-mille occupancy by the current generation.
func (tt *transTable) Hashfull() int {
	var n = min(1000, len(tt.entries))
	var used = 0
	for i := 0; i < n; i++ {
		var data = tt.entries[i].data.Load()
		if !validData(data) {
			continue
		}
		if _, _, _, _, date := unpackData(data); date == tt.date {
			used++
		}
	}
	return used * 1000 / n
}
