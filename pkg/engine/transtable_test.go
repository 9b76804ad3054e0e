package engine

import (
	"errors"
	"sync"
	"testing"

	. "github.com/lazycounter/lazycounter/pkg/common"
)

func newTestTransTable(t *testing.T) *transTable {
	var tt, err = newTransTable(1)
	if err != nil {
		t.Fatal(err)
	}
	return tt
}

func TestTransTableStoreRead(t *testing.T) {
	var tt = newTestTransTable(t)
	var p, _ = NewPositionFromFEN(InitialPositionFen)
	var move, _ = p.ParseMoveLAN("e2e4")
	tt.Update(p.Key, 7, -35, boundExact, move)

	var depth, score, bound, ttMove, ok = tt.Read(p.Key)
	if !ok || depth != 7 || score != -35 || bound != boundExact || ttMove != move {
		t.Error(depth, score, bound, ttMove, ok)
	}
}

func TestTransTableCollision(t *testing.T) {
	var tt = newTestTransTable(t)
	var key = uint64(0x123456789abcdef0)
	var other = key ^ (1 << 63) // same slot, different key
	tt.Update(key, 5, 10, boundLower, MoveEmpty)
	if _, _, _, _, ok := tt.Read(other); ok {
		t.Error("colliding key accepted")
	}
	if r := tt.Probe(other, 1, -100, 100, 0); r.kind != probeMiss {
		t.Error(r.kind)
	}
}

func TestTransTableRejectsCorruptEntry(t *testing.T) {
	var tt = newTestTransTable(t)
	var key = uint64(0xfeedface12345678)
	tt.Update(key, 5, 10, boundLower, MoveEmpty)

	// half of a different store
	var entry = &tt.entries[key&tt.mask]
	entry.data.Store(packData(9, 500, boundExact, MoveEmpty, tt.date))
	if _, _, _, _, ok := tt.Read(key); ok {
		t.Error("torn entry accepted")
	}

	// consistent check word but impossible payload
	var bad = packData(5, 10, 0, MoveEmpty, tt.date)
	entry.data.Store(bad)
	entry.check.Store(key ^ bad)
	if _, _, _, _, ok := tt.Read(key); ok {
		t.Error("entry without bound accepted")
	}
}

func TestTransTableReplacement(t *testing.T) {
	var tt = newTestTransTable(t)
	var key = uint64(42)
	tt.Update(key, 8, 1, boundExact, MoveEmpty)
	tt.Update(key, 3, 2, boundLower, MoveEmpty)
	if depth, score, _, _, _ := tt.Read(key); depth != 8 || score != 1 {
		t.Error("shallow entry replaced deeper one", depth, score)
	}
	tt.Update(key, 8, 3, boundLower, MoveEmpty)
	if depth, score, _, _, _ := tt.Read(key); depth != 8 || score != 3 {
		t.Error("equal depth not replaced", depth, score)
	}
	tt.IncDate()
	tt.Update(key, 1, 4, boundUpper, MoveEmpty)
	if depth, score, _, _, _ := tt.Read(key); depth != 1 || score != 4 {
		t.Error("old generation not replaced", depth, score)
	}
}

func TestTransTableProbe(t *testing.T) {
	var tt = newTestTransTable(t)
	var key = uint64(7)
	tt.Update(key, 6, 50, boundLower, MoveEmpty)

	var tests = []struct {
		depth, alpha, beta int
		kind               probeKind
	}{
		{6, 0, 40, probeCutoff},
		{6, 0, 60, probeHint},
		{7, 0, 40, probeHint},
		{1, -10, 10, probeCutoff},
	}
	for i, test := range tests {
		if r := tt.Probe(key, test.depth, test.alpha, test.beta, 0); r.kind != test.kind {
			t.Error(i, r.kind)
		}
	}
}

func TestTransTableMateScore(t *testing.T) {
	var tt = newTestTransTable(t)
	var key = uint64(99)
	// mate found 3 plies below a node at height 4
	tt.Update(key, 5, valueToTT(winIn(7), 4), boundExact, MoveEmpty)
	if r := tt.Probe(key, 1, -valueInfinity, valueInfinity, 10); r.score != winIn(13) {
		t.Error(r.score, winIn(13))
	}
}

func TestTransTableAllocFallback(t *testing.T) {
	var saved = allocateEntries
	defer func() { allocateEntries = saved }()

	allocateEntries = func(size int) ([]transEntry, error) {
		if size > 1024*1024*4/transEntrySize {
			return nil, ErrTransTableAlloc
		}
		return make([]transEntry, size), nil
	}
	var tt, err = newTransTable(32)
	if err != nil {
		t.Fatal(err)
	}
	if tt.Size() != 4 || len(tt.entries) != 1024*1024*4/transEntrySize {
		t.Error(tt.Size(), len(tt.entries))
	}

	allocateEntries = func(size int) ([]transEntry, error) {
		return nil, ErrTransTableAlloc
	}
	if _, err := newTransTable(8); !errors.Is(err, ErrTransTableAlloc) {
		t.Error(err)
	}
}

func TestTransTableHashfull(t *testing.T) {
	var tt = newTestTransTable(t)
	if tt.Hashfull() != 0 {
		t.Error(tt.Hashfull())
	}
	for i := uint64(0); i < 500; i++ {
		tt.Update(i, 1, 0, boundExact, MoveEmpty)
	}
	if tt.Hashfull() != 500 {
		t.Error(tt.Hashfull())
	}
	tt.IncDate()
	if tt.Hashfull() != 0 {
		t.Error(tt.Hashfull())
	}
	tt.Clear()
	if _, _, _, _, ok := tt.Read(1); ok {
		t.Error("entry survived clear")
	}
}

// Every key stores a payload derived from itself, so any read that passes
// validation must return that payload.
func TestTransTableConcurrentAccess(t *testing.T) {
	var tt = newTestTransTable(t)
	const keysPerWorker = 20000
	var wg sync.WaitGroup
	var failures [8]int
	for w := range failures {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for round := 0; round < 3; round++ {
				for i := 0; i < keysPerWorker; i++ {
					// few slots, many keys
					var key = uint64(i%64) | uint64(w*keysPerWorker+i)<<32
					var score = int(key>>32) % 1000
					tt.Update(key, 1+i%20, score, boundLower, MoveEmpty)
					if _, s, _, _, ok := tt.Read(key ^ uint64(1)<<40); ok && s != int((key^uint64(1)<<40)>>32)%1000 {
						failures[w]++
					}
				}
			}
		}()
	}
	wg.Wait()
	for w, n := range failures {
		if n != 0 {
			t.Error(w, n)
		}
	}
}
