package inventory

import (
	"sync"
	"testing"
	"time"
)

func testStore() *MemoryStore {
	return NewMemoryStore(
		[]Resource{
			{Name: "bay-1", Kind: KindBay},
			{Name: "tech-anna", Kind: KindTechnician, Skills: []string{"engine", "general"}},
			{Name: "tech-bo", Kind: KindTechnician, Skills: []string{"brakes", "general"}},
		},
		[]PartStock{
			{PartNumber: "ENG001", OnHand: 4, UnitCost: 120, LeadTimeDays: 3},
			{PartNumber: "TIR001", OnHand: 0, UnitCost: 95, LeadTimeDays: 5},
		},
	)
}

func TestReservePartDecrementsLedgerOnly(t *testing.T) {
	store := testStore()
	led := NewLedger(store)

	res := led.ReservePart("ENG001", 3)
	if !res.Reserved {
		t.Fatalf("expected reservation to succeed")
	}
	if got := led.ReservePart("ENG001", 2); got.Reserved {
		t.Fatalf("over-allocation allowed: 2 reserved with 1 remaining")
	}
	// Store untouched until commit.
	if store.Parts()["ENG001"].OnHand != 4 {
		t.Fatalf("store mutated before commit")
	}
	if err := store.Commit(led.PartDeltas()); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if got := store.Parts()["ENG001"].OnHand; got != 1 {
		t.Fatalf("expected 1 on hand after commit, got %d", got)
	}
}

func TestReservePartShortageReportsLeadTime(t *testing.T) {
	led := NewLedger(testStore())
	res := led.ReservePart("TIR001", 5)
	if res.Reserved {
		t.Fatalf("reserved out-of-stock part")
	}
	if !res.Known || res.LeadTimeDays != 5 {
		t.Fatalf("expected known part with 5 day lead time, got %+v", res)
	}
	if unknown := led.ReservePart("XXX999", 1); unknown.Known {
		t.Fatalf("unknown part reported as known")
	}
}

func TestReserveTechnicianNoDoubleBooking(t *testing.T) {
	led := NewLedger(testStore())
	day := time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC)

	name, ok := led.ReserveTechnician("engine", day)
	if !ok || name != "tech-anna" {
		t.Fatalf("expected tech-anna, got %q ok=%v", name, ok)
	}
	// The engine specialist is booked; the general fallback takes over.
	name, ok = led.ReserveTechnician("engine", day)
	if !ok || name != "tech-bo" {
		t.Fatalf("expected fallback tech-bo, got %q ok=%v", name, ok)
	}
	if _, ok := led.ReserveTechnician("engine", day); ok {
		t.Fatalf("double booking allowed on a full day")
	}
	if _, ok := led.ReserveTechnician("engine", day.AddDate(0, 0, 1)); !ok {
		t.Fatalf("next day should be free")
	}
}

func TestReserveBayCapacity(t *testing.T) {
	led := NewLedger(testStore())
	day := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
	if !led.ReserveBay(day) {
		t.Fatalf("single bay should be free")
	}
	if led.ReserveBay(day) {
		t.Fatalf("bay over-allocated")
	}

	// No bays in the roster means no bay constraint.
	open := NewLedger(NewMemoryStore(nil, nil))
	if !open.ReserveBay(day) {
		t.Fatalf("rosterless fleet should not be bay-constrained")
	}
}

func TestCommitIsAtomic(t *testing.T) {
	store := testStore()
	err := store.Commit(map[string]int{"ENG001": 2, "TIR001": 1})
	if err == nil {
		t.Fatalf("expected commit failure on short stock")
	}
	if store.Parts()["ENG001"].OnHand != 4 {
		t.Fatalf("partial commit applied")
	}
}

func TestConcurrentCommits(t *testing.T) {
	store := testStore()
	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = store.Commit(map[string]int{"ENG001": 1})
		}(i)
	}
	wg.Wait()
	okCount := 0
	for _, err := range errs {
		if err == nil {
			okCount++
		}
	}
	if okCount != 4 {
		t.Fatalf("expected exactly 4 commits to succeed, got %d", okCount)
	}
	if store.Parts()["ENG001"].OnHand != 0 {
		t.Fatalf("stock not fully drained: %d", store.Parts()["ENG001"].OnHand)
	}
}
