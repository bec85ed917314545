package availability

import (
	"sync"
	"testing"

	"festa/database/repository/memory"
	"festa/errs"
	"festa/models"
)

func newTestLedger() *DefaultLedger {
	return &DefaultLedger{Repo: memory.NewSlotRepo()}
}

func TestLedger_HoldConfirmRelease(t *testing.T) {
	ledger := newTestLedger()

	if err := ledger.Hold("prov-1", "2026-06-15"); err != nil {
		t.Fatalf("hold: unexpected error: %v", err)
	}

	free, err := ledger.IsFree("prov-1", "2026-06-15")
	if err != nil {
		t.Fatalf("isFree: %v", err)
	}
	if free {
		t.Fatal("expected held slot to not be free")
	}

	if err := ledger.Confirm("prov-1", "2026-06-15"); err != nil {
		t.Fatalf("confirm: unexpected error: %v", err)
	}

	if err := ledger.Release("prov-1", "2026-06-15"); err != nil {
		t.Fatalf("release: unexpected error: %v", err)
	}
	free, err = ledger.IsFree("prov-1", "2026-06-15")
	if err != nil {
		t.Fatalf("isFree: %v", err)
	}
	if !free {
		t.Fatal("expected released slot to be free")
	}
}

func TestLedger_HoldConflictsWhenNotFree(t *testing.T) {
	ledger := newTestLedger()

	if err := ledger.Hold("prov-1", "2026-06-15"); err != nil {
		t.Fatalf("first hold: %v", err)
	}
	err := ledger.Hold("prov-1", "2026-06-15")
	if !errs.IsConflict(err) {
		t.Fatalf("expected Conflict for second hold, got %v", err)
	}

	// A different date for the same provider is unaffected.
	if err := ledger.Hold("prov-1", "2026-06-16"); err != nil {
		t.Fatalf("hold on other date: %v", err)
	}
}

func TestLedger_ConfirmRequiresHeld(t *testing.T) {
	ledger := newTestLedger()

	err := ledger.Confirm("prov-1", "2026-06-15")
	if !errs.IsInvalidState(err) {
		t.Fatalf("expected InvalidState confirming a free slot, got %v", err)
	}

	if err := ledger.Hold("prov-1", "2026-06-15"); err != nil {
		t.Fatalf("hold: %v", err)
	}
	if err := ledger.Confirm("prov-1", "2026-06-15"); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	err = ledger.Confirm("prov-1", "2026-06-15")
	if !errs.IsInvalidState(err) {
		t.Fatalf("expected InvalidState confirming a booked slot, got %v", err)
	}
}

func TestLedger_ReleaseIsIdempotent(t *testing.T) {
	ledger := newTestLedger()

	// Releasing a slot that was never held is a no-op, not an error.
	if err := ledger.Release("prov-1", "2026-06-15"); err != nil {
		t.Fatalf("release on free slot: %v", err)
	}

	if err := ledger.Hold("prov-1", "2026-06-15"); err != nil {
		t.Fatalf("hold: %v", err)
	}
	if err := ledger.Release("prov-1", "2026-06-15"); err != nil {
		t.Fatalf("release: %v", err)
	}
	if err := ledger.Release("prov-1", "2026-06-15"); err != nil {
		t.Fatalf("retried release: %v", err)
	}
}

func TestLedger_ConcurrentHoldsSingleWinner(t *testing.T) {
	ledger := newTestLedger()

	const attempts = 64
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- ledger.Hold("prov-1", "2026-06-15")
		}()
	}
	wg.Wait()
	close(results)

	var wins, conflicts int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errs.IsConflict(err):
			conflicts++
		default:
			t.Fatalf("unexpected error kind: %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("expected exactly 1 successful hold, got %d", wins)
	}
	if conflicts != attempts-1 {
		t.Fatalf("expected %d conflicts, got %d", attempts-1, conflicts)
	}
}

func TestLedger_Calendar(t *testing.T) {
	ledger := newTestLedger()

	dates := []string{"2026-06-15", "2026-06-10", "2026-07-01"}
	for _, d := range dates {
		if err := ledger.Hold("prov-1", d); err != nil {
			t.Fatalf("hold %s: %v", d, err)
		}
	}
	if err := ledger.Hold("prov-2", "2026-06-15"); err != nil {
		t.Fatalf("hold for other provider: %v", err)
	}

	slots, err := ledger.Calendar("prov-1", "2026-06-01", "2026-06-30")
	if err != nil {
		t.Fatalf("calendar: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots in June, got %d", len(slots))
	}
	if slots[0].Date != "2026-06-10" || slots[1].Date != "2026-06-15" {
		t.Fatalf("expected dates sorted ascending, got %v", slots)
	}
	for _, slot := range slots {
		if slot.State != models.SlotHeld {
			t.Fatalf("expected held state, got %s", slot.State)
		}
	}
}
