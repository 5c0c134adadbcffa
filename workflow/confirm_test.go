package workflow

import (
	"fmt"
	"sync"
	"testing"
)

// NOTE: These tests are intentionally DB-free. They validate the intended
// trust semantics:
// - repeat confirmations are absorbed, never double-counted
// - reputation is credited exactly once per unique (price, user) pair
// - a submitter never confirms their own price
//
// Full DB integration tests should be added in an environment that can run
// MySQL + Redis.

type fakeTrustLedger struct {
	muByPrice  map[int]*sync.Mutex
	mu         sync.Mutex
	confirmed  map[string]bool
	reputation map[int]int
	submitters map[int]int
}

func newFakeTrustLedger() *fakeTrustLedger {
	return &fakeTrustLedger{
		muByPrice:  map[int]*sync.Mutex{},
		confirmed:  map[string]bool{},
		reputation: map[int]int{},
		submitters: map[int]int{},
	}
}

func (l *fakeTrustLedger) confirm(prixId, userId, points int) (created bool, err error) {
	// Reject self-confirmation before taking any lock.
	l.mu.Lock()
	submitter := l.submitters[prixId]
	l.mu.Unlock()
	if submitter == userId {
		return false, fmt.Errorf("self-confirmation forbidden")
	}

	// Serialize per price (AcquirePriceLock).
	l.mu.Lock()
	pm := l.muByPrice[prixId]
	if pm == nil {
		pm = &sync.Mutex{}
		l.muByPrice[prixId] = pm
	}
	l.mu.Unlock()

	pm.Lock()
	defer pm.Unlock()

	// Deduplicate (PrixConfirmation unique index).
	key := fmt.Sprintf("%d|%d", prixId, userId)
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.confirmed[key] {
		return false, nil
	}
	l.confirmed[key] = true
	// Confirmation row and reputation credit commit together.
	l.reputation[submitter] += points
	return true, nil
}

func TestConfirm_DuplicateConfirmation_CountedOnce(t *testing.T) {
	l := newFakeTrustLedger()
	l.submitters[10] = 1

	var wg sync.WaitGroup
	var mu sync.Mutex
	createdCount := 0
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			created, err := l.confirm(10, 2, 5)
			if err != nil {
				t.Error(err)
				return
			}
			if created {
				mu.Lock()
				createdCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if createdCount != 1 {
		t.Fatalf("expected exactly 1 created confirmation, got %d", createdCount)
	}
	if l.reputation[1] != 5 {
		t.Fatalf("expected submitter reputation 5, got %d", l.reputation[1])
	}
}

func TestConfirm_SelfConfirmation_Rejected(t *testing.T) {
	l := newFakeTrustLedger()
	l.submitters[10] = 1

	if _, err := l.confirm(10, 1, 5); err == nil {
		t.Fatal("expected self-confirmation to be rejected")
	}
	if l.reputation[1] != 0 {
		t.Fatalf("self-confirmation must not credit reputation, got %d", l.reputation[1])
	}
}

func TestConfirm_Property_ReputationExactlyOncePerConfirmer(t *testing.T) {
	for run := 0; run < 100; run++ {
		l := newFakeTrustLedger()
		l.submitters[10] = 1

		var wg sync.WaitGroup
		// confirmers 2..6, each racing itself three times
		for user := 2; user <= 6; user++ {
			for i := 0; i < 3; i++ {
				wg.Add(1)
				go func(user int) {
					defer wg.Done()
					if _, err := l.confirm(10, user, 5); err != nil {
						t.Error(err)
					}
				}(user)
			}
		}
		wg.Wait()

		if l.reputation[1] != 25 {
			t.Fatalf("run=%d expected reputation 25 (5 confirmers x 5 points), got %d", run, l.reputation[1])
		}
	}
}
