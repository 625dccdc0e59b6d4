package usecase

import (
	"sync"
	"testing"
)

func TestSessionLocks_SerializesAndCleansUp(t *testing.T) {
	locks := newSessionLocks()
	var wg sync.WaitGroup
	counter := 0

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.lock("same")
			counter++
			unlock()
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Errorf("counter = %d", counter)
	}
	if n := locks.size(); n != 0 {
		t.Errorf("%d lock entries left", n)
	}
}
