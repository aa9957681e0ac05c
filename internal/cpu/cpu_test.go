package cpu

import (
	"runtime"
	"sync"
	"testing"
)

func TestAvailable(t *testing.T) {
	n := Available()
	if n < 1 {
		t.Fatalf("expected at least one available core, got %d", n)
	}
	if n > runtime.NumCPU() {
		t.Errorf("available cores %d exceeds logical CPUs %d", n, runtime.NumCPU())
	}
}

func TestAffinity_BindAndRelease(t *testing.T) {
	for _, a := range []Affinity{Pinned{}, Unpinned{}} {
		var wg sync.WaitGroup
		for id := range Available() + 2 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				release := a.Bind(id)
				defer release()
			}()
		}
		wg.Wait()
	}
}
