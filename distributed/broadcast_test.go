package distributed

import (
	"sync"
	"testing"
)

func TestDistributeValue(t *testing.T) {
	params := []float64{0.5, -1.25, 3.0}
	handle := Distribute(params)

	got := handle.Value()
	if len(got) != len(params) {
		t.Fatalf("Value() length = %d, want %d", len(got), len(params))
	}
	for i := range params {
		if got[i] != params[i] {
			t.Errorf("Value()[%d] = %v, want %v", i, got[i], params[i])
		}
	}
}

func TestBroadcastConcurrentReads(t *testing.T) {
	handle := Distribute(42)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if v := handle.Value(); v != 42 {
					t.Errorf("Value() = %d, want 42", v)
					return
				}
			}
		}()
	}
	wg.Wait()
}
