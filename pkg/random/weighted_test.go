// weighted_test.go

package random

import (
	"math/rand"
	"testing"
)

func TestWeightedEmpty(t *testing.T) {
	w := NewWeighted[string]()
	rng := rand.New(rand.NewSource(1))

	if _, ok := w.Select(rng); ok {
		t.Error("empty selector should report no selection")
	}
	if w.Len() != 0 {
		t.Errorf("Len() = %d, want 0", w.Len())
	}
}

func TestWeightedSingleItem(t *testing.T) {
	w := NewWeighted[string]()
	w.Add("only", 1.0)
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 10; i++ {
		item, ok := w.Select(rng)
		if !ok || item != "only" {
			t.Fatalf("Select() = %q, %v, want \"only\", true", item, ok)
		}
	}
}

func TestWeightedZeroWeightDominated(t *testing.T) {
	w := NewWeighted[string]()
	w.Add("never", 0.0)
	w.Add("always", 10.0)
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 100; i++ {
		item, ok := w.Select(rng)
		if !ok {
			t.Fatal("selection failed")
		}
		if item == "never" {
			t.Fatal("zero-weight item was selected")
		}
	}
}

func TestWeightedDistribution(t *testing.T) {
	w := NewWeighted[string]()
	w.Add("common", 90.0)
	w.Add("rare", 10.0)
	rng := rand.New(rand.NewSource(42))

	counts := make(map[string]int)
	const trials = 10000
	for i := 0; i < trials; i++ {
		item, _ := w.Select(rng)
		counts[item]++
	}

	// 90/10的权重下抽样比例应落在宽松区间内
	ratio := float64(counts["common"]) / float64(trials)
	if ratio < 0.85 || ratio > 0.95 {
		t.Errorf("common ratio = %v, want about 0.9 (counts %v)", ratio, counts)
	}
	if counts["rare"] == 0 {
		t.Error("rare item was never selected")
	}
}

func TestWeightedDeterministic(t *testing.T) {
	build := func() *Weighted[int] {
		w := NewWeighted[int]()
		w.Add(1, 5.0)
		w.Add(2, 3.0)
		w.Add(3, 2.0)
		return w
	}

	a, b := build(), build()
	rngA := rand.New(rand.NewSource(99))
	rngB := rand.New(rand.NewSource(99))

	for i := 0; i < 50; i++ {
		itemA, _ := a.Select(rngA)
		itemB, _ := b.Select(rngB)
		if itemA != itemB {
			t.Fatalf("draw %d diverged: %d vs %d", i, itemA, itemB)
		}
	}
}

func TestWeightedClear(t *testing.T) {
	w := NewWeighted[int]()
	w.Add(1, 1.0)
	w.Add(2, 2.0)

	if w.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", w.Len())
	}

	w.Clear()
	if w.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", w.Len())
	}
	rng := rand.New(rand.NewSource(1))
	if _, ok := w.Select(rng); ok {
		t.Error("cleared selector should report no selection")
	}

	// 清空后可复用
	w.Add(3, 1.0)
	item, ok := w.Select(rng)
	if !ok || item != 3 {
		t.Errorf("Select() after reuse = %d, %v, want 3, true", item, ok)
	}
}
