package models

import (
	"testing"
)

func TestEntityAllocatorAllocate(t *testing.T) {
	alloc := NewEntityAllocator()

	a := alloc.Allocate()
	b := alloc.Allocate()

	if a.Index == b.Index {
		t.Errorf("distinct entities share index %d", a.Index)
	}
	if !alloc.IsAlive(a) || !alloc.IsAlive(b) {
		t.Error("freshly allocated entities should be alive")
	}
	if got := alloc.Count(); got != 2 {
		t.Errorf("Count = %d, want 2", got)
	}
}

func TestEntityAllocatorReuseBumpsGeneration(t *testing.T) {
	alloc := NewEntityAllocator()

	a := alloc.Allocate()
	alloc.Free(a)

	if alloc.IsAlive(a) {
		t.Error("freed entity should not be alive")
	}

	b := alloc.Allocate()
	if b.Index != a.Index {
		t.Errorf("expected slot reuse, got index %d want %d", b.Index, a.Index)
	}
	if b.Generation != a.Generation+1 {
		t.Errorf("Generation = %d, want %d", b.Generation, a.Generation+1)
	}

	// 旧句柄不会指向新实体
	if alloc.IsAlive(a) {
		t.Error("stale handle should stay dead after slot reuse")
	}
	if !alloc.IsAlive(b) {
		t.Error("new handle should be alive")
	}
}

func TestEntityAllocatorDoubleFree(t *testing.T) {
	alloc := NewEntityAllocator()

	a := alloc.Allocate()
	alloc.Free(a)
	alloc.Free(a) // 重复释放应被忽略

	if got := alloc.Count(); got != 0 {
		t.Errorf("Count = %d, want 0", got)
	}

	b := alloc.Allocate()
	c := alloc.Allocate()
	if b.Index == c.Index {
		t.Errorf("double free corrupted free list: both entities at index %d", b.Index)
	}
}

func TestEntityAllocatorUnknownHandle(t *testing.T) {
	alloc := NewEntityAllocator()
	if alloc.IsAlive(Entity{Index: 42}) {
		t.Error("handle for unallocated slot should not be alive")
	}
}

func TestHealthTakeDamage(t *testing.T) {
	tests := []struct {
		name    string
		health  Health
		damage  float64
		current int
	}{
		{"plain damage", NewHealth(100), 30, 70},
		{"armor reduces damage", NewHealthWithArmor(100, 0.5), 30, 85},
		{"full armor blocks all", NewHealthWithArmor(100, 1.0), 30, 100},
		{"overkill clamps to zero", NewHealth(100), 500, 0},
		{"fractional damage truncates", NewHealthWithArmor(100, 0.25), 10, 93},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := tt.health
			h.TakeDamage(tt.damage)
			if h.Current != tt.current {
				t.Errorf("Current = %d, want %d", h.Current, tt.current)
			}
		})
	}
}

func TestHealthHeal(t *testing.T) {
	h := NewHealth(100)
	h.TakeDamage(60)
	h.Heal(30)
	if h.Current != 70 {
		t.Errorf("Current = %d, want 70", h.Current)
	}

	// 不超过上限
	h.Heal(1000)
	if h.Current != 100 {
		t.Errorf("Current = %d, want 100", h.Current)
	}
}

func TestHealthIsAlive(t *testing.T) {
	h := NewHealth(10)
	if !h.IsAlive() {
		t.Error("full health should be alive")
	}
	h.TakeDamage(10)
	if h.IsAlive() {
		t.Error("zero health should be dead")
	}
}

func TestColliderGetAABB(t *testing.T) {
	pos := NewPosition(10, 20)

	circle := CircleCollider(5)
	box := circle.GetAABB(pos)
	if box.Min.X != 5 || box.Min.Y != 15 || box.Max.X != 15 || box.Max.Y != 25 {
		t.Errorf("circle AABB = %+v", box)
	}

	rect := AABBCollider(4, 8)
	box = rect.GetAABB(pos)
	if box.Min.X != 8 || box.Min.Y != 16 || box.Max.X != 12 || box.Max.Y != 24 {
		t.Errorf("rect AABB = %+v", box)
	}
}
