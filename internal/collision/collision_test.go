package collision

import (
	"testing"

	"github.com/jacl-coder/StormWing-Server/internal/mathx"
	"github.com/jacl-coder/StormWing-Server/internal/models"
)

func TestTestCollisionCircleCircle(t *testing.T) {
	tests := []struct {
		name string
		posA models.Position
		radA float64
		posB models.Position
		radB float64
		want bool
	}{
		{"overlapping", models.NewPosition(0, 0), 10, models.NewPosition(15, 0), 10, true},
		{"separate", models.NewPosition(0, 0), 5, models.NewPosition(20, 0), 5, false},
		{"exactly touching counts as miss", models.NewPosition(0, 0), 5, models.NewPosition(10, 0), 5, false},
		{"concentric", models.NewPosition(3, 3), 1, models.NewPosition(3, 3), 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := models.CircleCollider(tt.radA)
			b := models.CircleCollider(tt.radB)
			if got := TestCollision(tt.posA, a, tt.posB, b); got != tt.want {
				t.Errorf("TestCollision = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTestCollisionCircleAABB(t *testing.T) {
	box := models.AABBCollider(10, 10)
	boxPos := models.NewPosition(0, 0)

	tests := []struct {
		name   string
		circle models.Position
		radius float64
		want   bool
	}{
		{"circle inside box", models.NewPosition(0, 0), 2, true},
		{"circle overlaps edge", models.NewPosition(7, 0), 3, true},
		{"circle near corner misses", models.NewPosition(9, 9), 2, false},
		{"circle near corner hits", models.NewPosition(7, 7), 4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			circle := models.CircleCollider(tt.radius)
			got := TestCollision(tt.circle, circle, boxPos, box)
			if got != tt.want {
				t.Errorf("circle vs box = %v, want %v", got, tt.want)
			}
			// 参数顺序不影响结果
			if rev := TestCollision(boxPos, box, tt.circle, circle); rev != got {
				t.Errorf("collision test not symmetric: %v vs %v", got, rev)
			}
		})
	}
}

func TestTestCollisionAABBAABB(t *testing.T) {
	a := models.AABBCollider(10, 10)
	b := models.AABBCollider(10, 10)

	if !TestCollision(models.NewPosition(0, 0), a, models.NewPosition(5, 5), b) {
		t.Error("overlapping boxes should collide")
	}
	if TestCollision(models.NewPosition(0, 0), a, models.NewPosition(20, 0), b) {
		t.Error("separate boxes should not collide")
	}
}

func TestSpatialHashGridQuery(t *testing.T) {
	grid := NewSpatialHashGrid(100)

	e1 := models.NewEntity(1)
	e2 := models.NewEntity(2)
	e3 := models.NewEntity(3)

	grid.Insert(e1, mathx.NewAABB(mathx.NewVec2(10, 10), mathx.NewVec2(20, 20)))
	grid.Insert(e2, mathx.NewAABB(mathx.NewVec2(250, 250), mathx.NewVec2(260, 260)))
	grid.Insert(e3, mathx.NewAABB(mathx.NewVec2(-50, -50), mathx.NewVec2(-40, -40)))

	// 查询第一个单元
	result := grid.Query(mathx.NewAABB(mathx.NewVec2(0, 0), mathx.NewVec2(50, 50)))
	if _, ok := result[e1]; !ok {
		t.Error("query missed entity in covered cell")
	}
	if _, ok := result[e2]; ok {
		t.Error("query returned entity from distant cell")
	}

	// 负坐标单元的实体能被查到
	result = grid.Query(mathx.NewAABB(mathx.NewVec2(-60, -60), mathx.NewVec2(-30, -30)))
	if _, ok := result[e3]; !ok {
		t.Error("query missed entity at negative coordinates")
	}
}

func TestSpatialHashGridSpanningEntity(t *testing.T) {
	grid := NewSpatialHashGrid(100)

	// 包围盒横跨多个单元
	e := models.NewEntity(7)
	grid.Insert(e, mathx.NewAABB(mathx.NewVec2(50, 50), mathx.NewVec2(250, 150)))

	// 从任一覆盖单元查询都能命中
	for _, region := range []mathx.AABB{
		mathx.NewAABB(mathx.NewVec2(60, 60), mathx.NewVec2(70, 70)),
		mathx.NewAABB(mathx.NewVec2(150, 120), mathx.NewVec2(160, 130)),
		mathx.NewAABB(mathx.NewVec2(240, 60), mathx.NewVec2(245, 70)),
	} {
		result := grid.Query(region)
		if _, ok := result[e]; !ok {
			t.Errorf("spanning entity not found in region %+v", region)
		}
	}

	// 查询结果去重: 覆盖全部单元也只返回一次
	result := grid.Query(mathx.NewAABB(mathx.NewVec2(0, 0), mathx.NewVec2(300, 300)))
	if len(result) != 1 {
		t.Errorf("expected deduplicated result, got %d entries", len(result))
	}
}

func TestSpatialHashGridClear(t *testing.T) {
	grid := NewSpatialHashGrid(100)
	grid.Insert(models.NewEntity(1), mathx.NewAABB(mathx.NewVec2(0, 0), mathx.NewVec2(10, 10)))
	grid.Clear()

	result := grid.Query(mathx.NewAABB(mathx.NewVec2(0, 0), mathx.NewVec2(100, 100)))
	if len(result) != 0 {
		t.Errorf("grid not empty after Clear: %d entries", len(result))
	}
}

func TestSystemInsertAndQuery(t *testing.T) {
	sys := NewSystem(100)

	e := models.NewEntity(1)
	sys.Insert(e, models.NewPosition(50, 50), models.CircleCollider(10))

	result := sys.QueryRegion(mathx.NewAABB(mathx.NewVec2(30, 30), mathx.NewVec2(70, 70)))
	if _, ok := result[e]; !ok {
		t.Error("inserted entity not found by region query")
	}

	sys.Clear()
	result = sys.QueryRegion(mathx.NewAABB(mathx.NewVec2(0, 0), mathx.NewVec2(100, 100)))
	if len(result) != 0 {
		t.Error("system not empty after Clear")
	}
}
