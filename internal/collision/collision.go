// collision.go

package collision

import (
	"github.com/jacl-coder/StormWing-Server/internal/mathx"
	"github.com/jacl-coder/StormWing-Server/internal/models"
)

// DefaultCellSize 默认网格单元大小
const DefaultCellSize = 100.0

// System 碰撞系统。每帧先Clear再重新Insert所有实体，
// 宽相位由空间哈希网格提供，窄相位由TestCollision精确判定。
type System struct {
	grid *SpatialHashGrid
}

// NewSystem 创建碰撞系统
func NewSystem(cellSize float64) *System {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &System{
		grid: NewSpatialHashGrid(cellSize),
	}
}

// Clear 丢弃所有空间记录，每帧重建前调用一次
func (s *System) Clear() {
	s.grid.Clear()
}

// Insert 计算实体包围盒并登记到网格
func (s *System) Insert(entity models.Entity, position models.Position, collider models.Collider) {
	aabb := collider.GetAABB(position)
	s.grid.Insert(entity, aabb)
}

// QueryRegion 返回与查询区域重叠单元中的实体并集。
// 可能包含误报（单元比实际形状宽），宽相位不会漏报。
func (s *System) QueryRegion(region mathx.AABB) map[models.Entity]struct{} {
	return s.grid.Query(region)
}

// TestCollision 窄相位精确碰撞检测，按碰撞体形状组合分派
func TestCollision(posA models.Position, colA models.Collider, posB models.Position, colB models.Collider) bool {
	switch {
	case colA.Shape == models.ShapeCircle && colB.Shape == models.ShapeCircle:
		return testCircleCircle(posA.AsVec2(), colA.Radius, posB.AsVec2(), colB.Radius)

	case colA.Shape == models.ShapeAABB && colB.Shape == models.ShapeAABB:
		aabbA := mathx.AABBFromCenterSize(posA.AsVec2(), mathx.NewVec2(colA.Width, colA.Height))
		aabbB := mathx.AABBFromCenterSize(posB.AsVec2(), mathx.NewVec2(colB.Width, colB.Height))
		return aabbA.Intersects(aabbB)

	case colA.Shape == models.ShapeCircle:
		aabb := mathx.AABBFromCenterSize(posB.AsVec2(), mathx.NewVec2(colB.Width, colB.Height))
		return testCircleAABB(posA.AsVec2(), colA.Radius, aabb)

	default:
		aabb := mathx.AABBFromCenterSize(posA.AsVec2(), mathx.NewVec2(colA.Width, colA.Height))
		return testCircleAABB(posB.AsVec2(), colB.Radius, aabb)
	}
}

// testCircleCircle 圆与圆: 比较距离平方与半径和的平方，避免开方
func testCircleCircle(posA mathx.Vec2, radiusA float64, posB mathx.Vec2, radiusB float64) bool {
	distSq := posA.DistanceSq(posB)
	radiusSum := radiusA + radiusB
	return distSq < radiusSum*radiusSum
}

// testCircleAABB 圆与矩形: 将圆心收拢到矩形范围内得到最近点，再比较距离平方
func testCircleAABB(circlePos mathx.Vec2, radius float64, aabb mathx.AABB) bool {
	closest := aabb.Clamp(circlePos)
	distSq := circlePos.DistanceSq(closest)
	return distSq < radius*radius
}
