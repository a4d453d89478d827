// grid.go

package collision

import (
	"math"

	"github.com/jacl-coder/StormWing-Server/internal/mathx"
	"github.com/jacl-coder/StormWing-Server/internal/models"
)

// cellCoord 网格单元坐标，使用有符号整数以正确处理负坐标
type cellCoord struct {
	X int32
	Y int32
}

// SpatialHashGrid 空间哈希网格。
// 实体的包围盒跨越多个单元时会登记到每一个单元，
// 因此区域查询可能返回误报，但宽相位绝不漏报。
type SpatialHashGrid struct {
	cellSize float64
	cells    map[cellCoord][]models.Entity
}

// NewSpatialHashGrid 创建空间哈希网格
func NewSpatialHashGrid(cellSize float64) *SpatialHashGrid {
	return &SpatialHashGrid{
		cellSize: cellSize,
		cells:    make(map[cellCoord][]models.Entity),
	}
}

// Clear 清空所有网格记录
func (g *SpatialHashGrid) Clear() {
	for key := range g.cells {
		delete(g.cells, key)
	}
}

// Insert 将实体按包围盒登记到所有覆盖的单元
func (g *SpatialHashGrid) Insert(entity models.Entity, aabb mathx.AABB) {
	minCell := g.worldToCell(aabb.Min)
	maxCell := g.worldToCell(aabb.Max)

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			key := cellCoord{X: x, Y: y}
			g.cells[key] = append(g.cells[key], entity)
		}
	}
}

// Query 查询与区域重叠的所有单元中登记的实体集合
func (g *SpatialHashGrid) Query(aabb mathx.AABB) map[models.Entity]struct{} {
	entities := make(map[models.Entity]struct{})
	minCell := g.worldToCell(aabb.Min)
	maxCell := g.worldToCell(aabb.Max)

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for _, entity := range g.cells[cellCoord{X: x, Y: y}] {
				entities[entity] = struct{}{}
			}
		}
	}

	return entities
}

// QueryPoint 查询单个点所在单元登记的实体
func (g *SpatialHashGrid) QueryPoint(point mathx.Vec2) []models.Entity {
	cell := g.worldToCell(point)
	stored := g.cells[cell]
	result := make([]models.Entity, len(stored))
	copy(result, stored)
	return result
}

// worldToCell 世界坐标到网格单元的映射: cell = floor(coord / cellSize)
func (g *SpatialHashGrid) worldToCell(pos mathx.Vec2) cellCoord {
	return cellCoord{
		X: int32(math.Floor(pos.X / g.cellSize)),
		Y: int32(math.Floor(pos.Y / g.cellSize)),
	}
}
