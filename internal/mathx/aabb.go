// aabb.go

package mathx

// AABB 轴对齐包围盒
type AABB struct {
	Min Vec2 `json:"min"`
	Max Vec2 `json:"max"`
}

// NewAABB 由最小点和最大点创建包围盒
func NewAABB(min, max Vec2) AABB {
	return AABB{Min: min, Max: max}
}

// AABBFromCenterSize 由中心点和尺寸创建包围盒
func AABBFromCenterSize(center, size Vec2) AABB {
	half := size.Scale(0.5)
	return AABB{
		Min: center.Sub(half),
		Max: center.Add(half),
	}
}

// Intersects 判断两个包围盒是否相交
func (a AABB) Intersects(b AABB) bool {
	return a.Min.X < b.Max.X && a.Max.X > b.Min.X &&
		a.Min.Y < b.Max.Y && a.Max.Y > b.Min.Y
}

// Contains 判断点是否在包围盒内
func (a AABB) Contains(p Vec2) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X &&
		p.Y >= a.Min.Y && p.Y <= a.Max.Y
}

// Clamp 将点收拢到包围盒范围内
func (a AABB) Clamp(p Vec2) Vec2 {
	x := p.X
	if x < a.Min.X {
		x = a.Min.X
	}
	if x > a.Max.X {
		x = a.Max.X
	}
	y := p.Y
	if y < a.Min.Y {
		y = a.Min.Y
	}
	if y > a.Max.Y {
		y = a.Max.Y
	}
	return Vec2{X: x, Y: y}
}
