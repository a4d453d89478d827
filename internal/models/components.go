// components.go

package models

import (
	"github.com/jacl-coder/StormWing-Server/internal/mathx"
)

// Position 位置组件
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewPosition 创建位置组件
func NewPosition(x, y float64) Position {
	return Position{X: x, Y: y}
}

// AsVec2 转换为向量
func (p Position) AsVec2() mathx.Vec2 {
	return mathx.Vec2{X: p.X, Y: p.Y}
}

// PositionFromVec2 由向量创建位置组件
func PositionFromVec2(v mathx.Vec2) Position {
	return Position{X: v.X, Y: v.Y}
}

// Velocity 速度组件
type Velocity struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// NewVelocity 创建速度组件
func NewVelocity(dx, dy float64) Velocity {
	return Velocity{DX: dx, DY: dy}
}

// AsVec2 转换为向量
func (v Velocity) AsVec2() mathx.Vec2 {
	return mathx.Vec2{X: v.DX, Y: v.DY}
}

// VelocityFromVec2 由向量创建速度组件
func VelocityFromVec2(vec mathx.Vec2) Velocity {
	return Velocity{DX: vec.X, DY: vec.Y}
}

// Health 生命值组件。current始终处于[0,max]区间；
// armor为[0,1]范围的伤害减免系数，由调用方保证取值合理。
type Health struct {
	Current int     `json:"current"`
	Max     int     `json:"max"`
	Armor   float64 `json:"armor"`
}

// NewHealth 创建满血的生命值组件
func NewHealth(max int) Health {
	return Health{Current: max, Max: max}
}

// NewHealthWithArmor 创建带护甲的生命值组件
func NewHealthWithArmor(max int, armor float64) Health {
	return Health{Current: max, Max: max, Armor: armor}
}

// TakeDamage 应用伤害，护甲按比例减免，生命值不会低于0
func (h *Health) TakeDamage(damage float64) {
	actual := int(damage * (1.0 - h.Armor))
	h.Current -= actual
	if h.Current < 0 {
		h.Current = 0
	}
}

// Heal 恢复生命值，不会超过上限
func (h *Health) Heal(amount int) {
	h.Current += amount
	if h.Current > h.Max {
		h.Current = h.Max
	}
}

// IsAlive 是否存活
func (h *Health) IsAlive() bool {
	return h.Current > 0
}

// ColliderShape 碰撞体形状
type ColliderShape string

const (
	// ShapeCircle 圆形碰撞体
	ShapeCircle ColliderShape = "circle"
	// ShapeAABB 矩形碰撞体
	ShapeAABB ColliderShape = "aabb"
)

// Collider 碰撞体组件，圆形或矩形二选一，始终相对实体当前位置解释
type Collider struct {
	Shape  ColliderShape `json:"shape"`
	Radius float64       `json:"radius,omitempty"`
	Width  float64       `json:"width,omitempty"`
	Height float64       `json:"height,omitempty"`
}

// CircleCollider 创建圆形碰撞体
func CircleCollider(radius float64) Collider {
	return Collider{Shape: ShapeCircle, Radius: radius}
}

// AABBCollider 创建矩形碰撞体
func AABBCollider(width, height float64) Collider {
	return Collider{Shape: ShapeAABB, Width: width, Height: height}
}

// GetAABB 计算碰撞体在给定位置的包围盒，供宽相位使用
func (c Collider) GetAABB(position Position) mathx.AABB {
	switch c.Shape {
	case ShapeCircle:
		return mathx.AABBFromCenterSize(
			position.AsVec2(),
			mathx.NewVec2(c.Radius*2, c.Radius*2),
		)
	default:
		return mathx.AABBFromCenterSize(
			position.AsVec2(),
			mathx.NewVec2(c.Width, c.Height),
		)
	}
}

// Aircraft 战机组件
type Aircraft struct {
	Type       AircraftType `json:"type"`
	Level      int          `json:"level"`
	Experience int          `json:"experience"`
}

// NewAircraft 创建一级战机组件
func NewAircraft(aircraftType AircraftType) Aircraft {
	return Aircraft{Type: aircraftType, Level: 1}
}
