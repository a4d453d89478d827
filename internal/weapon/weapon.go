// weapon.go

package weapon

import (
	"math"

	"github.com/jacl-coder/StormWing-Server/internal/mathx"
	"github.com/jacl-coder/StormWing-Server/internal/models"
)

// WeaponID 武器标识
type WeaponID uint32

// ProjectileKind 投射物类型
type ProjectileKind string

const (
	// ProjectileBullet 子弹
	ProjectileBullet ProjectileKind = "bullet"
	// ProjectileMissile 导弹
	ProjectileMissile ProjectileKind = "missile"
	// ProjectileLaser 激光
	ProjectileLaser ProjectileKind = "laser"
	// ProjectileBomb 炸弹
	ProjectileBomb ProjectileKind = "bomb"
	// ProjectileRocket 火箭弹
	ProjectileRocket ProjectileKind = "rocket"
)

// SpreadKind 弹道散布类型
type SpreadKind string

const (
	// SpreadSingle 单发直射
	SpreadSingle SpreadKind = "single"
	// SpreadTwin 双联装
	SpreadTwin SpreadKind = "twin"
	// SpreadFan 扇形散射
	SpreadFan SpreadKind = "spread"
	// SpreadCircle 环形全向
	SpreadCircle SpreadKind = "circle"
	// SpreadCustom 自定义方向集
	SpreadCustom SpreadKind = "custom"
)

// CustomSpreadFunc 自定义散布策略，由调用方提供方向集
type CustomSpreadFunc func(direction mathx.Vec2) []mathx.Vec2

// SpreadPattern 弹道散布模式
type SpreadPattern struct {
	Kind    SpreadKind `json:"kind"`
	Spacing float64    `json:"spacing,omitempty"` // Twin: 垂直间距
	Count   int        `json:"count,omitempty"`   // Spread/Circle: 弹道数量
	Angle   float64    `json:"angle,omitempty"`   // Spread: 扇形角度(度)

	// Custom模式的策略函数，不参与序列化
	Custom CustomSpreadFunc `json:"-"`
}

// SingleShot 单发模式
func SingleShot() SpreadPattern {
	return SpreadPattern{Kind: SpreadSingle}
}

// TwinShot 双联装模式
func TwinShot(spacing float64) SpreadPattern {
	return SpreadPattern{Kind: SpreadTwin, Spacing: spacing}
}

// FanShot 扇形散射模式
func FanShot(count int, angle float64) SpreadPattern {
	return SpreadPattern{Kind: SpreadFan, Count: count, Angle: angle}
}

// CircleShot 环形全向模式
func CircleShot(count int) SpreadPattern {
	return SpreadPattern{Kind: SpreadCircle, Count: count}
}

// CustomShot 自定义散布模式
func CustomShot(fn CustomSpreadFunc) SpreadPattern {
	return SpreadPattern{Kind: SpreadCustom, Custom: fn}
}

// Definition 武器定义
type Definition struct {
	ID              WeaponID       `json:"id"`
	Name            string         `json:"name"`
	BaseDamage      float64        `json:"base_damage"`
	FireRate        float64        `json:"fire_rate"`
	ProjectileSpeed float64        `json:"projectile_speed"`
	ProjectileKind  ProjectileKind `json:"projectile_kind"`
	SpreadPattern   SpreadPattern  `json:"spread_pattern"`
	AmmoCost        int            `json:"ammo_cost,omitempty"`
}

// Upgrade 武器升级，乘算伤害/射速/弹速，可替换散布模式
type Upgrade struct {
	Name               string         `json:"name"`
	DamageMultiplier   float64        `json:"damage_multiplier"`
	FireRateMultiplier float64        `json:"fire_rate_multiplier"`
	SpeedMultiplier    float64        `json:"speed_multiplier"`
	NewSpreadPattern   *SpreadPattern `json:"new_spread_pattern,omitempty"`
}

// applyUpgrade 将升级就地应用到武器定义
func (d *Definition) applyUpgrade(upgrade Upgrade) {
	d.BaseDamage *= upgrade.DamageMultiplier
	d.FireRate *= upgrade.FireRateMultiplier
	d.ProjectileSpeed *= upgrade.SpeedMultiplier

	if upgrade.NewSpreadPattern != nil {
		d.SpreadPattern = *upgrade.NewSpreadPattern
	}
}

// System 武器系统。按标识注册武器定义，
// Fire将开火意图转换为带几何散布的投射物集合。
type System struct {
	weapons  map[WeaponID]*Definition
	upgrades map[WeaponID][]Upgrade
}

// NewSystem 创建武器系统
func NewSystem() *System {
	return &System{
		weapons:  make(map[WeaponID]*Definition),
		upgrades: make(map[WeaponID][]Upgrade),
	}
}

// RegisterWeapon 注册武器定义
func (s *System) RegisterWeapon(def Definition) {
	s.weapons[def.ID] = &def
}

// GetWeapon 查询武器定义
func (s *System) GetWeapon(id WeaponID) (*Definition, bool) {
	def, ok := s.weapons[id]
	return def, ok
}

// ApplyUpgrade 对武器应用升级并保留升级历史，便于查询和回退工具使用
func (s *System) ApplyUpgrade(id WeaponID, upgrade Upgrade) {
	if def, ok := s.weapons[id]; ok {
		def.applyUpgrade(upgrade)
	}
	s.upgrades[id] = append(s.upgrades[id], upgrade)
}

// UpgradeHistory 查询武器的升级历史
func (s *System) UpgradeHistory(id WeaponID) []Upgrade {
	return s.upgrades[id]
}

// Fire 开火，未注册的武器返回空集合
func (s *System) Fire(id WeaponID, origin mathx.Vec2, direction mathx.Vec2, owner models.ProjectileOwner) []Projectile {
	def, ok := s.weapons[id]
	if !ok {
		return nil
	}

	directions := calculateSpread(def.SpreadPattern, direction)
	projectiles := make([]Projectile, 0, len(directions))
	for _, dir := range directions {
		projectiles = append(projectiles, Projectile{
			Position: origin,
			Velocity: dir.Scale(def.ProjectileSpeed),
			Damage:   def.BaseDamage,
			Kind:     def.ProjectileKind,
			Owner:    owner,
			Lifetime: DefaultLifetime,
		})
	}

	return projectiles
}

// calculateSpread 由散布模式和瞄准方向计算弹道方向集
func calculateSpread(pattern SpreadPattern, direction mathx.Vec2) []mathx.Vec2 {
	switch pattern.Kind {
	case SpreadTwin:
		perpendicular := direction.Perpendicular().Normalize()
		return []mathx.Vec2{
			direction.Add(perpendicular.Scale(pattern.Spacing)).Normalize(),
			direction.Sub(perpendicular.Scale(pattern.Spacing)).Normalize(),
		}

	case SpreadFan:
		// count<=1时角步长公式会除零，退化为单发直射
		if pattern.Count <= 1 {
			return []mathx.Vec2{direction.Normalize()}
		}
		angleRad := pattern.Angle * math.Pi / 180.0
		step := angleRad / float64(pattern.Count-1)
		startAngle := -angleRad / 2.0

		directions := make([]mathx.Vec2, 0, pattern.Count)
		for i := 0; i < pattern.Count; i++ {
			offsetAngle := startAngle + step*float64(i)
			directions = append(directions, direction.Rotate(offsetAngle).Normalize())
		}
		return directions

	case SpreadCircle:
		if pattern.Count <= 0 {
			return nil
		}
		angleStep := 2.0 * math.Pi / float64(pattern.Count)
		directions := make([]mathx.Vec2, 0, pattern.Count)
		for i := 0; i < pattern.Count; i++ {
			angle := angleStep * float64(i)
			directions = append(directions, mathx.NewVec2(math.Cos(angle), math.Sin(angle)))
		}
		return directions

	case SpreadCustom:
		if pattern.Custom == nil {
			return []mathx.Vec2{direction.Normalize()}
		}
		return pattern.Custom(direction)

	default:
		return []mathx.Vec2{direction.Normalize()}
	}
}
