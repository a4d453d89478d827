// projectile.go

package weapon

import (
	"github.com/jacl-coder/StormWing-Server/internal/mathx"
	"github.com/jacl-coder/StormWing-Server/internal/models"
)

// DefaultLifetime 投射物默认存活时间
const DefaultLifetime = 5.0

// Projectile 投射物。死亡的投射物由调用方负责回收。
// Shooter是发射方实体，由发射调用方填入，用于命中事件归因。
type Projectile struct {
	Position mathx.Vec2             `json:"position"`
	Velocity mathx.Vec2             `json:"velocity"`
	Damage   float64                `json:"damage"`
	Kind     ProjectileKind         `json:"kind"`
	Owner    models.ProjectileOwner `json:"owner"`
	Shooter  models.Entity          `json:"shooter"`
	Lifetime float64                `json:"lifetime"`
}

// Update 推进位置并消耗存活时间
func (p *Projectile) Update(delta float64) {
	p.Position = p.Position.Add(p.Velocity.Scale(delta))
	p.Lifetime -= delta
}

// IsAlive 是否仍然存活
func (p *Projectile) IsAlive() bool {
	return p.Lifetime > 0
}
