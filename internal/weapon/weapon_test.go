package weapon

import (
	"math"
	"testing"

	"github.com/jacl-coder/StormWing-Server/internal/mathx"
	"github.com/jacl-coder/StormWing-Server/internal/models"
)

func testWeapon(pattern SpreadPattern) Definition {
	return Definition{
		ID:              1,
		Name:            "Test Gun",
		BaseDamage:      10,
		FireRate:        5,
		ProjectileSpeed: 600,
		ProjectileKind:  ProjectileBullet,
		SpreadPattern:   pattern,
	}
}

func TestFireUnknownWeapon(t *testing.T) {
	sys := NewSystem()
	if got := sys.Fire(99, mathx.NewVec2(0, 0), mathx.NewVec2(0, 1), models.OwnerPlayer); got != nil {
		t.Errorf("unknown weapon fired %d projectiles", len(got))
	}
}

func TestFireSingleShot(t *testing.T) {
	sys := NewSystem()
	sys.RegisterWeapon(testWeapon(SingleShot()))

	projectiles := sys.Fire(1, mathx.NewVec2(5, 5), mathx.NewVec2(0, 1), models.OwnerPlayer)
	if len(projectiles) != 1 {
		t.Fatalf("got %d projectiles, want 1", len(projectiles))
	}

	p := projectiles[0]
	if p.Position.X != 5 || p.Position.Y != 5 {
		t.Errorf("Position = %+v, want {5 5}", p.Position)
	}
	if math.Abs(p.Velocity.Y-600) > 1e-9 || math.Abs(p.Velocity.X) > 1e-9 {
		t.Errorf("Velocity = %+v, want {0 600}", p.Velocity)
	}
	if p.Damage != 10 {
		t.Errorf("Damage = %v, want 10", p.Damage)
	}
	if p.Owner != models.OwnerPlayer {
		t.Errorf("Owner = %s, want player", p.Owner)
	}
	if p.Lifetime != DefaultLifetime {
		t.Errorf("Lifetime = %v, want %v", p.Lifetime, DefaultLifetime)
	}
}

func TestFireTwinShot(t *testing.T) {
	sys := NewSystem()
	sys.RegisterWeapon(testWeapon(TwinShot(0.2)))

	projectiles := sys.Fire(1, mathx.NewVec2(0, 0), mathx.NewVec2(0, 1), models.OwnerPlayer)
	if len(projectiles) != 2 {
		t.Fatalf("got %d projectiles, want 2", len(projectiles))
	}

	// 两条弹道在瞄准方向两侧对称
	if projectiles[0].Velocity.X*projectiles[1].Velocity.X >= 0 {
		t.Errorf("twin shots not symmetric: %+v / %+v", projectiles[0].Velocity, projectiles[1].Velocity)
	}
}

func TestFireFanShot(t *testing.T) {
	sys := NewSystem()
	sys.RegisterWeapon(testWeapon(FanShot(3, 30)))

	projectiles := sys.Fire(1, mathx.NewVec2(0, 0), mathx.NewVec2(0, 1), models.OwnerEnemy)
	if len(projectiles) != 3 {
		t.Fatalf("got %d projectiles, want 3", len(projectiles))
	}

	// 中间一条弹道沿瞄准方向
	mid := projectiles[1].Velocity.Normalize()
	if math.Abs(mid.X) > 1e-9 || math.Abs(mid.Y-1) > 1e-9 {
		t.Errorf("middle projectile should follow aim, got %+v", mid)
	}

	// 两侧弹道偏转15度
	left := projectiles[0].Velocity.Normalize()
	wantAngle := 15.0 * math.Pi / 180.0
	gotAngle := math.Acos(left.X*mid.X + left.Y*mid.Y)
	if math.Abs(gotAngle-wantAngle) > 1e-9 {
		t.Errorf("edge projectile angle = %v rad, want %v rad", gotAngle, wantAngle)
	}
}

func TestFireFanShotSingleCount(t *testing.T) {
	sys := NewSystem()
	sys.RegisterWeapon(testWeapon(FanShot(1, 30)))

	projectiles := sys.Fire(1, mathx.NewVec2(0, 0), mathx.NewVec2(1, 0), models.OwnerEnemy)
	if len(projectiles) != 1 {
		t.Fatalf("fan with count 1 should degrade to single shot, got %d", len(projectiles))
	}
}

func TestFireCircleShot(t *testing.T) {
	sys := NewSystem()
	sys.RegisterWeapon(testWeapon(CircleShot(8)))

	projectiles := sys.Fire(1, mathx.NewVec2(0, 0), mathx.NewVec2(0, 1), models.OwnerEnemy)
	if len(projectiles) != 8 {
		t.Fatalf("got %d projectiles, want 8", len(projectiles))
	}

	// 所有弹道速度大小一致
	for i, p := range projectiles {
		if math.Abs(p.Velocity.Magnitude()-600) > 1e-9 {
			t.Errorf("projectile %d speed = %v, want 600", i, p.Velocity.Magnitude())
		}
	}
}

func TestFireCustomShot(t *testing.T) {
	sys := NewSystem()
	sys.RegisterWeapon(testWeapon(CustomShot(func(direction mathx.Vec2) []mathx.Vec2 {
		return []mathx.Vec2{direction, direction.Scale(-1)}
	})))

	projectiles := sys.Fire(1, mathx.NewVec2(0, 0), mathx.NewVec2(0, 1), models.OwnerPlayer)
	if len(projectiles) != 2 {
		t.Fatalf("got %d projectiles, want 2", len(projectiles))
	}
}

func TestApplyUpgrade(t *testing.T) {
	sys := NewSystem()
	sys.RegisterWeapon(testWeapon(SingleShot()))

	sys.ApplyUpgrade(1, Upgrade{
		Name:               "Rapid Fire",
		DamageMultiplier:   1.0,
		FireRateMultiplier: 1.5,
		SpeedMultiplier:    1.0,
	})

	def, ok := sys.GetWeapon(1)
	if !ok {
		t.Fatal("weapon disappeared after upgrade")
	}
	if math.Abs(def.FireRate-7.5) > 1e-9 {
		t.Errorf("FireRate = %v, want 7.5", def.FireRate)
	}
	if def.BaseDamage != 10 {
		t.Errorf("BaseDamage = %v, want 10", def.BaseDamage)
	}

	history := sys.UpgradeHistory(1)
	if len(history) != 1 || history[0].Name != "Rapid Fire" {
		t.Errorf("UpgradeHistory = %+v", history)
	}
}

func TestApplyUpgradeReplacesSpread(t *testing.T) {
	sys := NewSystem()
	sys.RegisterWeapon(testWeapon(SingleShot()))

	fan := FanShot(5, 45)
	sys.ApplyUpgrade(1, Upgrade{
		Name:               "Scatter Conversion",
		DamageMultiplier:   1.0,
		FireRateMultiplier: 1.0,
		SpeedMultiplier:    1.0,
		NewSpreadPattern:   &fan,
	})

	projectiles := sys.Fire(1, mathx.NewVec2(0, 0), mathx.NewVec2(0, 1), models.OwnerPlayer)
	if len(projectiles) != 5 {
		t.Errorf("got %d projectiles after spread upgrade, want 5", len(projectiles))
	}
}

func TestProjectileUpdate(t *testing.T) {
	p := Projectile{
		Position: mathx.NewVec2(0, 0),
		Velocity: mathx.NewVec2(100, 0),
		Lifetime: 1.0,
	}

	p.Update(0.5)
	if p.Position.X != 50 {
		t.Errorf("Position.X = %v, want 50", p.Position.X)
	}
	if !p.IsAlive() {
		t.Error("projectile should still be alive")
	}

	p.Update(0.5)
	if p.IsAlive() {
		t.Error("projectile should expire after lifetime elapses")
	}
}
