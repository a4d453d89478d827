// combat_test.go

package game

import (
	"math"
	"testing"
	"time"

	"github.com/jacl-coder/StormWing-Server/config"
	"github.com/jacl-coder/StormWing-Server/internal/ai"
	"github.com/jacl-coder/StormWing-Server/internal/mathx"
	"github.com/jacl-coder/StormWing-Server/internal/models"
	"github.com/jacl-coder/StormWing-Server/internal/weapon"
)

// newTestRoom 构造不依赖网络与数据库的测试房间
func newTestRoom(t *testing.T, seed int64) *Room {
	t.Helper()
	cfg := &config.Config{
		Game: config.GameConfig{
			TickRate:       60,
			CollisionCell:  100.0,
			UpgradeChoices: 3,
			StartingZone:   "sky",
		},
	}
	return NewRoom(cfg, 1, seed, models.AircraftSpitfire)
}

func TestApplyCommandMoveVelocity(t *testing.T) {
	r := newTestRoom(t, 42)

	enemy := &enemyUnit{
		entity:          r.allocator.Allocate(),
		speedMultiplier: 2.0,
	}

	r.applyCommand(enemy, ai.Command{
		Kind:      ai.CommandMove,
		Direction: mathx.NewVec2(0, 1),
		Speed:     150,
	})

	if math.Abs(enemy.velocity.DX-0) > 1e-9 || math.Abs(enemy.velocity.DY-300) > 1e-9 {
		t.Errorf("velocity = (%v, %v), want (0, 300)", enemy.velocity.DX, enemy.velocity.DY)
	}
}

func TestSetPlayerInputVelocity(t *testing.T) {
	r := newTestRoom(t, 42)

	// Spitfire基础速度250，方向(3,4)归一化后为(0.6,0.8)
	r.SetPlayerInput(mathx.NewVec2(3, 4), mathx.NewVec2(0, -1), false)

	if math.Abs(r.player.velocity.DX-150) > 1e-9 || math.Abs(r.player.velocity.DY-200) > 1e-9 {
		t.Errorf("velocity = (%v, %v), want (150, 200)", r.player.velocity.DX, r.player.velocity.DY)
	}
}

func TestEnemyProjectileHitCarriesShooter(t *testing.T) {
	r := newTestRoom(t, 42)
	shooter := r.allocator.Allocate()

	r.projectiles = append(r.projectiles, weapon.Projectile{
		Position: r.player.position.AsVec2(),
		Damage:   8,
		Owner:    models.OwnerEnemy,
		Shooter:  shooter,
		Lifetime: weapon.DefaultLifetime,
	})

	events := r.resolveProjectiles(0)
	if len(events) != 1 {
		t.Fatalf("got %d collision events, want 1", len(events))
	}

	event := events[0]
	if event.EntityA.Index != shooter.Index || event.EntityA.Generation != shooter.Generation {
		t.Errorf("attacker = %d/%d, want shooter %d/%d",
			event.EntityA.Index, event.EntityA.Generation, shooter.Index, shooter.Generation)
	}
	if event.EntityB.Index != r.player.entity.Index {
		t.Errorf("target = %d, want player %d", event.EntityB.Index, r.player.entity.Index)
	}
	if r.player.health.Current != 92 {
		t.Errorf("player health = %d, want 92", r.player.health.Current)
	}
}

func TestFireEnemyWeaponStampsShooter(t *testing.T) {
	r := newTestRoom(t, 42)

	enemy := &enemyUnit{
		entity:           r.allocator.Allocate(),
		position:         models.NewPosition(0, -200),
		weaponID:         weaponEnemyGun,
		damageMultiplier: 1.5,
	}

	r.fireEnemyWeapon(enemy, mathx.NewVec2(0, 1))

	if len(r.projectiles) == 0 {
		t.Fatal("no projectiles fired")
	}
	p := r.projectiles[0]
	if p.Shooter != enemy.entity {
		t.Errorf("shooter = %+v, want %+v", p.Shooter, enemy.entity)
	}
	// MG 17基础伤害8，波次倍率1.5
	if math.Abs(p.Damage-12) > 1e-9 {
		t.Errorf("damage = %v, want 12", p.Damage)
	}
}

func TestRoomTickSimulation(t *testing.T) {
	r := newTestRoom(t, 42)
	r.Status = models.RoomPlaying
	r.lastFrameTime = time.Now()

	r.spawnWave(&r.zone.Waves[0])
	if len(r.enemies) == 0 {
		t.Fatal("wave spawned no enemies")
	}

	r.SetPlayerInput(mathx.NewVec2(1, 0), mathx.NewVec2(0, -1), true)

	for i := 0; i < 120; i++ {
		r.update()
	}

	if len(r.projectiles) == 0 {
		t.Error("no projectiles after 120 ticks of sustained fire")
	}
	if !r.player.health.IsAlive() {
		t.Error("player should survive the opening ticks")
	}
	if r.frameID != 120 {
		t.Errorf("frameID = %d, want 120", r.frameID)
	}
}
