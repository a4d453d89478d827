// combat.go

package game

import (
	"github.com/jacl-coder/StormWing-Server/internal/ai"
	"github.com/jacl-coder/StormWing-Server/internal/collision"
	"github.com/jacl-coder/StormWing-Server/internal/mathx"
	"github.com/jacl-coder/StormWing-Server/internal/models"
	"github.com/jacl-coder/StormWing-Server/internal/procgen"
	"github.com/jacl-coder/StormWing-Server/internal/protocol"
	"github.com/jacl-coder/StormWing-Server/internal/upgrade"
	"github.com/jacl-coder/StormWing-Server/internal/weapon"
)

// 武器标识
const (
	weaponPlayerMain weapon.WeaponID = 1
	weaponPlayerTwin weapon.WeaponID = 2
	weaponEnemyGun   weapon.WeaponID = 100
	weaponEnemyHeavy weapon.WeaponID = 101
)

// 碰撞参数
const (
	projectileRadius = 5.0
	playerRadius     = 20.0
)

// registerDefaultWeapons 注册内置武器定义
func registerDefaultWeapons(sys *weapon.System) {
	sys.RegisterWeapon(weapon.Definition{
		ID:              weaponPlayerMain,
		Name:            "Browning M2",
		BaseDamage:      10,
		FireRate:        5.0,
		ProjectileSpeed: 600,
		ProjectileKind:  weapon.ProjectileBullet,
		SpreadPattern:   weapon.SingleShot(),
	})
	sys.RegisterWeapon(weapon.Definition{
		ID:              weaponPlayerTwin,
		Name:            "Twin Browning",
		BaseDamage:      10,
		FireRate:        5.0,
		ProjectileSpeed: 600,
		ProjectileKind:  weapon.ProjectileBullet,
		SpreadPattern:   weapon.TwinShot(0.15),
	})
	sys.RegisterWeapon(weapon.Definition{
		ID:              weaponEnemyGun,
		Name:            "MG 17",
		BaseDamage:      8,
		FireRate:        1.5,
		ProjectileSpeed: 400,
		ProjectileKind:  weapon.ProjectileBullet,
		SpreadPattern:   weapon.SingleShot(),
	})
	sys.RegisterWeapon(weapon.Definition{
		ID:              weaponEnemyHeavy,
		Name:            "MK 108",
		BaseDamage:      15,
		FireRate:        0.8,
		ProjectileSpeed: 300,
		ProjectileKind:  weapon.ProjectileBullet,
		SpreadPattern:   weapon.FanShot(3, 30),
	})
}

// aircraftProfile 机型基础属性
type aircraftProfile struct {
	health int
	speed  float64
}

var aircraftProfiles = map[models.AircraftType]aircraftProfile{
	models.AircraftSpitfire:    {health: 100, speed: 250},
	models.AircraftMustang:     {health: 90, speed: 280},
	models.AircraftCorsair:     {health: 110, speed: 230},
	models.AircraftThunderbolt: {health: 130, speed: 200},
	models.AircraftLightning:   {health: 80, speed: 300},
}

// enemyProfile 敌机基础属性
type enemyProfile struct {
	health        int
	radius        float64
	contactDamage float64
	scoreValue    int64
	weaponID      weapon.WeaponID
}

var enemyProfiles = map[models.EnemyType]enemyProfile{
	models.EnemyFighter:     {health: 30, radius: 15, contactDamage: 10, scoreValue: 100, weaponID: weaponEnemyGun},
	models.EnemyBomber:      {health: 80, radius: 25, contactDamage: 20, scoreValue: 250, weaponID: weaponEnemyGun},
	models.EnemyAce:         {health: 60, radius: 15, contactDamage: 15, scoreValue: 500, weaponID: weaponEnemyGun},
	models.EnemyKamikaze:    {health: 25, radius: 12, contactDamage: 30, scoreValue: 150, weaponID: weaponEnemyGun},
	models.EnemyHeavyBomber: {health: 150, radius: 30, contactDamage: 25, scoreValue: 400, weaponID: weaponEnemyHeavy},
}

// newPlayerUnit 创建玩家机模拟单元
func newPlayerUnit(allocator *models.EntityAllocator, aircraft models.AircraftType) *playerUnit {
	profile, ok := aircraftProfiles[aircraft]
	if !ok {
		profile = aircraftProfiles[models.AircraftSpitfire]
	}

	return &playerUnit{
		entity:    allocator.Allocate(),
		position:  models.NewPosition(0, worldHalfHeight-50),
		health:    models.NewHealth(profile.health),
		collider:  models.CircleCollider(playerRadius),
		aircraft:  aircraft,
		weaponID:  weaponPlayerMain,
		baseSpeed: profile.speed,
		aim:       mathx.NewVec2(0, -1),
	}
}

// spawnWave 实例化一波敌机进入场地
func (r *Room) spawnWave(wave *procgen.Wave) {
	for i, enemyType := range wave.EnemyComposition {
		profile, ok := enemyProfiles[enemyType]
		if !ok {
			continue
		}

		var offset mathx.Vec2
		if i < len(wave.SpawnPositions) {
			offset = wave.SpawnPositions[i]
		}

		health := int(float64(profile.health) * wave.HealthMultiplier)
		scoreValue := profile.scoreValue
		elite := wave.HasElite && i == 0
		if elite {
			health *= 2
			scoreValue *= 2
		}

		entity := r.allocator.Allocate()
		unit := &enemyUnit{
			entity:           entity,
			position:         models.PositionFromVec2(offset.Add(mathx.NewVec2(0, -worldHalfHeight))),
			health:           models.NewHealth(health),
			collider:         models.CircleCollider(profile.radius),
			enemyType:        enemyType,
			elite:            elite,
			contactDamage:    profile.contactDamage * wave.DamageMultiplier,
			scoreValue:       scoreValue,
			weaponID:         profile.weaponID,
			damageMultiplier: wave.DamageMultiplier,
			speedMultiplier:  wave.SpeedMultiplier,
		}

		if def, ok := r.weaponSys.GetWeapon(profile.weaponID); ok && def.FireRate > 0 {
			unit.fireInterval = 1.0 / def.FireRate
		}

		r.enemies[entity] = unit
		r.aiSystem.RegisterEnemyWithOffset(entity, enemyType, offset)
	}
}

// rebuildCollisionGrid 每帧从头重建空间哈希网格
func (r *Room) rebuildCollisionGrid() {
	r.colliders.Clear()

	for entity, enemy := range r.enemies {
		r.colliders.Insert(entity, enemy.position, enemy.collider)
	}

	if r.player.health.IsAlive() {
		r.colliders.Insert(r.player.entity, r.player.position, r.player.collider)
	}
}

// resolveProjectiles 老化所有投射物并结算命中。
// 玩家弹丸通过网格宽相位筛选敌机，敌机弹丸只需对玩家做窄相位测试。
func (r *Room) resolveProjectiles(delta float64) []*protocol.CollisionEvent {
	var events []*protocol.CollisionEvent
	alive := r.projectiles[:0]

	for i := range r.projectiles {
		p := &r.projectiles[i]
		p.Update(delta)
		if !p.IsAlive() {
			continue
		}

		projPos := models.PositionFromVec2(p.Position)
		projCollider := models.CircleCollider(projectileRadius)
		hit := false

		if p.Owner == models.OwnerPlayer {
			region := projCollider.GetAABB(projPos)
			for entity := range r.colliders.QueryRegion(region) {
				enemy, ok := r.enemies[entity]
				if !ok {
					continue
				}
				if collision.TestCollision(projPos, projCollider, enemy.position, enemy.collider) {
					enemy.health.TakeDamage(p.Damage)
					events = append(events, collisionEvent(p.Shooter, entity, p.Position, int(p.Damage)))
					hit = true
					break
				}
			}
		} else if r.player.health.IsAlive() {
			if collision.TestCollision(projPos, projCollider, r.player.position, r.player.collider) {
				r.player.health.TakeDamage(p.Damage)
				events = append(events, collisionEvent(p.Shooter, r.player.entity, p.Position, int(p.Damage)))
				hit = true
			}
		}

		if !hit {
			alive = append(alive, *p)
		}
	}

	r.projectiles = alive
	return events
}

// resolveContactDamage 敌机撞击玩家机。撞击双方都受损，
// 撞击的敌机直接坠毁。
func (r *Room) resolveContactDamage() []*protocol.CollisionEvent {
	if !r.player.health.IsAlive() {
		return nil
	}

	var events []*protocol.CollisionEvent
	for entity, enemy := range r.enemies {
		if !collision.TestCollision(enemy.position, enemy.collider, r.player.position, r.player.collider) {
			continue
		}

		r.player.health.TakeDamage(enemy.contactDamage)
		enemy.health.Current = 0

		midpoint := enemy.position.AsVec2().Add(r.player.position.AsVec2()).Scale(0.5)
		events = append(events, collisionEvent(entity, r.player.entity, midpoint, int(enemy.contactDamage)))
	}

	return events
}

// updateAI 每帧对每架敌机求值行为树并执行产生的指令
func (r *Room) updateAI(delta float64) {
	for entity, enemy := range r.enemies {
		if enemy.fireCooldown > 0 {
			enemy.fireCooldown -= delta
		}

		command := r.aiSystem.Update(entity, enemy.position, r.player.position, delta)
		r.applyCommand(enemy, command)
	}
}

// applyCommand 将AI指令落到敌机单元上
func (r *Room) applyCommand(enemy *enemyUnit, command ai.Command) {
	switch command.Kind {
	case ai.CommandMove:
		velocity := command.Direction.Scale(command.Speed * enemy.speedMultiplier)
		enemy.velocity = models.VelocityFromVec2(velocity)

	case ai.CommandFire:
		r.fireEnemyWeapon(enemy, command.Direction)

	case ai.CommandMultiple:
		for _, sub := range command.Commands {
			r.applyCommand(enemy, sub)
		}
	}
}

// fireEnemyWeapon 敌机开火，受射击间隔限制
func (r *Room) fireEnemyWeapon(enemy *enemyUnit, direction mathx.Vec2) {
	if enemy.fireCooldown > 0 {
		return
	}

	projectiles := r.weaponSys.Fire(enemy.weaponID, enemy.position.AsVec2(), direction, models.OwnerEnemy)
	for i := range projectiles {
		projectiles[i].Damage *= enemy.damageMultiplier
		projectiles[i].Shooter = enemy.entity
	}

	r.projectiles = append(r.projectiles, projectiles...)
	enemy.fireCooldown = enemy.fireInterval
}

// updatePlayerFire 玩家机持续开火，射速受升级修正
func (r *Room) updatePlayerFire(delta float64) {
	if r.player.fireCooldown > 0 {
		r.player.fireCooldown -= delta
	}

	if !r.player.firing || !r.player.health.IsAlive() || r.player.fireCooldown > 0 {
		return
	}

	def, ok := r.weaponSys.GetWeapon(r.player.weaponID)
	if !ok || def.FireRate <= 0 {
		return
	}

	projectiles := r.weaponSys.Fire(r.player.weaponID, r.player.position.AsVec2(), r.player.aim, models.OwnerPlayer)

	build := r.upgradeSys.PlayerBuild()
	damageModifier := build.GetStatModifier(upgrade.StatDamage)
	for i := range projectiles {
		projectiles[i].Damage *= damageModifier
		projectiles[i].Shooter = r.player.entity
	}

	r.projectiles = append(r.projectiles, projectiles...)

	fireRate := def.FireRate * build.GetStatModifier(upgrade.StatFireRate)
	r.player.fireCooldown = 1.0 / fireRate
}

// reapEnemies 清理阵亡敌机并结算得分
func (r *Room) reapEnemies() {
	for entity, enemy := range r.enemies {
		if enemy.health.IsAlive() {
			continue
		}

		r.run.Score += uint64(enemy.scoreValue)
		r.enemiesDefeated++
		r.aiSystem.UnregisterEnemy(entity)
		r.allocator.Free(entity)
		delete(r.enemies, entity)
	}
}

// SetPlayerInput 应用玩家输入: 移动方向、瞄准方向与开火状态
func (r *Room) SetPlayerInput(move mathx.Vec2, aim mathx.Vec2, firing bool) {
	r.stateMutex.Lock()
	defer r.stateMutex.Unlock()

	build := r.upgradeSys.PlayerBuild()
	speed := r.player.baseSpeed * build.GetStatModifier(upgrade.StatMoveSpeed)

	velocity := move.Normalize().Scale(speed)
	r.player.velocity = models.VelocityFromVec2(velocity)

	if aim.MagnitudeSq() > 0 {
		r.player.aim = aim.Normalize()
	}
	r.player.firing = firing
}

// applyUpgradeEffects 将升级效果落到玩家机单元
func (r *Room) applyUpgradeEffects(chosen *upgrade.Upgrade) {
	build := r.upgradeSys.PlayerBuild()

	for _, effect := range chosen.Effects {
		switch effect.Kind {
		case upgrade.EffectStatModifier:
			build.ApplyStatModifier(effect.Stat, effect.Modifier)

			switch effect.Stat {
			case upgrade.StatMaxHealth:
				oldMax := r.player.health.Max
				newMax := int(float64(oldMax) * effect.Modifier.Value)
				r.player.health.Max = newMax
				r.player.health.Heal(newMax - oldMax)
			case upgrade.StatArmor:
				armor := build.GetStatModifier(upgrade.StatArmor) - 1.0
				r.player.health.Armor = clamp(armor, 0, 0.9)
			}

		case upgrade.EffectAddWeapon:
			r.player.weaponID = effect.Weapon
		}
	}
}

// collisionEvent 构建碰撞事件消息
func collisionEvent(a, b models.Entity, position mathx.Vec2, damage int) *protocol.CollisionEvent {
	return &protocol.CollisionEvent{
		EntityA:  protocol.ConvertEntity(a),
		EntityB:  protocol.ConvertEntity(b),
		Position: protocol.ConvertVec2(position),
		Damage:   int32(damage),
	}
}
