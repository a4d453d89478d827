package game

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jacl-coder/StormWing-Server/config"
	"github.com/jacl-coder/StormWing-Server/internal/ai"
	"github.com/jacl-coder/StormWing-Server/internal/collision"
	"github.com/jacl-coder/StormWing-Server/internal/mathx"
	"github.com/jacl-coder/StormWing-Server/internal/models"
	"github.com/jacl-coder/StormWing-Server/internal/procgen"
	"github.com/jacl-coder/StormWing-Server/internal/state"
	"github.com/jacl-coder/StormWing-Server/internal/upgrade"
	"github.com/jacl-coder/StormWing-Server/internal/weapon"
	"github.com/jacl-coder/StormWing-Server/pkg/db"
)

// 战场边界
const (
	worldHalfWidth  = 500.0
	worldHalfHeight = 300.0
)

// zoneOrder 区域类型循环顺序
var zoneOrder = []procgen.ZoneType{
	procgen.ZoneSky,
	procgen.ZoneClouds,
	procgen.ZoneOcean,
	procgen.ZoneMountains,
	procgen.ZoneDesert,
}

// Room 对局房间。一个房间承载一名玩家的一局模拟。
type Room struct {
	ID        string
	PlayerID  int64
	Status    models.RoomStatus
	CreatedAt time.Time
	StartedAt time.Time
	EndedAt   time.Time

	cfg *config.Config

	// 模拟系统
	allocator  *models.EntityAllocator
	colliders  *collision.System
	aiSystem   *ai.System
	weaponSys  *weapon.System
	upgradeSys *upgrade.System
	generator  *procgen.Generator

	// 单局状态
	run             *state.RunState
	zone            *procgen.Zone
	waveIndex       int
	spawnTimer      float64
	player          *playerUnit
	enemies         map[models.Entity]*enemyUnit
	projectiles     []weapon.Projectile
	enemiesDefeated int
	pendingOffer    []upgrade.Upgrade
	pickedUpgrades  []models.RunUpgradeRecord
	stateMutex      sync.Mutex

	// 连接管理
	players     map[string]*PlayerState
	playerMutex sync.RWMutex

	frameID       int64
	lastFrameTime time.Time

	// 控制通道
	shutdown     chan struct{}
	isRunning    bool
	lastActivity time.Time
}

// PlayerState 玩家连接状态
type PlayerState struct {
	Connection *PlayerConnection
	Ready      bool
	LastInput  time.Time
}

// playerUnit 玩家机模拟单元
type playerUnit struct {
	entity       models.Entity
	position     models.Position
	velocity     models.Velocity
	health       models.Health
	collider     models.Collider
	aircraft     models.AircraftType
	weaponID     weapon.WeaponID
	baseSpeed    float64
	fireCooldown float64
	firing       bool
	aim          mathx.Vec2
}

// enemyUnit 敌机模拟单元
type enemyUnit struct {
	entity           models.Entity
	position         models.Position
	velocity         models.Velocity
	health           models.Health
	collider         models.Collider
	enemyType        models.EnemyType
	elite            bool
	contactDamage    float64
	scoreValue       int64
	weaponID         weapon.WeaponID
	fireInterval     float64
	fireCooldown     float64
	damageMultiplier float64
	speedMultiplier  float64
}

// NewRoom 创建对局房间并初始化模拟系统
func NewRoom(cfg *config.Config, playerID int64, seed int64, aircraft models.AircraftType) *Room {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	now := time.Now()
	room := &Room{
		ID:        uuid.New().String(),
		PlayerID:  playerID,
		Status:    models.RoomWaiting,
		CreatedAt: now,
		cfg:       cfg,

		allocator:  models.NewEntityAllocator(),
		colliders:  collision.NewSystem(cfg.Game.CollisionCell),
		aiSystem:   ai.NewSystem(seed + 1),
		weaponSys:  weapon.NewSystem(),
		upgradeSys: upgrade.NewSystem(seed + 2),
		generator:  procgen.NewGenerator(seed),

		run:     state.NewRunState(uint64(seed), aircraft),
		enemies: make(map[models.Entity]*enemyUnit),
		players: make(map[string]*PlayerState),

		shutdown:     make(chan struct{}),
		lastActivity: now,
	}

	registerDefaultWeapons(room.weaponSys)
	room.player = newPlayerUnit(room.allocator, aircraft)

	// 首个区域类型来自配置，后续按固定顺序循环
	room.run.Zone = 1
	room.zone = room.generator.GenerateZone(startingZoneType(cfg.Game.StartingZone), 1)
	room.spawnTimer = room.zone.Waves[0].SpawnDelay

	return room
}

// startingZoneType 解析配置中的初始区域类型
func startingZoneType(name string) procgen.ZoneType {
	for _, zoneType := range zoneOrder {
		if string(zoneType) == name {
			return zoneType
		}
	}
	return procgen.ZoneSky
}

// zoneTypeFor 按区域编号取循环顺序中的区域类型
func zoneTypeFor(zoneNumber int) procgen.ZoneType {
	return zoneOrder[(zoneNumber-1)%len(zoneOrder)]
}

// Start 启动房间
func (r *Room) Start() error {
	if r.isRunning {
		return fmt.Errorf("房间已经在运行")
	}

	log.Printf("房间 %s 启动", r.ID)
	r.isRunning = true
	r.lastActivity = time.Now()

	// 游戏循环
	go r.gameLoop()

	return nil
}

// Stop 停止房间
func (r *Room) Stop() {
	if !r.isRunning {
		return
	}

	close(r.shutdown)
	r.isRunning = false
	r.Status = models.RoomEnded
	r.EndedAt = time.Now()

	log.Printf("房间 %s 已停止", r.ID)
}

// AddPlayer 玩家连接加入房间
func (r *Room) AddPlayer(conn *PlayerConnection) error {
	r.playerMutex.Lock()
	defer r.playerMutex.Unlock()

	if r.Status == models.RoomEnded {
		return fmt.Errorf("对局已经结束，无法加入")
	}

	r.players[conn.ID] = &PlayerState{
		Connection: conn,
		Ready:      false,
		LastInput:  time.Now(),
	}

	r.lastActivity = time.Now()
	log.Printf("玩家 %d 加入房间 %s", conn.PlayerID, r.ID)

	return nil
}

// RemovePlayer 从房间移除玩家连接
func (r *Room) RemovePlayer(connID string) {
	r.playerMutex.Lock()
	defer r.playerMutex.Unlock()

	if _, exists := r.players[connID]; !exists {
		return
	}

	delete(r.players, connID)
	r.lastActivity = time.Now()

	log.Printf("玩家已离开房间 %s", r.ID)
}

// SetPlayerReady 设置玩家准备状态
func (r *Room) SetPlayerReady(connID string, ready bool) {
	r.playerMutex.Lock()
	defer r.playerMutex.Unlock()

	if player, exists := r.players[connID]; exists {
		player.Ready = ready
	}
}

// GetPlayerCount 获取连接数量
func (r *Room) GetPlayerCount() int {
	r.playerMutex.RLock()
	defer r.playerMutex.RUnlock()
	return len(r.players)
}

// IsEmpty 检查房间是否为空
func (r *Room) IsEmpty() bool {
	return r.GetPlayerCount() == 0
}

// ShouldCleanup 检查房间是否应该被清理
func (r *Room) ShouldCleanup() bool {
	// 如果房间为空且超过5分钟没有活动，则可以清理
	if r.IsEmpty() {
		return time.Since(r.lastActivity) > 5*time.Minute
	}

	// 如果对局已结束且超过2分钟，则可以清理
	if r.Status == models.RoomEnded {
		return time.Since(r.EndedAt) > 2*time.Minute
	}

	return false
}

// gameLoop 游戏主循环
func (r *Room) gameLoop() {
	tickRate := r.cfg.Game.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if r.Status == models.RoomPlaying {
				r.update()
			} else if r.Status == models.RoomWaiting {
				r.checkGameStart()
			}
		case <-r.shutdown:
			return
		}
	}
}

// checkGameStart 玩家准备就绪后开局
func (r *Room) checkGameStart() {
	r.playerMutex.RLock()
	ready := len(r.players) > 0
	for _, player := range r.players {
		if !player.Ready {
			ready = false
			break
		}
	}
	r.playerMutex.RUnlock()

	if ready {
		r.startGame()
	}
}

// startGame 开始对局
func (r *Room) startGame() {
	r.Status = models.RoomPlaying
	r.StartedAt = time.Now()
	r.lastFrameTime = time.Now()
	r.frameID = 0

	log.Printf("房间 %s 对局开始，区域 %d (%s)", r.ID, r.zone.Number, r.zone.Type)

	r.broadcastZoneInfo()
}

// update 推进一帧模拟。固定顺序:
// 位置积分，重建碰撞网格，投射物老化与命中，AI决策，
// 武器开火，清理阵亡敌机，波次推进，结束判定，广播帧。
func (r *Room) update() {
	r.stateMutex.Lock()
	defer r.stateMutex.Unlock()

	now := time.Now()
	delta := now.Sub(r.lastFrameTime).Seconds()
	r.lastFrameTime = now
	r.frameID++

	r.run.TimeElapsed += delta

	r.integrate(delta)
	r.rebuildCollisionGrid()
	collisions := r.resolveProjectiles(delta)
	collisions = append(collisions, r.resolveContactDamage()...)
	r.updateAI(delta)
	r.updatePlayerFire(delta)
	r.reapEnemies()
	r.advanceWaves(delta)
	r.checkGameEnd()
	r.broadcastFrame(collisions)
}

// integrate 按速度推进所有单位位置
func (r *Room) integrate(delta float64) {
	if r.player.health.IsAlive() {
		pos := r.player.position.AsVec2().Add(r.player.velocity.AsVec2().Scale(delta))
		pos.X = clamp(pos.X, -worldHalfWidth, worldHalfWidth)
		pos.Y = clamp(pos.Y, -worldHalfHeight, worldHalfHeight)
		r.player.position = models.PositionFromVec2(pos)
	}

	for _, enemy := range r.enemies {
		pos := enemy.position.AsVec2().Add(enemy.velocity.AsVec2().Scale(delta))
		enemy.position = models.PositionFromVec2(pos)
	}
}

// advanceWaves 波次推进。场上清空后等待刷新间隔再放下一波，
// 波次耗尽则结算区域并进入下一区域。
func (r *Room) advanceWaves(delta float64) {
	if len(r.enemies) > 0 {
		return
	}

	if r.waveIndex < len(r.zone.Waves) {
		r.spawnTimer -= delta
		if r.spawnTimer <= 0 {
			r.spawnWave(&r.zone.Waves[r.waveIndex])
			r.waveIndex++
			if r.waveIndex < len(r.zone.Waves) {
				r.spawnTimer = r.zone.Waves[r.waveIndex].SpawnDelay
			}
		}
		return
	}

	r.completeZone()
}

// completeZone 区域通关: 生成升级候选并切换到下一区域
func (r *Room) completeZone() {
	log.Printf("房间 %s 区域 %d 通关", r.ID, r.run.Zone)

	choices := r.upgradeSys.GenerateUpgradeChoices(r.cfg.Game.UpgradeChoices, r.run.Zone)
	r.pendingOffer = choices
	r.broadcastUpgradeOffer(r.run.Zone, choices)

	r.run.Zone++
	r.zone = r.generator.GenerateZone(zoneTypeFor(r.run.Zone), r.run.Zone)
	r.waveIndex = 0
	r.spawnTimer = r.zone.Waves[0].SpawnDelay

	r.broadcastZoneInfo()
}

// ChooseUpgrade 应用玩家选择的升级候选
func (r *Room) ChooseUpgrade(upgradeID int) error {
	r.stateMutex.Lock()
	defer r.stateMutex.Unlock()

	var chosen *upgrade.Upgrade
	for i := range r.pendingOffer {
		if int(r.pendingOffer[i].ID) == upgradeID {
			chosen = &r.pendingOffer[i]
			break
		}
	}
	if chosen == nil {
		return fmt.Errorf("升级 %d 不在候选列表中", upgradeID)
	}

	r.upgradeSys.ApplyUpgrade(chosen.ID)
	r.applyUpgradeEffects(chosen)
	r.pendingOffer = nil

	r.pickedUpgrades = append(r.pickedUpgrades, models.RunUpgradeRecord{
		RunID:     r.ID,
		UpgradeID: upgradeID,
		Name:      chosen.Name,
		Zone:      r.run.Zone,
		PickedAt:  time.Now(),
	})

	log.Printf("房间 %s 玩家选择升级: %s", r.ID, chosen.Name)
	return nil
}

// checkGameEnd 玩家机被击落则对局结束
func (r *Room) checkGameEnd() {
	if r.player.health.IsAlive() {
		return
	}
	r.endGame()
}

// endGame 结束对局并持久化结果
func (r *Room) endGame() {
	if r.Status == models.RoomEnded {
		return
	}

	r.Status = models.RoomEnded
	r.EndedAt = time.Now()

	log.Printf("房间 %s 对局结束，得分 %d，区域 %d", r.ID, r.run.Score, r.run.Zone)

	record := &models.RunRecord{
		ID:              r.ID,
		PlayerID:        r.PlayerID,
		Seed:            int64(r.run.Seed),
		Aircraft:        r.run.Aircraft,
		FinalZone:       r.run.Zone,
		Score:           int64(r.run.Score),
		EnemiesDefeated: r.enemiesDefeated,
		Duration:        int(r.run.TimeElapsed),
		StartedAt:       r.StartedAt,
		EndedAt:         r.EndedAt,
	}

	picked := make([]models.RunUpgradeRecord, len(r.pickedUpgrades))
	copy(picked, r.pickedUpgrades)

	// 持久化与榜单更新不阻塞游戏循环
	if db.DB != nil {
		go persistRunResult(record, picked)
	}

	r.broadcastRunResult(record)
}

// persistRunResult 写入单局记录并刷新排行榜分值
func persistRunResult(record *models.RunRecord, picked []models.RunUpgradeRecord) {
	if err := models.SaveRunRecord(record, picked); err != nil {
		log.Printf("保存单局记录失败: %v", err)
		return
	}

	if db.RedisClient == nil {
		return
	}

	leaderboard := models.NewRedisLeaderboard()
	if err := leaderboard.UpdatePlayerScore(record.PlayerID, models.LeaderboardScore, float64(record.Score)); err != nil {
		log.Printf("更新得分排行榜失败: %v", err)
	}
	if err := leaderboard.UpdatePlayerScore(record.PlayerID, models.LeaderboardZone, float64(record.FinalZone)); err != nil {
		log.Printf("更新区域排行榜失败: %v", err)
	}
}

// clamp 区间截断
func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
