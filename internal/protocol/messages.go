// messages.go

// Package protocol 定义服务器与客户端之间的JSON协议消息。
package protocol

// Vector2D 二维向量
type Vector2D struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// EntityRef 实体引用
type EntityRef struct {
	Index      uint32 `json:"index"`
	Generation uint32 `json:"generation"`
}

// PlayerState 玩家机状态
type PlayerState struct {
	Entity    *EntityRef `json:"entity"`
	Aircraft  string     `json:"aircraft"`
	Position  *Vector2D  `json:"position"`
	Velocity  *Vector2D  `json:"velocity"`
	Health    int32      `json:"health"`
	MaxHealth int32      `json:"max_health"`
}

// EnemyState 敌机状态
type EnemyState struct {
	Entity    *EntityRef `json:"entity"`
	EnemyType string     `json:"enemy_type"`
	Position  *Vector2D  `json:"position"`
	Velocity  *Vector2D  `json:"velocity"`
	Health    int32      `json:"health"`
	MaxHealth int32      `json:"max_health"`
	Elite     bool       `json:"elite,omitempty"`
}

// ProjectileState 投射物状态
type ProjectileState struct {
	Position *Vector2D `json:"position"`
	Velocity *Vector2D `json:"velocity"`
	Kind     string    `json:"kind"`
	Owner    string    `json:"owner"`
	Damage   float32   `json:"damage"`
	Lifetime float32   `json:"lifetime"`
}

// CollisionEvent 碰撞事件
type CollisionEvent struct {
	EntityA  *EntityRef `json:"entity_a"`
	EntityB  *EntityRef `json:"entity_b"`
	Position *Vector2D  `json:"position"`
	Damage   int32      `json:"damage"`
}

// GameFrame 游戏帧
type GameFrame struct {
	FrameID     int64              `json:"frame_id"`
	Timestamp   int64              `json:"timestamp"`
	Zone        int32              `json:"zone"`
	Wave        int32              `json:"wave"`
	Score       int64              `json:"score"`
	Player      *PlayerState       `json:"player,omitempty"`
	Enemies     []*EnemyState      `json:"enemies,omitempty"`
	Projectiles []*ProjectileState `json:"projectiles,omitempty"`
	Collisions  []*CollisionEvent  `json:"collisions,omitempty"`
}

// ZoneInfo 区域信息
type ZoneInfo struct {
	Number     int32   `json:"number"`
	Kind       string  `json:"kind"`
	Difficulty float32 `json:"difficulty"`
	WaveCount  int32   `json:"wave_count"`
}

// WaveInfo 波次信息
type WaveInfo struct {
	EnemyCount int32    `json:"enemy_count"`
	EnemyTypes []string `json:"enemy_types"`
	HasElite   bool     `json:"has_elite"`
	SpawnDelay float32  `json:"spawn_delay"`
}

// EffectInfo 升级效果信息
type EffectInfo struct {
	Kind  string  `json:"kind"`
	Stat  string  `json:"stat,omitempty"`
	Op    string  `json:"op,omitempty"`
	Value float32 `json:"value,omitempty"`
}

// UpgradeInfo 升级信息
type UpgradeInfo struct {
	ID          int32         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Rarity      string        `json:"rarity"`
	Category    string        `json:"category"`
	Effects     []*EffectInfo `json:"effects"`
}

// UpgradeOffer 区域通关后的升级候选
type UpgradeOffer struct {
	Zone    int32          `json:"zone"`
	Choices []*UpgradeInfo `json:"choices"`
}

// SynergyInfo 组合加成信息
type SynergyInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RunResult 单局结算
type RunResult struct {
	RunID           string   `json:"run_id"`
	Score           int64    `json:"score"`
	FinalZone       int32    `json:"final_zone"`
	EnemiesDefeated int32    `json:"enemies_defeated"`
	Duration        int32    `json:"duration"`
	Upgrades        []string `json:"upgrades,omitempty"`
}

// SuccessResponse 成功响应
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse 错误响应
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ErrorCode string `json:"error_code"`
}

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	PlayerID      int64   `json:"player_id"`
	Username      string  `json:"username"`
	SquadronLevel int32   `json:"squadron_level"`
	HighestScore  int64   `json:"highest_score"`
	HighestZone   int32   `json:"highest_zone"`
	Score         float32 `json:"score"`
	Rank          int32   `json:"rank"`
}

// LeaderboardResponse 排行榜响应
type LeaderboardResponse struct {
	Success         bool                `json:"success"`
	Message         string              `json:"message"`
	Data            []*LeaderboardEntry `json:"data"`
	LeaderboardType string              `json:"leaderboard_type"`
}

// PlayerStats 玩家统计
type PlayerStats struct {
	PlayerID        int64   `json:"player_id"`
	TotalRuns       int32   `json:"total_runs"`
	TotalScore      int64   `json:"total_score"`
	AverageScore    float32 `json:"average_score"`
	HighestScore    int64   `json:"highest_score"`
	HighestZone     int32   `json:"highest_zone"`
	EnemiesDefeated int32   `json:"enemies_defeated"`
	PlayTime        int32   `json:"play_time"`
}

// PlayerStatsResponse 玩家统计响应
type PlayerStatsResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    *PlayerStats `json:"data"`
}
