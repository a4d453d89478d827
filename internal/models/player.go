// player.go

package models

import (
	"time"
)

// Player 玩家账号模型
type Player struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"` // 不序列化密码
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 中队成长
	SquadronLevel int   `json:"squadron_level"`
	SquadronXP    int64 `json:"squadron_xp"`

	// 累计战绩
	TotalRuns       int   `json:"total_runs"`
	TotalScore      int64 `json:"total_score"`
	HighestScore    int64 `json:"highest_score"`
	HighestZone     int   `json:"highest_zone"`
	EnemiesDefeated int   `json:"enemies_defeated"`
	TotalPlaytime   int   `json:"total_playtime"` // 秒
}

// PlayerSession 玩家会话信息
type PlayerSession struct {
	PlayerID  int64  `json:"player_id"`
	SessionID string `json:"session_id"`
	RoomID    string `json:"room_id,omitempty"`
}

// 注意：表结构定义已移至 pkg/db/schema.go 统一管理
