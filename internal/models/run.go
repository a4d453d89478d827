// run.go

package models

import (
	"time"
)

// RunRecord 单局记录
type RunRecord struct {
	ID              string       `json:"id"`
	PlayerID        int64        `json:"player_id"`
	Seed            int64        `json:"seed"`
	Aircraft        AircraftType `json:"aircraft"`
	FinalZone       int          `json:"final_zone"`
	Score           int64        `json:"score"`
	EnemiesDefeated int          `json:"enemies_defeated"`
	Duration        int          `json:"duration"` // 局时(秒)
	StartedAt       time.Time    `json:"started_at"`
	EndedAt         time.Time    `json:"ended_at"`
}

// RunUpgradeRecord 单局内拾取的升级
type RunUpgradeRecord struct {
	RunID     string    `json:"run_id"`
	UpgradeID int       `json:"upgrade_id"`
	Name      string    `json:"name"`
	Zone      int       `json:"zone"`
	PickedAt  time.Time `json:"picked_at"`
}

// PlayerStatistics 玩家累计统计
type PlayerStatistics struct {
	PlayerID        int64   `json:"player_id"`
	TotalRuns       int     `json:"total_runs"`
	TotalScore      int64   `json:"total_score"`
	AverageScore    float64 `json:"average_score"`
	HighestScore    int64   `json:"highest_score"`
	HighestZone     int     `json:"highest_zone"`
	EnemiesDefeated int     `json:"enemies_defeated"`
	TotalPlaytime   int     `json:"total_playtime"` // 秒
}

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	PlayerID      int64   `json:"player_id"`
	Username      string  `json:"username"`
	SquadronLevel int     `json:"squadron_level"`
	HighestScore  int64   `json:"highest_score"`
	HighestZone   int     `json:"highest_zone"`
	Score         float64 `json:"score"` // 榜单分值
	Rank          int     `json:"rank"`  // 排名
}

// LeaderboardType 排行榜类型
type LeaderboardType string

const (
	// LeaderboardScore 最高分排行榜
	LeaderboardScore LeaderboardType = "score"
	// LeaderboardZone 最深区域排行榜
	LeaderboardZone LeaderboardType = "zone"
)

// 注意：表结构定义已移至 pkg/db/schema.go 统一管理
