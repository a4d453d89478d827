// run_store.go

package models

import (
	"fmt"

	"github.com/jacl-coder/StormWing-Server/pkg/db"
)

// SaveRunRecord 保存单局记录及局内升级，并更新玩家累计数据。
// 所有写入在同一事务中完成。
func SaveRunRecord(record *RunRecord, upgrades []RunUpgradeRecord) error {
	tx, err := db.DB.Begin()
	if err != nil {
		return fmt.Errorf("开启事务失败: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs (id, player_id, seed, aircraft, final_zone, score, enemies_defeated, duration, started_at, ended_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, record.ID, record.PlayerID, record.Seed, string(record.Aircraft),
		record.FinalZone, record.Score, record.EnemiesDefeated,
		record.Duration, record.StartedAt, record.EndedAt)
	if err != nil {
		return fmt.Errorf("写入单局记录失败: %w", err)
	}

	for _, u := range upgrades {
		_, err = tx.Exec(`
			INSERT INTO run_upgrades (run_id, upgrade_id, name, zone, picked_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (run_id, upgrade_id) DO NOTHING
		`, record.ID, u.UpgradeID, u.Name, u.Zone, u.PickedAt)
		if err != nil {
			return fmt.Errorf("写入升级记录失败: %w", err)
		}
	}

	_, err = tx.Exec(`
		UPDATE players SET
			total_runs = total_runs + 1,
			total_score = total_score + $2,
			highest_score = GREATEST(highest_score, $2),
			highest_zone = GREATEST(highest_zone, $3),
			enemies_defeated = enemies_defeated + $4,
			total_playtime = total_playtime + $5,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`, record.PlayerID, record.Score, record.FinalZone,
		record.EnemiesDefeated, record.Duration)
	if err != nil {
		return fmt.Errorf("更新玩家累计数据失败: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO player_statistics (player_id, total_runs, total_score, average_score, highest_score, highest_zone, enemies_defeated, total_playtime)
		SELECT p.id, p.total_runs, p.total_score,
			CASE WHEN p.total_runs > 0 THEN p.total_score * 1.0 / p.total_runs ELSE 0 END,
			p.highest_score, p.highest_zone, p.enemies_defeated, p.total_playtime
		FROM players p WHERE p.id = $1
		ON CONFLICT (player_id) DO UPDATE SET
			total_runs = EXCLUDED.total_runs,
			total_score = EXCLUDED.total_score,
			average_score = EXCLUDED.average_score,
			highest_score = EXCLUDED.highest_score,
			highest_zone = EXCLUDED.highest_zone,
			enemies_defeated = EXCLUDED.enemies_defeated,
			total_playtime = EXCLUDED.total_playtime,
			updated_at = CURRENT_TIMESTAMP
	`, record.PlayerID)
	if err != nil {
		return fmt.Errorf("更新玩家统计失败: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("提交事务失败: %w", err)
	}

	return nil
}

// GetPlayerStatistics 查询玩家累计统计
func GetPlayerStatistics(playerID int64) (*PlayerStatistics, error) {
	var stats PlayerStatistics
	err := db.DB.QueryRow(`
		SELECT player_id, total_runs, total_score, average_score,
			highest_score, highest_zone, enemies_defeated, total_playtime
		FROM player_statistics
		WHERE player_id = $1
	`, playerID).Scan(
		&stats.PlayerID, &stats.TotalRuns, &stats.TotalScore, &stats.AverageScore,
		&stats.HighestScore, &stats.HighestZone, &stats.EnemiesDefeated, &stats.TotalPlaytime,
	)
	if err != nil {
		return nil, fmt.Errorf("查询玩家统计失败: %w", err)
	}

	return &stats, nil
}

// GetRecentRuns 查询玩家最近的对局记录
func GetRecentRuns(playerID int64, limit int) ([]RunRecord, error) {
	rows, err := db.DB.Query(`
		SELECT id, player_id, seed, aircraft, final_zone, score, enemies_defeated, duration, started_at, ended_at
		FROM runs
		WHERE player_id = $1
		ORDER BY ended_at DESC
		LIMIT $2
	`, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("查询对局记录失败: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var record RunRecord
		var aircraft string
		err := rows.Scan(
			&record.ID, &record.PlayerID, &record.Seed, &aircraft,
			&record.FinalZone, &record.Score, &record.EnemiesDefeated,
			&record.Duration, &record.StartedAt, &record.EndedAt,
		)
		if err != nil {
			continue
		}
		record.Aircraft = AircraftType(aircraft)
		records = append(records, record)
	}

	return records, nil
}
