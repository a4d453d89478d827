package protocol

import (
	"github.com/jacl-coder/StormWing-Server/internal/mathx"
	"github.com/jacl-coder/StormWing-Server/internal/models"
	"github.com/jacl-coder/StormWing-Server/internal/procgen"
	"github.com/jacl-coder/StormWing-Server/internal/upgrade"
	"github.com/jacl-coder/StormWing-Server/internal/weapon"
)

// ConvertVec2 将模拟向量转换为协议向量
func ConvertVec2(v mathx.Vec2) *Vector2D {
	return &Vector2D{X: float32(v.X), Y: float32(v.Y)}
}

// ConvertEntity 将实体句柄转换为协议引用
func ConvertEntity(e models.Entity) *EntityRef {
	return &EntityRef{Index: e.Index, Generation: e.Generation}
}

// ConvertZoneToInfo 将生成的区域转换为协议消息
func ConvertZoneToInfo(zone *procgen.Zone) *ZoneInfo {
	return &ZoneInfo{
		Number:     int32(zone.Number),
		Kind:       string(zone.Type),
		Difficulty: float32(procgen.CalculateDifficulty(zone.Number)),
		WaveCount:  int32(len(zone.Waves)),
	}
}

// ConvertWaveToInfo 将波次转换为协议消息
func ConvertWaveToInfo(wave *procgen.Wave) *WaveInfo {
	enemyTypes := make([]string, len(wave.EnemyComposition))
	for i, enemyType := range wave.EnemyComposition {
		enemyTypes[i] = string(enemyType)
	}

	return &WaveInfo{
		EnemyCount: int32(len(wave.EnemyComposition)),
		EnemyTypes: enemyTypes,
		HasElite:   wave.HasElite,
		SpawnDelay: float32(wave.SpawnDelay),
	}
}

// ConvertUpgradeToInfo 将升级定义转换为协议消息
func ConvertUpgradeToInfo(u *upgrade.Upgrade) *UpgradeInfo {
	effects := make([]*EffectInfo, len(u.Effects))
	for i, effect := range u.Effects {
		effects[i] = convertEffect(effect)
	}

	return &UpgradeInfo{
		ID:          int32(u.ID),
		Name:        u.Name,
		Description: u.Description,
		Rarity:      string(u.Rarity),
		Category:    string(u.Category),
		Effects:     effects,
	}
}

// convertEffect 将单个升级效果转换为协议消息
func convertEffect(effect upgrade.Effect) *EffectInfo {
	info := &EffectInfo{Kind: string(effect.Kind)}

	switch effect.Kind {
	case upgrade.EffectStatModifier:
		info.Stat = string(effect.Stat)
		info.Op = string(effect.Modifier.Op)
		info.Value = float32(effect.Modifier.Value)
	case upgrade.EffectAddWeapon:
		info.Value = float32(effect.Weapon)
	case upgrade.EffectUnlockAbility:
		info.Value = float32(effect.Ability)
	case upgrade.EffectPassive:
		info.Stat = string(effect.Passive)
		info.Value = float32(effect.PassiveValue)
	}

	return info
}

// CreateUpgradeOffer 构建区域通关升级候选消息
func CreateUpgradeOffer(zone int, choices []upgrade.Upgrade) *UpgradeOffer {
	infos := make([]*UpgradeInfo, len(choices))
	for i := range choices {
		infos[i] = ConvertUpgradeToInfo(&choices[i])
	}

	return &UpgradeOffer{
		Zone:    int32(zone),
		Choices: infos,
	}
}

// ConvertProjectileToState 将投射物转换为协议消息
func ConvertProjectileToState(p *weapon.Projectile) *ProjectileState {
	return &ProjectileState{
		Position: ConvertVec2(p.Position),
		Velocity: ConvertVec2(p.Velocity),
		Kind:     string(p.Kind),
		Owner:    string(p.Owner),
		Damage:   float32(p.Damage),
		Lifetime: float32(p.Lifetime),
	}
}

// ConvertLeaderboardEntryToMessage 将排行榜条目转换为协议消息
func ConvertLeaderboardEntryToMessage(entry *models.LeaderboardEntry) *LeaderboardEntry {
	return &LeaderboardEntry{
		PlayerID:      entry.PlayerID,
		Username:      entry.Username,
		SquadronLevel: int32(entry.SquadronLevel),
		HighestScore:  entry.HighestScore,
		HighestZone:   int32(entry.HighestZone),
		Score:         float32(entry.Score),
		Rank:          int32(entry.Rank),
	}
}

// ConvertPlayerStatsToMessage 将玩家统计转换为协议消息
func ConvertPlayerStatsToMessage(stats *models.PlayerStatistics) *PlayerStats {
	return &PlayerStats{
		PlayerID:        stats.PlayerID,
		TotalRuns:       int32(stats.TotalRuns),
		TotalScore:      stats.TotalScore,
		AverageScore:    float32(stats.AverageScore),
		HighestScore:    stats.HighestScore,
		HighestZone:     int32(stats.HighestZone),
		EnemiesDefeated: int32(stats.EnemiesDefeated),
		PlayTime:        int32(stats.TotalPlaytime),
	}
}

// CreateSuccessResponse 创建成功响应
func CreateSuccessResponse(message string) *SuccessResponse {
	return &SuccessResponse{
		Success: true,
		Message: message,
	}
}

// CreateErrorResponse 创建错误响应
func CreateErrorResponse(message, errorCode string) *ErrorResponse {
	return &ErrorResponse{
		Success:   false,
		Message:   message,
		ErrorCode: errorCode,
	}
}

// CreateLeaderboardResponse 创建排行榜响应
func CreateLeaderboardResponse(entries []models.LeaderboardEntry, leaderboardType string) *LeaderboardResponse {
	messages := make([]*LeaderboardEntry, len(entries))
	for i := range entries {
		messages[i] = ConvertLeaderboardEntryToMessage(&entries[i])
	}

	return &LeaderboardResponse{
		Success:         true,
		Message:         "查询成功",
		Data:            messages,
		LeaderboardType: leaderboardType,
	}
}

// CreatePlayerStatsResponse 创建玩家统计响应
func CreatePlayerStatsResponse(stats *models.PlayerStatistics) *PlayerStatsResponse {
	return &PlayerStatsResponse{
		Success: true,
		Message: "查询成功",
		Data:    ConvertPlayerStatsToMessage(stats),
	}
}
