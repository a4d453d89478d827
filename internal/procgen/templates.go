// templates.go

package procgen

import (
	"math"

	"github.com/jacl-coder/StormWing-Server/internal/mathx"
	"github.com/jacl-coder/StormWing-Server/internal/models"
)

// FormationKind 出生编队类型
type FormationKind string

const (
	// FormationV V字编队
	FormationV FormationKind = "v"
	// FormationLine 横列编队
	FormationLine FormationKind = "line"
	// FormationCircle 环形编队
	FormationCircle FormationKind = "circle"
	// FormationDiamond 菱形编队
	FormationDiamond FormationKind = "diamond"
	// FormationCustom 显式坐标编队
	FormationCustom FormationKind = "custom"
)

// Formation 出生编队描述
type Formation struct {
	Kind    FormationKind `json:"kind"`
	Spacing float64       `json:"spacing,omitempty"` // V/Line: 间距
	Angle   float64       `json:"angle,omitempty"`   // Line: 倾角(度)
	Radius  float64       `json:"radius,omitempty"`  // Circle: 半径
	Points  []mathx.Vec2  `json:"points,omitempty"`  // Custom: 显式坐标
}

// WaveTemplate 可复用的敌机波次模板
type WaveTemplate struct {
	Name          string             `json:"name"`
	EnemyTypes    []models.EnemyType `json:"enemy_types"`
	Formation     Formation          `json:"formation"`
	BaseCount     int                `json:"base_count"`
	MinDifficulty float64            `json:"min_difficulty"`
	MaxDifficulty float64            `json:"max_difficulty"`
	ZoneTypes     []ZoneType         `json:"zone_types"`
}

// matches 模板的难度带是否覆盖给定难度且支持给定区域类型
func (t *WaveTemplate) matches(zoneType ZoneType, difficulty float64) bool {
	if t.MinDifficulty > difficulty || t.MaxDifficulty < difficulty {
		return false
	}
	for _, zt := range t.ZoneTypes {
		if zt == zoneType {
			return true
		}
	}
	return false
}

// defaultWaveTemplates 构建固定的波次模板库，生成器构造时调用一次
func defaultWaveTemplates() []WaveTemplate {
	return []WaveTemplate{
		{
			Name:          "Fighter Squadron",
			EnemyTypes:    []models.EnemyType{models.EnemyFighter},
			Formation:     Formation{Kind: FormationV, Spacing: 50.0},
			BaseCount:     5,
			MinDifficulty: 0.0,
			MaxDifficulty: 1.0,
			ZoneTypes:     []ZoneType{ZoneSky, ZoneClouds},
		},
		{
			Name:          "Bomber Wing",
			EnemyTypes:    []models.EnemyType{models.EnemyBomber},
			Formation:     Formation{Kind: FormationLine, Spacing: 80.0, Angle: 0},
			BaseCount:     3,
			MinDifficulty: 0.3,
			MaxDifficulty: 1.0,
			ZoneTypes:     []ZoneType{ZoneSky, ZoneOcean},
		},
		{
			Name:          "Mixed Assault",
			EnemyTypes:    []models.EnemyType{models.EnemyFighter, models.EnemyBomber},
			Formation:     Formation{Kind: FormationDiamond},
			BaseCount:     7,
			MinDifficulty: 0.5,
			MaxDifficulty: 1.0,
			ZoneTypes:     []ZoneType{ZoneSky, ZoneClouds, ZoneMountains},
		},
		{
			Name:          "Ace Patrol",
			EnemyTypes:    []models.EnemyType{models.EnemyAce},
			Formation:     Formation{Kind: FormationCircle, Radius: 150.0},
			BaseCount:     2,
			MinDifficulty: 0.7,
			MaxDifficulty: 1.0,
			ZoneTypes:     []ZoneType{ZoneSky, ZoneClouds, ZoneMountains},
		},
		{
			Name:          "Kamikaze Wave",
			EnemyTypes:    []models.EnemyType{models.EnemyKamikaze},
			Formation:     Formation{Kind: FormationV, Spacing: 30.0},
			BaseCount:     8,
			MinDifficulty: 0.4,
			MaxDifficulty: 1.0,
			ZoneTypes:     []ZoneType{ZoneOcean, ZoneDesert},
		},
	}
}

// FormationPositions 由编队描述和数量计算出生坐标。
// 纯函数，同样输入必须产生同样的布局，种子复现测试依赖这一点。
func FormationPositions(formation Formation, count int) []mathx.Vec2 {
	positions := make([]mathx.Vec2, 0, count)

	switch formation.Kind {
	case FormationV:
		for i := 0; i < count; i++ {
			row := i / 2
			var col int
			if i%2 == 0 {
				col = i / 2
			} else {
				col = -(i / 2) - 1
			}
			positions = append(positions, mathx.NewVec2(
				float64(col)*formation.Spacing,
				-float64(row)*formation.Spacing-100.0,
			))
		}

	case FormationLine:
		angleRad := formation.Angle * math.Pi / 180.0
		dir := mathx.NewVec2(math.Cos(angleRad), math.Sin(angleRad))
		for i := 0; i < count; i++ {
			offset := (float64(i) - float64(count)/2.0) * formation.Spacing
			positions = append(positions, dir.Scale(offset).Add(mathx.NewVec2(0, -100.0)))
		}

	case FormationCircle:
		angleStep := 2.0 * math.Pi / float64(count)
		for i := 0; i < count; i++ {
			angle := angleStep * float64(i)
			positions = append(positions, mathx.NewVec2(
				math.Cos(angle)*formation.Radius,
				math.Sin(angle)*formation.Radius-100.0,
			))
		}

	case FormationDiamond:
		half := count / 2
		for i := 0; i < count; i++ {
			var x float64
			if i < half {
				x = float64(i) * 40.0
			} else {
				x = float64(count-i-1) * 40.0
			}
			x -= float64(half) * 20.0
			y := -float64(i)*40.0 - 100.0
			positions = append(positions, mathx.NewVec2(x, y))
		}

	case FormationCustom:
		positions = append(positions, formation.Points...)
	}

	return positions
}
