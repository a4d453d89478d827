// generator.go

package procgen

import (
	"math/rand"

	"github.com/jacl-coder/StormWing-Server/internal/mathx"
	"github.com/jacl-coder/StormWing-Server/internal/models"
)

// baseDifficulty 难度曲线基准值
const baseDifficulty = 0.1

// Generator 过程生成器。由64位种子构造独立随机流，
// 相同种子按相同调用序列产生完全一致的生成结果。
type Generator struct {
	rng       *rand.Rand
	templates []WaveTemplate
}

// NewGenerator 创建生成器并装载波次模板库
func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng:       rand.New(rand.NewSource(seed)),
		templates: defaultWaveTemplates(),
	}
}

// TemplateCount 模板库大小
func (g *Generator) TemplateCount() int {
	return len(g.templates)
}

// CalculateDifficulty 难度曲线: base + 0.15*zone，上限1.0
func CalculateDifficulty(zoneNumber int) float64 {
	difficulty := baseDifficulty + float64(zoneNumber)*0.15
	if difficulty > 1.0 {
		difficulty = 1.0
	}
	return difficulty
}

// GenerateZone 生成一个完整区域: 地形、波次序列、灾害与掉落物。
// 区域生成后只读，每次区域切换时调用一次。
func (g *Generator) GenerateZone(zoneType ZoneType, zoneNumber int) *Zone {
	difficulty := CalculateDifficulty(zoneNumber)
	zone := NewZone(zoneType, zoneNumber)

	zone.Terrain = generateTerrain(zoneType)

	waveCount := int(5.0 + difficulty*5.0)
	for i := 0; i < waveCount; i++ {
		waveDifficulty := difficulty * (1.0 + float64(i)*0.1)
		zone.Waves = append(zone.Waves, g.GenerateWave(zoneType, waveDifficulty))
	}

	zone.Hazards = g.generateHazards(zoneType, difficulty)
	zone.Collectibles = g.generateCollectibles(difficulty)

	return zone
}

// GenerateWave 生成一波敌机。先按难度带和区域类型筛选模板，
// 在合格模板中等概率选取；没有合格模板时回退到固定的默认波次。
func (g *Generator) GenerateWave(zoneType ZoneType, difficulty float64) Wave {
	var validIndices []int
	for i := range g.templates {
		if g.templates[i].matches(zoneType, difficulty) {
			validIndices = append(validIndices, i)
		}
	}

	if len(validIndices) == 0 {
		return defaultWave(difficulty)
	}

	templateIdx := validIndices[g.rng.Intn(len(validIndices))]
	return g.instantiateWave(&g.templates[templateIdx], difficulty)
}

// instantiateWave 按模板实例化波次，敌机数量与难度联动，
// 每个敌机槽位独立从模板类型列表中等概率抽取
func (g *Generator) instantiateWave(template *WaveTemplate, difficulty float64) Wave {
	enemyCount := int(float64(template.BaseCount) * (1.0 + difficulty*0.3))

	composition := make([]models.EnemyType, 0, enemyCount)
	for i := 0; i < enemyCount; i++ {
		composition = append(composition, template.EnemyTypes[g.rng.Intn(len(template.EnemyTypes))])
	}

	return Wave{
		EnemyComposition: composition,
		SpawnPositions:   FormationPositions(template.Formation, enemyCount),
		HealthMultiplier: 1.0 + difficulty*0.2,
		DamageMultiplier: 1.0 + difficulty*0.15,
		SpeedMultiplier:  1.0 + difficulty*0.1,
		SpawnDelay:       0.5,
		HasElite:         g.rng.Float64() < difficulty*0.3,
	}
}

// defaultWave 模板筛选落空时的保底波次: 3架战斗机一字排开，保证永不为空
func defaultWave(difficulty float64) Wave {
	return Wave{
		EnemyComposition: []models.EnemyType{
			models.EnemyFighter, models.EnemyFighter, models.EnemyFighter,
		},
		SpawnPositions: []mathx.Vec2{
			mathx.NewVec2(-50.0, -100.0),
			mathx.NewVec2(0.0, -100.0),
			mathx.NewVec2(50.0, -100.0),
		},
		HealthMultiplier: 1.0 + difficulty*0.2,
		DamageMultiplier: 1.0 + difficulty*0.15,
		SpeedMultiplier:  1.0 + difficulty*0.1,
		SpawnDelay:       0.5,
		HasElite:         false,
	}
}

// generateHazards 生成环境灾害，数量随难度增长，类型由区域类型决定
func (g *Generator) generateHazards(zoneType ZoneType, difficulty float64) []Hazard {
	hazardCount := int(difficulty * 5.0)
	hazards := make([]Hazard, 0, hazardCount)

	for i := 0; i < hazardCount; i++ {
		var hazardType HazardType
		switch zoneType {
		case ZoneOcean:
			hazardType = HazardWaterspout
		case ZoneMountains:
			hazardType = HazardWindShear
		case ZoneDesert:
			hazardType = HazardSandstorm
		default:
			hazardType = HazardLightning
		}

		hazards = append(hazards, Hazard{
			Type: hazardType,
			Position: mathx.NewVec2(
				g.rng.Float64()*1000.0-500.0,
				g.rng.Float64()*600.0-300.0,
			),
			Radius:          50.0,
			DamagePerSecond: 10.0 * (1.0 + difficulty),
		})
	}

	return hazards
}

// generateCollectibles 生成掉落物，数量取[3,8)均匀分布，
// 类型按 医疗包(0.7) > 弹药(剩余0.5) > 强化道具 的优先级加权
func (g *Generator) generateCollectibles(difficulty float64) []Collectible {
	count := 3 + g.rng.Intn(5)
	collectibles := make([]Collectible, 0, count)

	for i := 0; i < count; i++ {
		var collectibleType CollectibleType
		if g.rng.Float64() < 0.7 {
			collectibleType = CollectibleHealthPack
		} else if g.rng.Float64() < 0.5 {
			collectibleType = CollectibleAmmo
		} else {
			collectibleType = CollectiblePowerUp
		}

		collectibles = append(collectibles, Collectible{
			Type: collectibleType,
			Position: mathx.NewVec2(
				g.rng.Float64()*800.0-400.0,
				g.rng.Float64()*400.0-200.0,
			),
			Value: int(10.0 * (1.0 + difficulty*0.5)),
		})
	}

	return collectibles
}
