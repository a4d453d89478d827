// zone.go

package procgen

import (
	"github.com/jacl-coder/StormWing-Server/internal/mathx"
	"github.com/jacl-coder/StormWing-Server/internal/models"
)

// ZoneType 区域类型
type ZoneType string

const (
	// ZoneSky 高空
	ZoneSky ZoneType = "sky"
	// ZoneClouds 云层
	ZoneClouds ZoneType = "clouds"
	// ZoneOcean 海洋
	ZoneOcean ZoneType = "ocean"
	// ZoneMountains 山地
	ZoneMountains ZoneType = "mountains"
	// ZoneDesert 沙漠
	ZoneDesert ZoneType = "desert"
)

// Zone 生成后不再修改的游戏区域
type Zone struct {
	Type         ZoneType      `json:"type"`
	Number       int           `json:"number"`
	Terrain      Terrain       `json:"terrain"`
	Waves        []Wave        `json:"waves"`
	Hazards      []Hazard      `json:"hazards"`
	Collectibles []Collectible `json:"collectibles"`
}

// NewZone 创建空区域
func NewZone(zoneType ZoneType, number int) *Zone {
	return &Zone{
		Type:   zoneType,
		Number: number,
	}
}

// Wave 一波敌机的完整出场描述
type Wave struct {
	EnemyComposition []models.EnemyType `json:"enemy_composition"`
	SpawnPositions   []mathx.Vec2       `json:"spawn_positions"`
	HealthMultiplier float64            `json:"health_multiplier"`
	DamageMultiplier float64            `json:"damage_multiplier"`
	SpeedMultiplier  float64            `json:"speed_multiplier"`
	SpawnDelay       float64            `json:"spawn_delay"`
	HasElite         bool               `json:"has_elite"`
}

// Terrain 区域地形描述
type Terrain struct {
	BackgroundLayers []TerrainLayer `json:"background_layers"`
	Obstacles        []Obstacle     `json:"obstacles"`
}

// TerrainLayer 视差背景层
type TerrainLayer struct {
	TextureName    string  `json:"texture_name"`
	ScrollSpeed    float64 `json:"scroll_speed"`
	ParallaxFactor float64 `json:"parallax_factor"`
}

// Obstacle 地形障碍物
type Obstacle struct {
	Position mathx.Vec2 `json:"position"`
	Size     mathx.Vec2 `json:"size"`
	Damage   float64    `json:"damage_on_collision"`
}

// HazardType 环境灾害类型
type HazardType string

const (
	// HazardLightning 雷暴
	HazardLightning HazardType = "lightning"
	// HazardWaterspout 水龙卷
	HazardWaterspout HazardType = "waterspout"
	// HazardWindShear 风切变
	HazardWindShear HazardType = "wind_shear"
	// HazardSandstorm 沙暴
	HazardSandstorm HazardType = "sandstorm"
)

// Hazard 环境灾害
type Hazard struct {
	Type            HazardType `json:"type"`
	Position        mathx.Vec2 `json:"position"`
	Radius          float64    `json:"radius"`
	DamagePerSecond float64    `json:"damage_per_second"`
}

// CollectibleType 掉落物类型
type CollectibleType string

const (
	// CollectibleHealthPack 医疗包
	CollectibleHealthPack CollectibleType = "health_pack"
	// CollectibleAmmo 弹药
	CollectibleAmmo CollectibleType = "ammo"
	// CollectiblePowerUp 强化道具
	CollectiblePowerUp CollectibleType = "power_up"
)

// Collectible 掉落物
type Collectible struct {
	Type     CollectibleType `json:"type"`
	Position mathx.Vec2      `json:"position"`
	Value    int             `json:"value"`
}
