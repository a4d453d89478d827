// state.go

// Package state 定义单局与跨局的游戏状态文档及其JSON存档编解码。
package state

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jacl-coder/StormWing-Server/internal/models"
)

// ErrCorruptState 存档损坏或格式不符
var ErrCorruptState = errors.New("state: corrupt save document")

// GraphicsQuality 画质档位
type GraphicsQuality string

const (
	// QualityLow 低
	QualityLow GraphicsQuality = "low"
	// QualityMedium 中
	QualityMedium GraphicsQuality = "medium"
	// QualityHigh 高
	QualityHigh GraphicsQuality = "high"
	// QualityUltra 极高
	QualityUltra GraphicsQuality = "ultra"
)

// GameState 完整游戏状态文档
type GameState struct {
	CurrentRun      *RunState       `json:"current_run"`
	MetaProgression MetaProgression `json:"meta_progression"`
	Settings        GameSettings    `json:"settings"`
	Statistics      GameStatistics  `json:"statistics"`
}

// NewGameState 创建初始状态
func NewGameState() *GameState {
	return &GameState{
		CurrentRun:      nil,
		MetaProgression: NewMetaProgression(),
		Settings:        DefaultSettings(),
		Statistics:      GameStatistics{},
	}
}

// ToJSON 序列化为存档JSON
func (g *GameState) ToJSON() ([]byte, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("序列化游戏状态失败: %w", err)
	}
	return data, nil
}

// FromJSON 从存档JSON恢复状态。解码失败时返回包装ErrCorruptState的错误，
// 且不会部分应用: 只有完整解码成功才返回状态。
func FromJSON(data []byte) (*GameState, error) {
	var state GameState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	return &state, nil
}

// RunState 单局状态
type RunState struct {
	Seed          uint64              `json:"seed"`
	Aircraft      models.AircraftType `json:"aircraft"`
	Zone          int                 `json:"zone"`
	Score         uint64              `json:"score"`
	TimeElapsed   float64             `json:"time_elapsed"`
	CurrentHealth int                 `json:"current_health"`
	MaxHealth     int                 `json:"max_health"`
}

// NewRunState 以种子和机型开始新的一局
func NewRunState(seed uint64, aircraft models.AircraftType) *RunState {
	return &RunState{
		Seed:          seed,
		Aircraft:      aircraft,
		Zone:          0,
		Score:         0,
		TimeElapsed:   0,
		CurrentHealth: 100,
		MaxHealth:     100,
	}
}

// MetaProgression 跨局成长: 中队经验等级与机型解锁
type MetaProgression struct {
	SquadronXP       uint32                       `json:"squadron_xp"`
	SquadronLevel    uint32                       `json:"squadron_level"`
	UnlockedAircraft map[models.AircraftType]bool `json:"unlocked_aircraft"`
	TotalScore       uint64                       `json:"total_score"`
	TotalRuns        uint32                       `json:"total_runs"`
}

// NewMetaProgression 创建初始成长状态，默认解锁Spitfire
func NewMetaProgression() MetaProgression {
	return MetaProgression{
		SquadronXP:    0,
		SquadronLevel: 1,
		UnlockedAircraft: map[models.AircraftType]bool{
			models.AircraftSpitfire: true,
		},
		TotalScore: 0,
		TotalRuns:  0,
	}
}

// AddXP 增加中队经验并结算升级
func (m *MetaProgression) AddXP(amount uint32) {
	m.SquadronXP += amount
	m.checkLevelUp()
}

// checkLevelUp 升级所需经验为当前等级*1000，每次结算最多升一级
func (m *MetaProgression) checkLevelUp() {
	required := m.SquadronLevel * 1000
	if m.SquadronXP >= required {
		m.SquadronXP -= required
		m.SquadronLevel++
	}
}

// UnlockAircraft 解锁机型
func (m *MetaProgression) UnlockAircraft(aircraft models.AircraftType) {
	if m.UnlockedAircraft == nil {
		m.UnlockedAircraft = make(map[models.AircraftType]bool)
	}
	m.UnlockedAircraft[aircraft] = true
}

// IsAircraftUnlocked 机型是否已解锁
func (m *MetaProgression) IsAircraftUnlocked(aircraft models.AircraftType) bool {
	return m.UnlockedAircraft[aircraft]
}

// GameSettings 游戏设置
type GameSettings struct {
	MasterVolume    float64         `json:"master_volume"`
	MusicVolume     float64         `json:"music_volume"`
	SfxVolume       float64         `json:"sfx_volume"`
	GraphicsQuality GraphicsQuality `json:"graphics_quality"`
}

// DefaultSettings 默认设置
func DefaultSettings() GameSettings {
	return GameSettings{
		MasterVolume:    0.8,
		MusicVolume:     0.7,
		SfxVolume:       0.9,
		GraphicsQuality: QualityHigh,
	}
}

// GameStatistics 累计统计
type GameStatistics struct {
	TotalPlaytime   float64 `json:"total_playtime"`
	EnemiesDefeated uint32  `json:"enemies_defeated"`
	HighestScore    uint64  `json:"highest_score"`
	HighestZone     int     `json:"highest_zone"`
}

// UpdateFromRun 用一局结果更新最高纪录与累计时长
func (s *GameStatistics) UpdateFromRun(run *RunState) {
	if run.Score > s.HighestScore {
		s.HighestScore = run.Score
	}
	if run.Zone > s.HighestZone {
		s.HighestZone = run.Zone
	}
	s.TotalPlaytime += run.TimeElapsed
}
