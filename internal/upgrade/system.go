// system.go

// Package upgrade 实现局内升级与组合加成。升级目录固定，
// 抽取权重由稀有度、组合加成与类别饱和共同决定。
package upgrade

import (
	"math/rand"

	"github.com/jacl-coder/StormWing-Server/pkg/random"
)

// weightedUpgrade 参与抽取的升级及其最终权重
type weightedUpgrade struct {
	Upgrade Upgrade
	Weight  float64
}

// System 升级系统。持有独立随机流以保证同种子抽取序列可复现。
type System struct {
	pool    []Upgrade
	synergy map[synergyKey]SynergyBonus
	build   *PlayerBuild
	rng     *rand.Rand
}

// NewSystem 创建升级系统
func NewSystem(seed int64) *System {
	return &System{
		pool:    defaultUpgradePool(),
		synergy: defaultSynergies(),
		build:   NewPlayerBuild(),
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// PoolSize 升级目录大小
func (s *System) PoolSize() int {
	return len(s.pool)
}

// SynergyCount 组合加成表大小
func (s *System) SynergyCount() int {
	return len(s.synergy)
}

// findUpgrade 按标识查找目录中的升级
func (s *System) findUpgrade(id ID) (Upgrade, bool) {
	for _, u := range s.pool {
		if u.ID == id {
			return u, true
		}
	}
	return Upgrade{}, false
}

// findSynergy 查找两个升级之间的组合加成，两个方向都查
func (s *System) findSynergy(a, b ID) (SynergyBonus, bool) {
	if bonus, ok := s.synergy[synergyKey{First: a, Second: b}]; ok {
		return bonus, true
	}
	if bonus, ok := s.synergy[synergyKey{First: b, Second: a}]; ok {
		return bonus, true
	}
	return SynergyBonus{}, false
}

// GenerateUpgradeChoices 生成本次升级的候选列表。
// 每次抽取相互独立，按标识去重，因此返回数量可能少于count。
func (s *System) GenerateUpgradeChoices(count int, zone int) []Upgrade {
	weights := s.calculateUpgradeWeights(zone)

	selector := random.NewWeighted[Upgrade]()
	for _, entry := range weights {
		selector.Add(entry.Upgrade, entry.Weight)
	}

	choices := make([]Upgrade, 0, count)
	selected := make(map[ID]struct{}, count)

	for i := 0; i < count; i++ {
		picked, ok := selector.Select(s.rng)
		if !ok {
			continue
		}
		if _, dup := selected[picked.ID]; dup {
			continue
		}
		choices = append(choices, picked)
		selected[picked.ID] = struct{}{}
	}

	return choices
}

// calculateUpgradeWeights 计算当前区域下每个可抽取升级的权重。
// 顺序: 区域门槛与前置过滤，稀有度基础权重，
// 已持有升级触发的组合加成乘数，类别持有超过2个时的0.5压制。
func (s *System) calculateUpgradeWeights(zone int) []weightedUpgrade {
	results := make([]weightedUpgrade, 0, len(s.pool))

	for _, candidate := range s.pool {
		if zone < candidate.MinZone {
			continue
		}

		satisfied := true
		for _, prereq := range candidate.Prerequisites {
			if !s.build.HasUpgrade(prereq) {
				satisfied = false
				break
			}
		}
		if !satisfied {
			continue
		}

		weight := candidate.Rarity.baseWeight()

		for _, owned := range s.build.Upgrades {
			if bonus, ok := s.findSynergy(owned, candidate.ID); ok {
				weight *= bonus.WeightMultiplier
			}
		}

		categoryCount := 0
		for _, owned := range s.build.Upgrades {
			if u, ok := s.findUpgrade(owned); ok && u.Category == candidate.Category {
				categoryCount++
			}
		}
		if categoryCount > 2 {
			weight *= 0.5
		}

		results = append(results, weightedUpgrade{Upgrade: candidate, Weight: weight})
	}

	return results
}

// ApplyUpgrade 将升级记入玩家构筑，并登记所有被激活的组合加成。
// 目录外的标识被忽略。
func (s *System) ApplyUpgrade(id ID) {
	if _, ok := s.findUpgrade(id); !ok {
		return
	}

	s.build.AddUpgrade(id)

	for _, owned := range s.build.Upgrades {
		if owned == id {
			continue
		}
		if bonus, ok := s.findSynergy(owned, id); ok {
			s.build.AddSynergy(bonus)
		}
	}
}

// PlayerBuild 当前玩家构筑
func (s *System) PlayerBuild() *PlayerBuild {
	return s.build
}

// ActiveSynergies 已激活的组合加成
func (s *System) ActiveSynergies() []SynergyBonus {
	return s.build.ActiveSynergies
}
