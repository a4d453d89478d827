// build.go

package upgrade

// PlayerBuild 玩家当前构筑: 已持有升级、已激活组合加成与属性修正聚合
type PlayerBuild struct {
	Upgrades        []ID             `json:"upgrades"`
	ActiveSynergies []SynergyBonus   `json:"active_synergies"`
	StatModifiers   map[Stat]float64 `json:"stat_modifiers"`
}

// NewPlayerBuild 创建空构筑
func NewPlayerBuild() *PlayerBuild {
	return &PlayerBuild{
		Upgrades:        make([]ID, 0),
		ActiveSynergies: make([]SynergyBonus, 0),
		StatModifiers:   make(map[Stat]float64),
	}
}

// AddUpgrade 记录持有升级，重复添加无效果
func (b *PlayerBuild) AddUpgrade(id ID) {
	if b.HasUpgrade(id) {
		return
	}
	b.Upgrades = append(b.Upgrades, id)
}

// HasUpgrade 是否持有指定升级
func (b *PlayerBuild) HasUpgrade(id ID) bool {
	for _, owned := range b.Upgrades {
		if owned == id {
			return true
		}
	}
	return false
}

// AddSynergy 登记激活的组合加成
func (b *PlayerBuild) AddSynergy(bonus SynergyBonus) {
	b.ActiveSynergies = append(b.ActiveSynergies, bonus)
}

// GetStatModifier 查询属性修正聚合值，未修正过的属性为1.0
func (b *PlayerBuild) GetStatModifier(stat Stat) float64 {
	if value, ok := b.StatModifiers[stat]; ok {
		return value
	}
	return 1.0
}

// ApplyStatModifier 叠加一次属性修正。加算与乘算按调用顺序复合，
// 不同修正方式之间不可交换。
func (b *PlayerBuild) ApplyStatModifier(stat Stat, modifier Modifier) {
	current := b.GetStatModifier(stat)
	switch modifier.Op {
	case ModifierAdd:
		b.StatModifiers[stat] = current + modifier.Value
	case ModifierMultiply:
		b.StatModifiers[stat] = current * modifier.Value
	}
}
