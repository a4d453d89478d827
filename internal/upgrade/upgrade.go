// upgrade.go

package upgrade

import (
	"github.com/jacl-coder/StormWing-Server/internal/weapon"
)

// ID 升级标识
type ID uint32

// Rarity 升级稀有度
type Rarity string

const (
	// RarityCommon 普通
	RarityCommon Rarity = "common"
	// RarityRare 稀有
	RarityRare Rarity = "rare"
	// RarityEpic 史诗
	RarityEpic Rarity = "epic"
	// RarityLegendary 传说
	RarityLegendary Rarity = "legendary"
)

// baseWeight 稀有度对应的基础抽取权重
func (r Rarity) baseWeight() float64 {
	switch r {
	case RarityRare:
		return 25.0
	case RarityEpic:
		return 5.0
	case RarityLegendary:
		return 1.0
	default:
		return 100.0
	}
}

// Category 升级类别
type Category string

const (
	// CategoryWeapon 武器类
	CategoryWeapon Category = "weapon"
	// CategoryDefense 防御类
	CategoryDefense Category = "defense"
	// CategoryMobility 机动类
	CategoryMobility Category = "mobility"
	// CategoryUtility 辅助类
	CategoryUtility Category = "utility"
	// CategorySpecial 特殊类
	CategorySpecial Category = "special"
)

// Stat 可被升级修正的属性
type Stat string

const (
	// StatMaxHealth 最大生命
	StatMaxHealth Stat = "max_health"
	// StatArmor 护甲
	StatArmor Stat = "armor"
	// StatMoveSpeed 移动速度
	StatMoveSpeed Stat = "move_speed"
	// StatFireRate 射速
	StatFireRate Stat = "fire_rate"
	// StatDamage 伤害
	StatDamage Stat = "damage"
	// StatPickupRadius 拾取半径
	StatPickupRadius Stat = "pickup_radius"
	// StatCritChance 暴击率
	StatCritChance Stat = "crit_chance"
	// StatAbilityCooldown 技能冷却
	StatAbilityCooldown Stat = "ability_cooldown"
)

// ModifierOp 属性修正方式
type ModifierOp string

const (
	// ModifierAdd 加算
	ModifierAdd ModifierOp = "add"
	// ModifierMultiply 乘算
	ModifierMultiply ModifierOp = "multiply"
)

// Modifier 属性修正
type Modifier struct {
	Op    ModifierOp `json:"op"`
	Value float64    `json:"value"`
}

// AddModifier 加算修正
func AddModifier(value float64) Modifier {
	return Modifier{Op: ModifierAdd, Value: value}
}

// MultiplyModifier 乘算修正
func MultiplyModifier(value float64) Modifier {
	return Modifier{Op: ModifierMultiply, Value: value}
}

// AbilityID 主动技能标识
type AbilityID uint32

// PassiveKind 被动效果类型
type PassiveKind string

const (
	// PassiveHealthRegen 持续回血
	PassiveHealthRegen PassiveKind = "health_regen"
	// PassivePickupBonus 拾取收益加成
	PassivePickupBonus PassiveKind = "pickup_bonus"
	// PassiveDamageReflection 伤害反弹
	PassiveDamageReflection PassiveKind = "damage_reflection"
	// PassiveLifeSteal 生命偷取
	PassiveLifeSteal PassiveKind = "life_steal"
)

// EffectKind 升级效果类型
type EffectKind string

const (
	// EffectStatModifier 属性修正
	EffectStatModifier EffectKind = "stat_modifier"
	// EffectAddWeapon 追加武器
	EffectAddWeapon EffectKind = "add_weapon"
	// EffectUnlockAbility 解锁技能
	EffectUnlockAbility EffectKind = "unlock_ability"
	// EffectPassive 被动效果
	EffectPassive EffectKind = "passive"
)

// Effect 升级效果。Kind决定其余字段中哪一组生效。
type Effect struct {
	Kind EffectKind `json:"kind"`

	Stat     Stat     `json:"stat,omitempty"`
	Modifier Modifier `json:"modifier,omitempty"`

	Weapon  weapon.WeaponID `json:"weapon,omitempty"`
	Ability AbilityID       `json:"ability,omitempty"`

	Passive      PassiveKind `json:"passive,omitempty"`
	PassiveValue float64     `json:"passive_value,omitempty"`
}

// StatEffect 属性修正效果
func StatEffect(stat Stat, modifier Modifier) Effect {
	return Effect{Kind: EffectStatModifier, Stat: stat, Modifier: modifier}
}

// AddWeaponEffect 追加武器效果
func AddWeaponEffect(id weapon.WeaponID) Effect {
	return Effect{Kind: EffectAddWeapon, Weapon: id}
}

// UnlockAbilityEffect 解锁技能效果
func UnlockAbilityEffect(id AbilityID) Effect {
	return Effect{Kind: EffectUnlockAbility, Ability: id}
}

// PassiveEffect 被动效果
func PassiveEffect(kind PassiveKind, value float64) Effect {
	return Effect{Kind: EffectPassive, Passive: kind, PassiveValue: value}
}

// Upgrade 升级定义
type Upgrade struct {
	ID            ID       `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Rarity        Rarity   `json:"rarity"`
	Category      Category `json:"category"`
	Effects       []Effect `json:"effects"`
	Prerequisites []ID     `json:"prerequisites,omitempty"`
	MinZone       int      `json:"min_zone"`
}

// SynergyBonus 升级组合加成
type SynergyBonus struct {
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	WeightMultiplier float64  `json:"weight_multiplier"`
	BonusEffects     []Effect `json:"bonus_effects"`
}

// synergyKey 组合加成的有序键，检索时两个方向都会查
type synergyKey struct {
	First  ID
	Second ID
}
