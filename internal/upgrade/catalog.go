// catalog.go

package upgrade

// defaultUpgradePool 内置升级目录
func defaultUpgradePool() []Upgrade {
	return []Upgrade{
		// 武器类
		{
			ID:          1,
			Name:        "Rapid Fire",
			Description: "Increases fire rate by 30%",
			Rarity:      RarityCommon,
			Category:    CategoryWeapon,
			Effects: []Effect{
				StatEffect(StatFireRate, MultiplyModifier(1.3)),
			},
			MinZone: 1,
		},
		{
			ID:          2,
			Name:        "Armor Piercing Rounds",
			Description: "Increases damage by 50%",
			Rarity:      RarityRare,
			Category:    CategoryWeapon,
			Effects: []Effect{
				StatEffect(StatDamage, MultiplyModifier(1.5)),
			},
			MinZone: 2,
		},
		{
			ID:          3,
			Name:        "Twin Guns",
			Description: "Fire two bullets at once",
			Rarity:      RarityRare,
			Category:    CategoryWeapon,
			Effects: []Effect{
				AddWeaponEffect(2),
			},
			MinZone: 2,
		},

		// 防御类
		{
			ID:          4,
			Name:        "Reinforced Hull",
			Description: "Increases max health by 25%",
			Rarity:      RarityCommon,
			Category:    CategoryDefense,
			Effects: []Effect{
				StatEffect(StatMaxHealth, MultiplyModifier(1.25)),
			},
			MinZone: 1,
		},
		{
			ID:          5,
			Name:        "Armor Plating",
			Description: "Reduces damage taken by 20%",
			Rarity:      RarityRare,
			Category:    CategoryDefense,
			Effects: []Effect{
				StatEffect(StatArmor, AddModifier(0.2)),
			},
			MinZone: 2,
		},
		{
			ID:          6,
			Name:        "Shield Generator",
			Description: "Grants a rechargeable shield",
			Rarity:      RarityEpic,
			Category:    CategoryDefense,
			Effects: []Effect{
				UnlockAbilityEffect(1),
			},
			MinZone: 3,
		},

		// 机动类
		{
			ID:          7,
			Name:        "Afterburner",
			Description: "Increases movement speed by 20%",
			Rarity:      RarityCommon,
			Category:    CategoryMobility,
			Effects: []Effect{
				StatEffect(StatMoveSpeed, MultiplyModifier(1.2)),
			},
			MinZone: 1,
		},
		{
			ID:          8,
			Name:        "Evasive Maneuvers",
			Description: "Grants a dash ability",
			Rarity:      RarityRare,
			Category:    CategoryMobility,
			Effects: []Effect{
				UnlockAbilityEffect(2),
			},
			MinZone: 2,
		},

		// 辅助类
		{
			ID:          9,
			Name:        "Auto-Repair",
			Description: "Slowly regenerate health over time",
			Rarity:      RarityEpic,
			Category:    CategoryUtility,
			Effects: []Effect{
				PassiveEffect(PassiveHealthRegen, 2.0),
			},
			MinZone: 3,
		},
		{
			ID:          10,
			Name:        "Treasure Hunter",
			Description: "Increases pickup range and value",
			Rarity:      RarityCommon,
			Category:    CategoryUtility,
			Effects: []Effect{
				StatEffect(StatPickupRadius, MultiplyModifier(1.5)),
				PassiveEffect(PassivePickupBonus, 1.25),
			},
			MinZone: 1,
		},

		// 传说
		{
			ID:          11,
			Name:        "Ace Pilot",
			Description: "Significantly improves all stats",
			Rarity:      RarityLegendary,
			Category:    CategorySpecial,
			Effects: []Effect{
				StatEffect(StatDamage, MultiplyModifier(1.5)),
				StatEffect(StatFireRate, MultiplyModifier(1.3)),
				StatEffect(StatMoveSpeed, MultiplyModifier(1.25)),
			},
			MinZone: 5,
		},
	}
}

// defaultSynergies 内置组合加成表
func defaultSynergies() map[synergyKey]SynergyBonus {
	return map[synergyKey]SynergyBonus{
		// Rapid Fire + Armor Piercing
		{First: 1, Second: 2}: {
			Name:             "Devastating Assault",
			Description:      "Rapid fire + High damage = Extra critical chance",
			WeightMultiplier: 2.0,
			BonusEffects: []Effect{
				StatEffect(StatCritChance, AddModifier(0.15)),
			},
		},
		// Reinforced Hull + Armor Plating
		{First: 4, Second: 5}: {
			Name:             "Fortress",
			Description:      "High health + High armor = Massive survivability",
			WeightMultiplier: 1.8,
			BonusEffects: []Effect{
				StatEffect(StatMaxHealth, MultiplyModifier(1.2)),
			},
		},
		// Afterburner + Evasive Maneuvers
		{First: 7, Second: 8}: {
			Name:             "Speed Demon",
			Description:      "Fast movement + Dash = Reduced dash cooldown",
			WeightMultiplier: 1.5,
			BonusEffects: []Effect{
				StatEffect(StatAbilityCooldown, MultiplyModifier(0.7)),
			},
		},
	}
}
