// upgrade_test.go

package upgrade

import (
	"math"
	"testing"
)

func TestPoolAndSynergySize(t *testing.T) {
	s := NewSystem(1)

	if s.PoolSize() != 11 {
		t.Errorf("PoolSize() = %d, want 11", s.PoolSize())
	}
	if s.SynergyCount() != 3 {
		t.Errorf("SynergyCount() = %d, want 3", s.SynergyCount())
	}
}

func TestRarityBaseWeight(t *testing.T) {
	tests := []struct {
		rarity Rarity
		want   float64
	}{
		{RarityCommon, 100.0},
		{RarityRare, 25.0},
		{RarityEpic, 5.0},
		{RarityLegendary, 1.0},
	}

	for _, tt := range tests {
		t.Run(string(tt.rarity), func(t *testing.T) {
			if got := tt.rarity.baseWeight(); got != tt.want {
				t.Errorf("baseWeight() = %v, want %v", got, tt.want)
			}
		})
	}

	// 稀有度越高权重越低
	if RarityCommon.baseWeight() <= RarityRare.baseWeight() {
		t.Error("common should outweigh rare")
	}
	if RarityRare.baseWeight() <= RarityLegendary.baseWeight() {
		t.Error("rare should outweigh legendary")
	}
}

func TestCalculateUpgradeWeightsZoneGate(t *testing.T) {
	s := NewSystem(1)

	weights := s.calculateUpgradeWeights(1)
	for _, entry := range weights {
		if entry.Upgrade.MinZone > 1 {
			t.Errorf("zone 1 offered %q with min_zone %d", entry.Upgrade.Name, entry.Upgrade.MinZone)
		}
	}

	// 区域5开放全部11个升级
	weights = s.calculateUpgradeWeights(5)
	if len(weights) != s.PoolSize() {
		t.Errorf("zone 5 candidates = %d, want %d", len(weights), s.PoolSize())
	}
}

func TestCalculateUpgradeWeightsPrerequisite(t *testing.T) {
	s := NewSystem(1)
	s.pool = append(s.pool, Upgrade{
		ID:            99,
		Name:          "Twin Guns Mk II",
		Rarity:        RarityRare,
		Category:      CategoryWeapon,
		Prerequisites: []ID{3},
		MinZone:       1,
	})

	hasCandidate := func(id ID) bool {
		for _, entry := range s.calculateUpgradeWeights(5) {
			if entry.Upgrade.ID == id {
				return true
			}
		}
		return false
	}

	if hasCandidate(99) {
		t.Error("upgrade with unmet prerequisite should not be offered")
	}

	s.ApplyUpgrade(3)
	if !hasCandidate(99) {
		t.Error("upgrade should be offered once prerequisite is owned")
	}
}

func TestCalculateUpgradeWeightsSynergyBoost(t *testing.T) {
	s := NewSystem(1)
	s.ApplyUpgrade(1) // Rapid Fire

	for _, entry := range s.calculateUpgradeWeights(5) {
		if entry.Upgrade.ID != 2 {
			continue
		}
		// Rapid Fire 与 Armor Piercing 组合权重翻倍: 25 * 2.0
		if math.Abs(entry.Weight-50.0) > 1e-9 {
			t.Errorf("synergy-boosted weight = %v, want 50.0", entry.Weight)
		}
		return
	}
	t.Fatal("upgrade 2 not found in candidates")
}

func TestCalculateUpgradeWeightsCategoryPenalty(t *testing.T) {
	s := NewSystem(1)
	// 持有全部3个武器类升级后，后续武器类权重减半
	s.ApplyUpgrade(1)
	s.ApplyUpgrade(2)
	s.ApplyUpgrade(3)

	for _, entry := range s.calculateUpgradeWeights(5) {
		if entry.Upgrade.ID != 7 {
			continue
		}
		// 机动类不受武器类饱和影响
		if math.Abs(entry.Weight-100.0) > 1e-9 {
			t.Errorf("mobility weight = %v, want 100.0", entry.Weight)
		}
	}

	for _, entry := range s.calculateUpgradeWeights(5) {
		if entry.Upgrade.ID != 1 {
			continue
		}
		// 武器类基础100，饱和压制0.5，组合加成(1+2)再乘2.0
		if math.Abs(entry.Weight-100.0) > 1e-9 {
			t.Errorf("saturated weapon weight = %v, want 100.0", entry.Weight)
		}
	}
}

func TestGenerateUpgradeChoices(t *testing.T) {
	s := NewSystem(42)

	choices := s.GenerateUpgradeChoices(3, 1)
	if len(choices) > 3 {
		t.Fatalf("got %d choices, want at most 3", len(choices))
	}

	seen := make(map[ID]struct{})
	for _, c := range choices {
		if _, dup := seen[c.ID]; dup {
			t.Errorf("duplicate choice %d", c.ID)
		}
		seen[c.ID] = struct{}{}
		if c.MinZone > 1 {
			t.Errorf("choice %q exceeds zone gate", c.Name)
		}
	}
}

func TestGenerateUpgradeChoicesNoCandidates(t *testing.T) {
	s := NewSystem(42)

	if choices := s.GenerateUpgradeChoices(3, 0); len(choices) != 0 {
		t.Errorf("zone 0 should have no candidates, got %d", len(choices))
	}
}

func TestGenerateUpgradeChoicesDeterministic(t *testing.T) {
	a := NewSystem(7)
	b := NewSystem(7)

	for i := 0; i < 10; i++ {
		ca := a.GenerateUpgradeChoices(3, 5)
		cb := b.GenerateUpgradeChoices(3, 5)
		if len(ca) != len(cb) {
			t.Fatalf("round %d: choice counts differ: %d vs %d", i, len(ca), len(cb))
		}
		for j := range ca {
			if ca[j].ID != cb[j].ID {
				t.Fatalf("round %d choice %d: %d vs %d", i, j, ca[j].ID, cb[j].ID)
			}
		}
	}
}

func TestApplyUpgradeSynergyActivation(t *testing.T) {
	s := NewSystem(1)

	s.ApplyUpgrade(1)
	if len(s.ActiveSynergies()) != 0 {
		t.Fatal("single upgrade should not activate a synergy")
	}

	s.ApplyUpgrade(2)
	synergies := s.ActiveSynergies()
	if len(synergies) != 1 {
		t.Fatalf("got %d active synergies, want 1", len(synergies))
	}
	if synergies[0].Name != "Devastating Assault" {
		t.Errorf("synergy name = %q, want %q", synergies[0].Name, "Devastating Assault")
	}
}

func TestApplyUpgradeUnknownID(t *testing.T) {
	s := NewSystem(1)

	s.ApplyUpgrade(999)
	if len(s.PlayerBuild().Upgrades) != 0 {
		t.Error("unknown upgrade should be ignored")
	}
}

func TestApplyUpgradeDuplicate(t *testing.T) {
	s := NewSystem(1)

	s.ApplyUpgrade(1)
	s.ApplyUpgrade(1)
	if got := len(s.PlayerBuild().Upgrades); got != 1 {
		t.Errorf("owned upgrades = %d, want 1", got)
	}
}

func TestPlayerBuildStatModifier(t *testing.T) {
	b := NewPlayerBuild()

	if got := b.GetStatModifier(StatDamage); got != 1.0 {
		t.Errorf("default modifier = %v, want 1.0", got)
	}

	// 乘算后加算: 1.0 * 1.5 + 0.5 = 2.0
	b.ApplyStatModifier(StatDamage, MultiplyModifier(1.5))
	b.ApplyStatModifier(StatDamage, AddModifier(0.5))
	if got := b.GetStatModifier(StatDamage); math.Abs(got-2.0) > 1e-9 {
		t.Errorf("composed modifier = %v, want 2.0", got)
	}

	// 其他属性不受影响
	if got := b.GetStatModifier(StatArmor); got != 1.0 {
		t.Errorf("untouched stat modifier = %v, want 1.0", got)
	}
}

func TestPlayerBuildHasUpgrade(t *testing.T) {
	b := NewPlayerBuild()

	if b.HasUpgrade(1) {
		t.Error("empty build should not own upgrade 1")
	}
	b.AddUpgrade(1)
	if !b.HasUpgrade(1) {
		t.Error("build should own upgrade 1 after AddUpgrade")
	}
}
