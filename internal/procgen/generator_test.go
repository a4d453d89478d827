package procgen

import (
	"math"
	"reflect"
	"testing"
)

func TestCalculateDifficulty(t *testing.T) {
	tests := []struct {
		zone int
		want float64
	}{
		{0, 0.1},
		{1, 0.25},
		{2, 0.4},
		{6, 1.0},
		{100, 1.0},
	}

	for _, tt := range tests {
		if got := CalculateDifficulty(tt.zone); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("CalculateDifficulty(%d) = %v, want %v", tt.zone, got, tt.want)
		}
	}
}

func TestDifficultyMonotonic(t *testing.T) {
	prev := 0.0
	for zone := 0; zone < 20; zone++ {
		d := CalculateDifficulty(zone)
		if d < prev {
			t.Fatalf("difficulty decreased at zone %d: %v < %v", zone, d, prev)
		}
		if d > 1.0 {
			t.Fatalf("difficulty exceeded cap at zone %d: %v", zone, d)
		}
		prev = d
	}
}

func TestGenerateZoneDeterministic(t *testing.T) {
	a := NewGenerator(1234).GenerateZone(ZoneSky, 3)
	b := NewGenerator(1234).GenerateZone(ZoneSky, 3)

	if !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different zones")
	}
}

func TestGenerateZoneDifferentSeeds(t *testing.T) {
	a := NewGenerator(1).GenerateZone(ZoneSky, 3)
	b := NewGenerator(2).GenerateZone(ZoneSky, 3)

	// 波次结构几乎必然不同
	if reflect.DeepEqual(a.Waves, b.Waves) {
		t.Error("different seeds produced identical wave sequences")
	}
}

func TestGenerateZoneStructure(t *testing.T) {
	zone := NewGenerator(42).GenerateZone(ZoneOcean, 2)

	if zone.Type != ZoneOcean {
		t.Errorf("Type = %s, want ocean", zone.Type)
	}
	if zone.Number != 2 {
		t.Errorf("Number = %d, want 2", zone.Number)
	}

	// 波次数量 = 5 + 难度*5
	difficulty := CalculateDifficulty(2)
	wantWaves := int(5.0 + difficulty*5.0)
	if len(zone.Waves) != wantWaves {
		t.Errorf("wave count = %d, want %d", len(zone.Waves), wantWaves)
	}

	for i, wave := range zone.Waves {
		if len(wave.EnemyComposition) == 0 {
			t.Errorf("wave %d has no enemies", i)
		}
		if len(wave.SpawnPositions) != len(wave.EnemyComposition) {
			t.Errorf("wave %d: %d positions for %d enemies",
				i, len(wave.SpawnPositions), len(wave.EnemyComposition))
		}
		if wave.HealthMultiplier < 1.0 || wave.DamageMultiplier < 1.0 || wave.SpeedMultiplier < 1.0 {
			t.Errorf("wave %d multipliers below baseline: %+v", i, wave)
		}
	}

	// 掉落物数量处于[3,8)区间
	if len(zone.Collectibles) < 3 || len(zone.Collectibles) >= 8 {
		t.Errorf("collectible count = %d, want [3,8)", len(zone.Collectibles))
	}
}

func TestGenerateWaveNeverEmpty(t *testing.T) {
	gen := NewGenerator(7)

	// 各区域类型和难度组合下波次都不为空
	for _, zoneType := range []ZoneType{ZoneSky, ZoneClouds, ZoneOcean, ZoneMountains, ZoneDesert} {
		for _, difficulty := range []float64{0.1, 0.5, 1.0} {
			wave := gen.GenerateWave(zoneType, difficulty)
			if len(wave.EnemyComposition) == 0 {
				t.Errorf("empty wave for %s at difficulty %v", zoneType, difficulty)
			}
		}
	}
}

func TestGenerateTerrainLayers(t *testing.T) {
	tests := []struct {
		zoneType ZoneType
		textures []string
	}{
		{ZoneSky, []string{"sky_bg", "clouds_far"}},
		{ZoneClouds, []string{"cloud_layer_1", "cloud_layer_2"}},
		{ZoneOcean, []string{"ocean_bg", "waves"}},
		{ZoneMountains, []string{"mountain_far", "mountain_near"}},
		{ZoneDesert, []string{"desert_bg", "sand_dunes"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.zoneType), func(t *testing.T) {
			terrain := generateTerrain(tt.zoneType)
			if len(terrain.BackgroundLayers) != len(tt.textures) {
				t.Fatalf("layer count = %d, want %d", len(terrain.BackgroundLayers), len(tt.textures))
			}
			for i, want := range tt.textures {
				if terrain.BackgroundLayers[i].TextureName != want {
					t.Errorf("layer %d texture = %s, want %s", i, terrain.BackgroundLayers[i].TextureName, want)
				}
			}
			// 远景层滚动慢于近景层
			if terrain.BackgroundLayers[0].ScrollSpeed >= terrain.BackgroundLayers[1].ScrollSpeed {
				t.Error("far layer should scroll slower than near layer")
			}
		})
	}
}

func TestHazardTypesMatchZone(t *testing.T) {
	tests := []struct {
		zoneType ZoneType
		want     HazardType
	}{
		{ZoneSky, HazardLightning},
		{ZoneClouds, HazardLightning},
		{ZoneOcean, HazardWaterspout},
		{ZoneMountains, HazardWindShear},
		{ZoneDesert, HazardSandstorm},
	}

	for _, tt := range tests {
		t.Run(string(tt.zoneType), func(t *testing.T) {
			// 高难度保证生成灾害
			zone := NewGenerator(9).GenerateZone(tt.zoneType, 10)
			if len(zone.Hazards) == 0 {
				t.Fatal("no hazards generated at max difficulty")
			}
			for _, hazard := range zone.Hazards {
				if hazard.Type != tt.want {
					t.Errorf("hazard type = %s, want %s", hazard.Type, tt.want)
				}
			}
		})
	}
}

func TestFormationPositionsCount(t *testing.T) {
	formations := []Formation{
		{Kind: FormationV, Spacing: 50},
		{Kind: FormationLine, Spacing: 80},
		{Kind: FormationCircle, Radius: 150},
		{Kind: FormationDiamond},
	}

	for _, formation := range formations {
		for _, count := range []int{1, 3, 8} {
			positions := FormationPositions(formation, count)
			if len(positions) != count {
				t.Errorf("%s formation with count %d produced %d positions",
					formation.Kind, count, len(positions))
			}
		}
	}
}

func TestFormationPositionsCircleRadius(t *testing.T) {
	positions := FormationPositions(Formation{Kind: FormationCircle, Radius: 100}, 6)
	for i, pos := range positions {
		// 圆心在(0,-100)
		dx := pos.X
		dy := pos.Y + 100.0
		dist := math.Sqrt(dx*dx + dy*dy)
		if math.Abs(dist-100) > 1e-9 {
			t.Errorf("position %d distance from center = %v, want 100", i, dist)
		}
	}
}

func TestFormationPositionsDeterministic(t *testing.T) {
	formation := Formation{Kind: FormationV, Spacing: 50}
	a := FormationPositions(formation, 5)
	b := FormationPositions(formation, 5)
	if !reflect.DeepEqual(a, b) {
		t.Error("formation positions not deterministic")
	}
}

func TestWaveTemplateMatches(t *testing.T) {
	template := WaveTemplate{
		MinDifficulty: 0.3,
		MaxDifficulty: 0.8,
		ZoneTypes:     []ZoneType{ZoneSky},
	}

	tests := []struct {
		name       string
		zoneType   ZoneType
		difficulty float64
		want       bool
	}{
		{"in band and zone", ZoneSky, 0.5, true},
		{"below band", ZoneSky, 0.1, false},
		{"above band", ZoneSky, 0.9, false},
		{"wrong zone", ZoneDesert, 0.5, false},
		{"band boundary", ZoneSky, 0.3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := template.matches(tt.zoneType, tt.difficulty); got != tt.want {
				t.Errorf("matches(%s, %v) = %v, want %v", tt.zoneType, tt.difficulty, got, tt.want)
			}
		})
	}
}
