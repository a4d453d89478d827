// state_test.go

package state

import (
	"errors"
	"reflect"
	"testing"

	"github.com/jacl-coder/StormWing-Server/internal/models"
)

func TestNewGameStateDefaults(t *testing.T) {
	state := NewGameState()

	if state.CurrentRun != nil {
		t.Error("initial state should have no current run")
	}
	if state.MetaProgression.SquadronLevel != 1 {
		t.Errorf("squadron level = %d, want 1", state.MetaProgression.SquadronLevel)
	}
	if !state.MetaProgression.IsAircraftUnlocked(models.AircraftSpitfire) {
		t.Error("spitfire should be unlocked by default")
	}
	if state.MetaProgression.IsAircraftUnlocked(models.AircraftMustang) {
		t.Error("mustang should not be unlocked by default")
	}
	if state.Settings.GraphicsQuality != QualityHigh {
		t.Errorf("graphics quality = %q, want %q", state.Settings.GraphicsQuality, QualityHigh)
	}
}

func TestGameStateRoundTrip(t *testing.T) {
	original := NewGameState()
	original.CurrentRun = NewRunState(12345, models.AircraftCorsair)
	original.CurrentRun.Zone = 3
	original.CurrentRun.Score = 98765
	original.CurrentRun.TimeElapsed = 421.5
	original.MetaProgression.AddXP(500)
	original.MetaProgression.UnlockAircraft(models.AircraftCorsair)
	original.Statistics.UpdateFromRun(original.CurrentRun)

	data, err := original.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error: %v", err)
	}

	restored, err := FromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON() error: %v", err)
	}

	if !reflect.DeepEqual(original, restored) {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", restored, original)
	}
}

func TestFromJSONCorrupt(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"truncated", []byte(`{"current_run":`)},
		{"not json", []byte("\x00\x01\x02")},
		{"wrong type", []byte(`{"meta_progression":"oops"}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, err := FromJSON(tt.data)
			if err == nil {
				t.Fatal("expected error for corrupt document")
			}
			if !errors.Is(err, ErrCorruptState) {
				t.Errorf("error %v should wrap ErrCorruptState", err)
			}
			if state != nil {
				t.Error("corrupt document should not yield partial state")
			}
		})
	}
}

func TestNewRunState(t *testing.T) {
	run := NewRunState(42, models.AircraftLightning)

	if run.Seed != 42 {
		t.Errorf("seed = %d, want 42", run.Seed)
	}
	if run.Aircraft != models.AircraftLightning {
		t.Errorf("aircraft = %q, want %q", run.Aircraft, models.AircraftLightning)
	}
	if run.Zone != 0 || run.Score != 0 {
		t.Errorf("fresh run should start at zone 0 score 0, got zone %d score %d", run.Zone, run.Score)
	}
	if run.CurrentHealth != 100 || run.MaxHealth != 100 {
		t.Errorf("fresh run health = %d/%d, want 100/100", run.CurrentHealth, run.MaxHealth)
	}
}

func TestMetaProgressionAddXP(t *testing.T) {
	tests := []struct {
		name      string
		amounts   []uint32
		wantLevel uint32
		wantXP    uint32
	}{
		{"no level up", []uint32{500}, 1, 500},
		{"exact threshold", []uint32{1000}, 2, 0},
		{"overflow carries", []uint32{1500}, 2, 500},
		{"two awards", []uint32{800, 400}, 2, 200},
		// 单次结算最多升一级，溢出经验留到下次
		{"single level per award", []uint32{5000}, 2, 4000},
		{"second award settles again", []uint32{5000, 0}, 3, 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMetaProgression()
			for _, amount := range tt.amounts {
				m.AddXP(amount)
			}
			if m.SquadronLevel != tt.wantLevel {
				t.Errorf("level = %d, want %d", m.SquadronLevel, tt.wantLevel)
			}
			if m.SquadronXP != tt.wantXP {
				t.Errorf("xp = %d, want %d", m.SquadronXP, tt.wantXP)
			}
		})
	}
}

func TestMetaProgressionUnlock(t *testing.T) {
	m := NewMetaProgression()

	if m.IsAircraftUnlocked(models.AircraftThunderbolt) {
		t.Error("thunderbolt should start locked")
	}
	m.UnlockAircraft(models.AircraftThunderbolt)
	if !m.IsAircraftUnlocked(models.AircraftThunderbolt) {
		t.Error("thunderbolt should be unlocked after UnlockAircraft")
	}

	// nil解锁表也能安全写入
	var zero MetaProgression
	zero.UnlockAircraft(models.AircraftMustang)
	if !zero.IsAircraftUnlocked(models.AircraftMustang) {
		t.Error("unlock on zero-value progression should work")
	}
}

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings.MasterVolume != 0.8 || settings.MusicVolume != 0.7 || settings.SfxVolume != 0.9 {
		t.Errorf("unexpected volumes: %+v", settings)
	}
	if settings.GraphicsQuality != QualityHigh {
		t.Errorf("graphics quality = %q, want %q", settings.GraphicsQuality, QualityHigh)
	}
}

func TestStatisticsUpdateFromRun(t *testing.T) {
	var stats GameStatistics

	first := &RunState{Score: 1000, Zone: 3, TimeElapsed: 100}
	stats.UpdateFromRun(first)
	if stats.HighestScore != 1000 || stats.HighestZone != 3 {
		t.Errorf("after first run: score %d zone %d, want 1000/3", stats.HighestScore, stats.HighestZone)
	}

	// 更差的一局不回退纪录，时长仍累计
	worse := &RunState{Score: 500, Zone: 2, TimeElapsed: 50}
	stats.UpdateFromRun(worse)
	if stats.HighestScore != 1000 || stats.HighestZone != 3 {
		t.Errorf("records regressed: score %d zone %d", stats.HighestScore, stats.HighestZone)
	}
	if stats.TotalPlaytime != 150 {
		t.Errorf("total playtime = %v, want 150", stats.TotalPlaytime)
	}

	better := &RunState{Score: 2000, Zone: 5, TimeElapsed: 200}
	stats.UpdateFromRun(better)
	if stats.HighestScore != 2000 || stats.HighestZone != 5 {
		t.Errorf("records not updated: score %d zone %d", stats.HighestScore, stats.HighestZone)
	}
}
