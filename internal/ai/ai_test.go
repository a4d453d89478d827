package ai

import (
	"math"
	"testing"

	"github.com/jacl-coder/StormWing-Server/internal/mathx"
	"github.com/jacl-coder/StormWing-Server/internal/models"
)

func TestNewSystemLoadsDefaultTrees(t *testing.T) {
	sys := NewSystem(1)
	if got := sys.TreeCount(); got != 5 {
		t.Errorf("TreeCount = %d, want 5", got)
	}
}

func TestRegisterAndUnregister(t *testing.T) {
	sys := NewSystem(1)
	e := models.NewEntity(1)

	sys.RegisterEnemy(e, models.EnemyFighter)
	if !sys.IsRegistered(e) {
		t.Error("entity should be registered")
	}

	sys.UnregisterEnemy(e)
	if sys.IsRegistered(e) {
		t.Error("entity should be unregistered")
	}
}

func TestUpdateUnregisteredReturnsNone(t *testing.T) {
	sys := NewSystem(1)
	cmd := sys.Update(models.NewEntity(99), models.NewPosition(0, 0), models.NewPosition(100, 0), 0.016)
	if !cmd.IsNone() {
		t.Errorf("unregistered entity produced command %+v", cmd)
	}
}

func TestFighterMovesTowardsPlayer(t *testing.T) {
	sys := NewSystem(1)
	e := models.NewEntity(1)
	sys.RegisterEnemy(e, models.EnemyFighter)

	cmd := sys.Update(e, models.NewPosition(0, 0), models.NewPosition(100, 0), 0.016)
	if cmd.Kind != CommandMove {
		t.Fatalf("Kind = %s, want move", cmd.Kind)
	}
	if cmd.Direction.X <= 0 {
		t.Errorf("fighter should move towards player, direction %+v", cmd.Direction)
	}
	if cmd.Speed != 150.0 {
		t.Errorf("Speed = %v, want 150", cmd.Speed)
	}
}

func TestKamikazeDivesAtPlayer(t *testing.T) {
	sys := NewSystem(1)
	e := models.NewEntity(2)
	sys.RegisterEnemy(e, models.EnemyKamikaze)

	cmd := sys.Update(e, models.NewPosition(0, 100), models.NewPosition(0, 0), 0.016)
	if cmd.Kind != CommandMove {
		t.Fatalf("Kind = %s, want move", cmd.Kind)
	}
	if cmd.Speed != 300.0 {
		t.Errorf("Speed = %v, want 300", cmd.Speed)
	}
	if cmd.Direction.Y >= 0 {
		t.Errorf("kamikaze should dive towards player, direction %+v", cmd.Direction)
	}
}

func TestAceProducesMultipleCommands(t *testing.T) {
	sys := NewSystem(1)
	e := models.NewEntity(3)
	sys.RegisterEnemy(e, models.EnemyAce)

	cmd := sys.Update(e, models.NewPosition(0, 0), models.NewPosition(100, 100), 0.016)
	if cmd.Kind != CommandMultiple {
		t.Fatalf("Kind = %s, want multiple", cmd.Kind)
	}
	if len(cmd.Commands) == 0 {
		t.Fatal("parallel node produced no sub-commands")
	}

	// 王牌每帧都应产生开火意图
	hasFire := false
	for _, sub := range cmd.Commands {
		if sub.Kind == CommandFire {
			hasFire = true
		}
	}
	if !hasFire {
		t.Error("ace should fire at player every frame")
	}
}

func TestBomberKeepsDistance(t *testing.T) {
	sys := NewSystem(1)
	e := models.NewEntity(4)
	sys.RegisterEnemy(e, models.EnemyBomber)

	// 距离太近时后退
	cmd := sys.Update(e, models.NewPosition(10, 0), models.NewPosition(0, 0), 0.016)
	if cmd.Kind != CommandMove {
		t.Fatalf("Kind = %s, want move", cmd.Kind)
	}
	if cmd.Direction.X <= 0 {
		t.Errorf("bomber too close should back away, direction %+v", cmd.Direction)
	}

	// 距离太远时接近
	cmd = sys.Update(e, models.NewPosition(500, 0), models.NewPosition(0, 0), 0.016)
	if cmd.Direction.X >= 0 {
		t.Errorf("bomber too far should approach, direction %+v", cmd.Direction)
	}
}

func TestDeterministicWithSameSeed(t *testing.T) {
	run := func(seed int64) []Command {
		sys := NewSystem(seed)
		e := models.NewEntity(1)
		sys.RegisterEnemy(e, models.EnemyFighter)

		var commands []Command
		pos := models.NewPosition(50, 50)
		player := models.NewPosition(0, 0)
		for i := 0; i < 20; i++ {
			commands = append(commands, sys.Update(e, pos, player, 0.016))
		}
		return commands
	}

	a := run(42)
	b := run(42)

	for i := range a {
		if a[i].Kind != b[i].Kind || a[i].Direction != b[i].Direction || a[i].Speed != b[i].Speed {
			t.Fatalf("command %d diverged: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestFormationPosition(t *testing.T) {
	base := mathx.NewVec2(0, 0)

	// V字编队: 横向展开，纵向后错
	v := calculateFormationPosition(base, mathx.NewVec2(1, 1), FormationV)
	if v.X != 50 || v.Y != -30 {
		t.Errorf("V formation = %+v, want {50 -30}", v)
	}

	// 横列编队只展开横向
	line := calculateFormationPosition(base, mathx.NewVec2(2, 5), FormationLine)
	if line.X != 160 || line.Y != 0 {
		t.Errorf("line formation = %+v, want {160 0}", line)
	}

	// 环形编队落在半径100的圆上
	circle := calculateFormationPosition(base, mathx.NewVec2(0.25, 0), FormationCircle)
	if math.Abs(circle.Magnitude()-100) > 1e-9 {
		t.Errorf("circle formation radius = %v, want 100", circle.Magnitude())
	}
}

func TestPathPositionAt(t *testing.T) {
	path := NewPath([]mathx.Vec2{
		mathx.NewVec2(0, 0),
		mathx.NewVec2(100, 0),
		mathx.NewVec2(100, 100),
	})

	tests := []struct {
		name string
		t    float64
		want mathx.Vec2
	}{
		{"start", 0, mathx.NewVec2(0, 0)},
		{"first segment midpoint", 0.25, mathx.NewVec2(50, 0)},
		{"corner", 0.5, mathx.NewVec2(100, 0)},
		{"second segment midpoint", 0.75, mathx.NewVec2(100, 50)},
		{"end", 1, mathx.NewVec2(100, 100)},
		{"clamped below", -1, mathx.NewVec2(0, 0)},
		{"clamped above", 2, mathx.NewVec2(100, 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := path.PositionAt(tt.t)
			if !ok {
				t.Fatal("PositionAt returned false for non-empty path")
			}
			if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
				t.Errorf("PositionAt(%v) = %+v, want %+v", tt.t, got, tt.want)
			}
		})
	}
}

func TestPathEdgeCases(t *testing.T) {
	empty := NewPath(nil)
	if _, ok := empty.PositionAt(0.5); ok {
		t.Error("empty path should return false")
	}

	single := NewPath([]mathx.Vec2{mathx.NewVec2(7, 7)})
	got, ok := single.PositionAt(0.9)
	if !ok || got.X != 7 || got.Y != 7 {
		t.Errorf("single waypoint path = %+v, %v", got, ok)
	}
}
