// ai.go

package ai

import (
	"math"
	"math/rand"

	"github.com/jacl-coder/StormWing-Server/internal/mathx"
	"github.com/jacl-coder/StormWing-Server/internal/models"
)

// State 单个敌机的AI状态，注册时创建，注销时销毁，仅由AI系统持有
type State struct {
	EnemyType       models.EnemyType `json:"enemy_type"`
	StateTimer      float64          `json:"state_timer"`
	TargetPosition  *mathx.Vec2      `json:"target_position,omitempty"`
	FormationOffset mathx.Vec2       `json:"formation_offset"`
}

// context 单次行为树求值的输入快照
type context struct {
	entity         models.Entity
	position       models.Position
	playerPosition models.Position
	state          *State
	delta          float64
}

// System AI系统。每种敌机类型在启动时绑定一棵固定的行为树，
// 树为只读数据，被该类型的所有实体共享。
type System struct {
	behaviorTrees map[models.EnemyType]*BehaviorTree
	enemyStates   map[models.Entity]*State
	rng           *rand.Rand
}

// NewSystem 创建AI系统并装载默认行为树。
// 开火散布使用独立的种子随机流，不触碰全局随机状态。
func NewSystem(seed int64) *System {
	s := &System{
		behaviorTrees: make(map[models.EnemyType]*BehaviorTree),
		enemyStates:   make(map[models.Entity]*State),
		rng:           rand.New(rand.NewSource(seed)),
	}
	s.initDefaultBehaviors()
	return s
}

// initDefaultBehaviors 构建各敌机类型的默认行为树
func (s *System) initDefaultBehaviors() {
	// 战斗机: 贴身追击并开火
	s.behaviorTrees[models.EnemyFighter] = &BehaviorTree{
		Root: Sequence(
			MoveToPlayer(150.0),
			FireAtPlayer(0.8),
		),
	}

	// 轰炸机: 保持距离环绕开火，失败则接近
	s.behaviorTrees[models.EnemyBomber] = &BehaviorTree{
		Root: Selector(
			Sequence(
				CircleStrafe(200.0, 100.0),
				FireAtPlayer(0.6),
			),
			MoveToPlayer(80.0),
		),
	}

	// 王牌: 闪避或环绕，同时持续开火
	s.behaviorTrees[models.EnemyAce] = &BehaviorTree{
		Root: Parallel(
			Selector(
				Evade(2.0),
				CircleStrafe(150.0, 200.0),
			),
			FireAtPlayer(0.95),
		),
	}

	// 神风: 直线俯冲
	s.behaviorTrees[models.EnemyKamikaze] = &BehaviorTree{
		Root: KamikazeDive(),
	}

	// 重型轰炸机: 编队飞行并开火
	s.behaviorTrees[models.EnemyHeavyBomber] = &BehaviorTree{
		Root: Sequence(
			FormationFly(FormationV),
			FireAtPlayer(0.5),
		),
	}
}

// RegisterEnemy 注册敌机，创建其AI状态
func (s *System) RegisterEnemy(entity models.Entity, enemyType models.EnemyType) {
	s.enemyStates[entity] = &State{
		EnemyType: enemyType,
	}
}

// RegisterEnemyWithOffset 注册敌机并指定其编队偏移
func (s *System) RegisterEnemyWithOffset(entity models.Entity, enemyType models.EnemyType, offset mathx.Vec2) {
	s.enemyStates[entity] = &State{
		EnemyType:       enemyType,
		FormationOffset: offset,
	}
}

// UnregisterEnemy 注销敌机（死亡或离场时），销毁其AI状态
func (s *System) UnregisterEnemy(entity models.Entity) {
	delete(s.enemyStates, entity)
}

// IsRegistered 实体是否已注册
func (s *System) IsRegistered(entity models.Entity) bool {
	_, ok := s.enemyStates[entity]
	return ok
}

// TreeCount 已装载的行为树数量
func (s *System) TreeCount() int {
	return len(s.behaviorTrees)
}

// Update 对单个敌机求值行为树并返回行动指令。
// 未注册的实体返回空指令，过期句柄属于正常情况而非错误。
func (s *System) Update(entity models.Entity, position, playerPosition models.Position, delta float64) Command {
	state, ok := s.enemyStates[entity]
	if !ok {
		return NoneCommand()
	}

	state.StateTimer += delta

	tree, ok := s.behaviorTrees[state.EnemyType]
	if !ok {
		return NoneCommand()
	}

	ctx := context{
		entity:         entity,
		position:       position,
		playerPosition: playerPosition,
		state:          state,
		delta:          delta,
	}

	return s.execute(&tree.Root, ctx)
}

// execute 递归求值行为树节点
func (s *System) execute(behavior *Behavior, ctx context) Command {
	switch behavior.Kind {
	case BehaviorSequence, BehaviorSelector:
		// 两者故意采用相同的短路语义: 返回第一个非空指令。
		// 与教科书式行为树不同，但与实际调出的数值绑定，保持原样。
		for i := range behavior.Children {
			if result := s.execute(&behavior.Children[i], ctx); !result.IsNone() {
				return result
			}
		}
		return NoneCommand()

	case BehaviorParallel:
		var commands []Command
		for i := range behavior.Children {
			if result := s.execute(&behavior.Children[i], ctx); !result.IsNone() {
				commands = append(commands, result)
			}
		}
		if len(commands) == 0 {
			return NoneCommand()
		}
		return Command{Kind: CommandMultiple, Commands: commands}

	case BehaviorMoveToPlayer:
		direction := ctx.playerPosition.AsVec2().Sub(ctx.position.AsVec2()).Normalize()
		return MoveCommand(direction, behavior.Speed)

	case BehaviorCircleStrafe:
		return s.circleStrafe(behavior, ctx)

	case BehaviorFireAtPlayer:
		direction := ctx.playerPosition.AsVec2().Sub(ctx.position.AsVec2()).Normalize()
		// 精度越低散布越大
		inaccuracy := (1.0 - behavior.Accuracy) * 0.5
		offset := mathx.NewVec2(
			(s.rng.Float64()-0.5)*inaccuracy,
			(s.rng.Float64()-0.5)*inaccuracy,
		)
		return FireCommand(direction.Add(offset).Normalize())

	case BehaviorEvade:
		return s.evade(behavior, ctx)

	case BehaviorFormationFly:
		target := calculateFormationPosition(
			ctx.playerPosition.AsVec2(),
			ctx.state.FormationOffset,
			behavior.Pattern,
		)
		direction := target.Sub(ctx.position.AsVec2()).Normalize()
		return MoveCommand(direction, 120.0)

	case BehaviorKamikazeDive:
		direction := ctx.playerPosition.AsVec2().Sub(ctx.position.AsVec2()).Normalize()
		return MoveCommand(direction, 300.0)

	default:
		return NoneCommand()
	}
}

// circleStrafe 维持[0.8r, 1.2r]的环绕带: 太近后退，太远接近，否则切向机动
func (s *System) circleStrafe(behavior *Behavior, ctx context) Command {
	toPlayer := ctx.playerPosition.AsVec2().Sub(ctx.position.AsVec2())
	distance := toPlayer.Magnitude()

	switch {
	case distance < behavior.Radius*0.8:
		return MoveCommand(toPlayer.Normalize().Scale(-1), behavior.Speed)
	case distance > behavior.Radius*1.2:
		return MoveCommand(toPlayer.Normalize(), behavior.Speed)
	default:
		perpendicular := toPlayer.Perpendicular().Normalize()
		return MoveCommand(perpendicular, behavior.Speed)
	}
}

// evade 在(duration+2)长度的周期内，前duration时间垂直闪避，
// 闪避方向按计时器整数奇偶交替
func (s *System) evade(behavior *Behavior, ctx context) Command {
	if math.Mod(ctx.state.StateTimer, behavior.Duration+2.0) >= behavior.Duration {
		return NoneCommand()
	}

	toPlayer := ctx.playerPosition.AsVec2().Sub(ctx.position.AsVec2())
	perpendicular := toPlayer.Perpendicular().Normalize()
	sign := 1.0
	if int(ctx.state.StateTimer)%2 != 0 {
		sign = -1.0
	}

	return MoveCommand(perpendicular.Scale(sign), 250.0)
}

// calculateFormationPosition 由编队偏移和样式计算世界坐标目标点
func calculateFormationPosition(base, offset mathx.Vec2, pattern FormationPattern) mathx.Vec2 {
	switch pattern {
	case FormationV:
		return base.Add(mathx.NewVec2(offset.X*50.0, offset.Y*-30.0))
	case FormationLine:
		return base.Add(mathx.NewVec2(offset.X*80.0, 0))
	case FormationCircle:
		angle := offset.X * math.Pi * 2.0
		return base.Add(mathx.NewVec2(math.Cos(angle)*100.0, math.Sin(angle)*100.0))
	case FormationDiamond:
		return base.Add(mathx.NewVec2(offset.X*50.0, math.Abs(offset.Y-0.5)*100.0))
	default:
		return base.Add(offset)
	}
}
