// behavior.go

package ai

import (
	"github.com/jacl-coder/StormWing-Server/internal/mathx"
)

// BehaviorKind 行为树节点类型
type BehaviorKind string

const (
	// BehaviorSequence 顺序节点: 依次执行子节点，返回第一个非空指令
	BehaviorSequence BehaviorKind = "sequence"
	// BehaviorSelector 选择节点: 依次执行子节点，返回第一个非空指令
	BehaviorSelector BehaviorKind = "selector"
	// BehaviorParallel 并行节点: 执行所有子节点并合并非空指令
	BehaviorParallel BehaviorKind = "parallel"
	// BehaviorMoveToPlayer 朝玩家移动
	BehaviorMoveToPlayer BehaviorKind = "move_to_player"
	// BehaviorCircleStrafe 绕玩家环绕机动
	BehaviorCircleStrafe BehaviorKind = "circle_strafe"
	// BehaviorFireAtPlayer 朝玩家开火
	BehaviorFireAtPlayer BehaviorKind = "fire_at_player"
	// BehaviorEvade 周期性闪避
	BehaviorEvade BehaviorKind = "evade"
	// BehaviorFormationFly 编队飞行
	BehaviorFormationFly BehaviorKind = "formation_fly"
	// BehaviorKamikazeDive 自杀式俯冲
	BehaviorKamikazeDive BehaviorKind = "kamikaze_dive"
)

// Behavior 行为树节点。组合节点持有子节点列表，叶子节点持有参数。
// 树本身是纯数据，由单个递归函数求值，因此可以序列化用于数值调优。
type Behavior struct {
	Kind     BehaviorKind `json:"kind"`
	Children []Behavior   `json:"children,omitempty"`

	// 叶子节点参数
	Speed    float64          `json:"speed,omitempty"`
	Radius   float64          `json:"radius,omitempty"`
	Accuracy float64          `json:"accuracy,omitempty"`
	Duration float64          `json:"duration,omitempty"`
	Pattern  FormationPattern `json:"pattern,omitempty"`
}

// BehaviorTree 行为树，按敌机类型共享只读
type BehaviorTree struct {
	Root Behavior `json:"root"`
}

// Sequence 创建顺序节点
func Sequence(children ...Behavior) Behavior {
	return Behavior{Kind: BehaviorSequence, Children: children}
}

// Selector 创建选择节点
func Selector(children ...Behavior) Behavior {
	return Behavior{Kind: BehaviorSelector, Children: children}
}

// Parallel 创建并行节点
func Parallel(children ...Behavior) Behavior {
	return Behavior{Kind: BehaviorParallel, Children: children}
}

// MoveToPlayer 创建朝玩家移动的叶子节点
func MoveToPlayer(speed float64) Behavior {
	return Behavior{Kind: BehaviorMoveToPlayer, Speed: speed}
}

// CircleStrafe 创建环绕机动的叶子节点
func CircleStrafe(radius, speed float64) Behavior {
	return Behavior{Kind: BehaviorCircleStrafe, Radius: radius, Speed: speed}
}

// FireAtPlayer 创建朝玩家开火的叶子节点
func FireAtPlayer(accuracy float64) Behavior {
	return Behavior{Kind: BehaviorFireAtPlayer, Accuracy: accuracy}
}

// Evade 创建周期性闪避的叶子节点
func Evade(duration float64) Behavior {
	return Behavior{Kind: BehaviorEvade, Duration: duration}
}

// FormationFly 创建编队飞行的叶子节点
func FormationFly(pattern FormationPattern) Behavior {
	return Behavior{Kind: BehaviorFormationFly, Pattern: pattern}
}

// KamikazeDive 创建自杀式俯冲的叶子节点
func KamikazeDive() Behavior {
	return Behavior{Kind: BehaviorKamikazeDive}
}

// FormationPattern 编队样式
type FormationPattern string

const (
	// FormationV V字编队
	FormationV FormationPattern = "v"
	// FormationLine 横列编队
	FormationLine FormationPattern = "line"
	// FormationCircle 环形编队
	FormationCircle FormationPattern = "circle"
	// FormationDiamond 菱形编队
	FormationDiamond FormationPattern = "diamond"
)

// CommandKind AI指令类型
type CommandKind string

const (
	// CommandNone 空指令
	CommandNone CommandKind = "none"
	// CommandMove 移动指令
	CommandMove CommandKind = "move"
	// CommandFire 开火指令
	CommandFire CommandKind = "fire"
	// CommandMultiple 复合指令
	CommandMultiple CommandKind = "multiple"
)

// Command AI引擎输出的行动意图。引擎只产生意图，
// 由外部的移动/武器应用方执行。
type Command struct {
	Kind      CommandKind `json:"kind"`
	Direction mathx.Vec2  `json:"direction,omitempty"`
	Speed     float64     `json:"speed,omitempty"`
	Commands  []Command   `json:"commands,omitempty"`
}

// NoneCommand 空指令
func NoneCommand() Command {
	return Command{Kind: CommandNone}
}

// MoveCommand 移动指令
func MoveCommand(direction mathx.Vec2, speed float64) Command {
	return Command{Kind: CommandMove, Direction: direction, Speed: speed}
}

// FireCommand 开火指令
func FireCommand(direction mathx.Vec2) Command {
	return Command{Kind: CommandFire, Direction: direction}
}

// IsNone 是否为空指令
func (c Command) IsNone() bool {
	return c.Kind == CommandNone || c.Kind == ""
}
