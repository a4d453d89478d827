// entity.go

package models

// Entity 实体句柄，由槽位索引和代数组成。
// 槽位被复用时代数递增，持有过期句柄的引用方可以据此发现实体已失效。
type Entity struct {
	Index      uint32 `json:"index"`
	Generation uint32 `json:"generation"`
}

// NewEntity 创建指定索引的实体句柄（代数为0）
func NewEntity(index uint32) Entity {
	return Entity{Index: index}
}

// AircraftType 战机类型
type AircraftType string

const (
	// AircraftSpitfire 喷火战斗机
	AircraftSpitfire AircraftType = "spitfire"
	// AircraftMustang 野马战斗机
	AircraftMustang AircraftType = "mustang"
	// AircraftCorsair 海盗战斗机
	AircraftCorsair AircraftType = "corsair"
	// AircraftThunderbolt 雷电战斗机
	AircraftThunderbolt AircraftType = "thunderbolt"
	// AircraftLightning 闪电战斗机
	AircraftLightning AircraftType = "lightning"
)

// EnemyType 敌机类型
type EnemyType string

const (
	// EnemyFighter 战斗机
	EnemyFighter EnemyType = "fighter"
	// EnemyBomber 轰炸机
	EnemyBomber EnemyType = "bomber"
	// EnemyAce 王牌飞行员
	EnemyAce EnemyType = "ace"
	// EnemyKamikaze 神风自杀机
	EnemyKamikaze EnemyType = "kamikaze"
	// EnemyHeavyBomber 重型轰炸机
	EnemyHeavyBomber EnemyType = "heavy_bomber"
)

// ProjectileOwner 投射物归属方
type ProjectileOwner string

const (
	// OwnerPlayer 玩家投射物
	OwnerPlayer ProjectileOwner = "player"
	// OwnerEnemy 敌方投射物
	OwnerEnemy ProjectileOwner = "enemy"
)

// EntityAllocator 实体槽位分配器。
// 空闲槽位优先复用，复用时对应代数加一，保证旧句柄不会与新实体混淆。
type EntityAllocator struct {
	generations []uint32
	free        []uint32
}

// NewEntityAllocator 创建实体分配器
func NewEntityAllocator() *EntityAllocator {
	return &EntityAllocator{}
}

// Allocate 分配一个实体句柄
func (a *EntityAllocator) Allocate() Entity {
	if n := len(a.free); n > 0 {
		index := a.free[n-1]
		a.free = a.free[:n-1]
		return Entity{Index: index, Generation: a.generations[index]}
	}

	index := uint32(len(a.generations))
	a.generations = append(a.generations, 0)
	return Entity{Index: index}
}

// Free 释放实体句柄，对应槽位进入复用队列
func (a *EntityAllocator) Free(e Entity) {
	if !a.IsAlive(e) {
		return
	}
	a.generations[e.Index]++
	a.free = append(a.free, e.Index)
}

// IsAlive 判断句柄是否仍然指向存活实体
func (a *EntityAllocator) IsAlive(e Entity) bool {
	if int(e.Index) >= len(a.generations) {
		return false
	}
	return a.generations[e.Index] == e.Generation
}

// Count 当前存活实体数量
func (a *EntityAllocator) Count() int {
	return len(a.generations) - len(a.free)
}
