// weighted.go

// Package random 提供模拟核心使用的加权随机选择工具。
// 所有随机性都来自调用方持有的独立随机流，不依赖全局随机状态。
package random

import (
	"math/rand"
)

// Weighted 加权随机选择器。每次根据当前候选与权重重建，
// 选择时线性扫描累减权重。
type Weighted[T any] struct {
	items       []T
	weights     []float64
	totalWeight float64
}

// NewWeighted 创建加权选择器
func NewWeighted[T any]() *Weighted[T] {
	return &Weighted[T]{}
}

// Add 添加候选项及其权重
func (w *Weighted[T]) Add(item T, weight float64) {
	w.items = append(w.items, item)
	w.weights = append(w.weights, weight)
	w.totalWeight += weight
}

// Select 按权重随机选择一项，空选择器返回false。
// 浮点累减可能因精度问题走完全程，此时回退到最后一项。
func (w *Weighted[T]) Select(rng *rand.Rand) (T, bool) {
	var zero T
	if len(w.items) == 0 {
		return zero, false
	}

	random := rng.Float64() * w.totalWeight
	for i, weight := range w.weights {
		if random < weight {
			return w.items[i], true
		}
		random -= weight
	}

	return w.items[len(w.items)-1], true
}

// Len 候选项数量
func (w *Weighted[T]) Len() int {
	return len(w.items)
}

// Clear 清空所有候选项
func (w *Weighted[T]) Clear() {
	w.items = w.items[:0]
	w.weights = w.weights[:0]
	w.totalWeight = 0
}
