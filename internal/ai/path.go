// path.go

package ai

import (
	"math"

	"github.com/jacl-coder/StormWing-Server/internal/mathx"
)

// Path 由路径点构成的入场航线，可选择首尾循环
type Path struct {
	Waypoints []mathx.Vec2 `json:"waypoints"`
	Loop      bool         `json:"loop"`
}

// NewPath 创建非循环路径
func NewPath(waypoints []mathx.Vec2) Path {
	return Path{Waypoints: waypoints}
}

// LoopingPath 创建循环路径
func LoopingPath(waypoints []mathx.Vec2) Path {
	return Path{Waypoints: waypoints, Loop: true}
}

// PositionAt 按归一化参数t∈[0,1]在路径上线性插值。
// 空路径返回false，单点路径恒定返回该点。
func (p Path) PositionAt(t float64) (mathx.Vec2, bool) {
	if len(p.Waypoints) == 0 {
		return mathx.Vec2{}, false
	}
	if len(p.Waypoints) == 1 {
		return p.Waypoints[0], true
	}

	totalSegments := float64(len(p.Waypoints) - 1)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	if p.Loop {
		t = math.Mod(t, 1.0)
	}

	segmentFloat := t * totalSegments
	segmentIndex := int(math.Floor(segmentFloat))
	localT := segmentFloat - float64(segmentIndex)

	if segmentIndex >= len(p.Waypoints)-1 {
		return p.Waypoints[len(p.Waypoints)-1], true
	}

	start := p.Waypoints[segmentIndex]
	end := p.Waypoints[segmentIndex+1]
	return start.Add(end.Sub(start).Scale(localT)), true
}
