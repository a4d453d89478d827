// room.go

package models

// RoomStatus 房间状态
type RoomStatus string

const (
	// RoomWaiting 等待开局
	RoomWaiting RoomStatus = "waiting"
	// RoomPlaying 对局进行中
	RoomPlaying RoomStatus = "playing"
	// RoomEnded 对局已结束
	RoomEnded RoomStatus = "ended"
)
