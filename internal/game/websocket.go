// websocket.go

package game

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jacl-coder/StormWing-Server/internal/gateway"
	"github.com/jacl-coder/StormWing-Server/internal/mathx"
	"github.com/jacl-coder/StormWing-Server/internal/models"
	"github.com/jacl-coder/StormWing-Server/internal/protocol"
	"github.com/jacl-coder/StormWing-Server/internal/upgrade"
)

const (
	// 写入超时时间
	writeWait = 10 * time.Second

	// 读取超时时间
	pongWait = 60 * time.Second

	// 发送 ping 的间隔时间
	pingPeriod = (pongWait * 9) / 10

	// 最大消息大小
	maxMessageSize = 64 * 1024 // 64KB
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// 允许所有跨域请求
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message 消息结构
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// StartRunPayload 开局请求
type StartRunPayload struct {
	Aircraft string `json:"aircraft"`
	Seed     int64  `json:"seed,omitempty"`
}

// JoinRoomPayload 加入房间请求
type JoinRoomPayload struct {
	RoomID string `json:"room_id"`
}

// PlayerInputPayload 玩家输入
type PlayerInputPayload struct {
	MoveX  float64 `json:"move_x"`
	MoveY  float64 `json:"move_y"`
	AimX   float64 `json:"aim_x"`
	AimY   float64 `json:"aim_y"`
	Firing bool    `json:"firing"`
}

// ChooseUpgradePayload 升级选择
type ChooseUpgradePayload struct {
	UpgradeID int `json:"upgrade_id"`
}

// handleWSConnection 处理WebSocket连接
func (s *GameServer) handleWSConnection(w http.ResponseWriter, r *http.Request) {
	// 获取认证信息
	playerID := r.URL.Query().Get("player_id")
	token := r.URL.Query().Get("token")

	if playerID == "" || token == "" {
		http.Error(w, "未授权", http.StatusUnauthorized)
		return
	}

	// 校验JWT令牌与玩家身份是否一致
	claims, err := gateway.ParseToken(token)
	if err != nil || claims.PlayerID != parseInt64(playerID) {
		http.Error(w, "未授权", http.StatusUnauthorized)
		return
	}

	// 升级HTTP连接为WebSocket
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket升级失败: %v", err)
		return
	}

	// 创建玩家连接
	playerConn := &PlayerConnection{
		ID:         uuid.New().String(),
		PlayerID:   claims.PlayerID,
		LastActive: time.Now(),
		Send:       make(chan []byte, 256),
		IsAlive:    true,
	}

	// 添加到连接列表
	s.connMutex.Lock()
	s.connections[playerConn.ID] = playerConn
	s.connMutex.Unlock()

	log.Printf("玩家 %s 已连接", playerID)

	// 启动读写协程
	go s.readPump(conn, playerConn)
	go s.writePump(conn, playerConn)
}

// readPump 从WebSocket读取数据
func (s *GameServer) readPump(conn *websocket.Conn, player *PlayerConnection) {
	defer func() {
		s.closeConnection(player)
		conn.Close()
	}()

	// 设置读取参数
	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket错误: %v", err)
			}
			break
		}

		player.LastActive = time.Now()

		// 处理接收到的消息
		s.handleMessage(player, message)
	}
}

// writePump 向WebSocket写入数据
func (s *GameServer) writePump(conn *websocket.Conn, player *PlayerConnection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case message, ok := <-player.Send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// 通道已关闭
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// 添加队列中的其他消息
			n := len(player.Send)
			for i := 0; i < n; i++ {
				w.Write([]byte("\n"))
				w.Write(<-player.Send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// closeConnection 关闭玩家连接
func (s *GameServer) closeConnection(player *PlayerConnection) {
	s.connMutex.Lock()
	defer s.connMutex.Unlock()

	// 检查连接是否已关闭
	if _, ok := s.connections[player.ID]; !ok {
		return
	}

	// 如果玩家在房间中，从房间移除
	if player.Room != nil {
		player.Room.RemovePlayer(player.ID)
		player.Room = nil
	}

	// 关闭发送通道
	close(player.Send)

	// 从连接列表移除
	delete(s.connections, player.ID)

	log.Printf("玩家 %d 已断开连接", player.PlayerID)
}

// handleMessage 处理接收到的消息
func (s *GameServer) handleMessage(player *PlayerConnection, data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Printf("解析消息失败: %v", err)
		return
	}

	switch msg.Type {
	case "start_run":
		s.handleStartRun(player, msg.Payload)
	case "join_room":
		s.handleJoinRoom(player, msg.Payload)
	case "leave_room":
		s.handleLeaveRoom(player)
	case "ready":
		s.handlePlayerReady(player, true)
	case "unready":
		s.handlePlayerReady(player, false)
	case "player_input":
		s.handlePlayerInput(player, msg.Payload)
	case "choose_upgrade":
		s.handleChooseUpgrade(player, msg.Payload)
	default:
		log.Printf("未知消息类型: %s", msg.Type)
	}
}

// handleStartRun 创建房间并开始新的一局
func (s *GameServer) handleStartRun(player *PlayerConnection, payload json.RawMessage) {
	var req StartRunPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		s.sendMessage(player, protocol.CreateErrorResponse("请求格式错误", "INVALID_PAYLOAD"))
		return
	}

	if player.Room != nil {
		s.sendMessage(player, protocol.CreateErrorResponse("已在对局中", "ALREADY_IN_ROOM"))
		return
	}

	seed := req.Seed
	if seed == 0 {
		seed = s.config.Game.DefaultSeed
	}

	room, err := s.CreateRoom(player.PlayerID, seed, models.AircraftType(req.Aircraft))
	if err != nil {
		s.sendMessage(player, protocol.CreateErrorResponse(err.Error(), "CREATE_ROOM_FAILED"))
		return
	}

	if err := room.AddPlayer(player); err != nil {
		s.sendMessage(player, protocol.CreateErrorResponse(err.Error(), "JOIN_FAILED"))
		return
	}

	player.Room = room
	s.sendMessage(player, Message{
		Type:    "room_created",
		Payload: mustMarshal(map[string]string{"room_id": room.ID}),
	})
}

// handleJoinRoom 处理加入房间请求
func (s *GameServer) handleJoinRoom(player *PlayerConnection, payload json.RawMessage) {
	var req JoinRoomPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		s.sendMessage(player, protocol.CreateErrorResponse("请求格式错误", "INVALID_PAYLOAD"))
		return
	}

	room, exists := s.GetRoom(req.RoomID)
	if !exists {
		s.sendMessage(player, protocol.CreateErrorResponse("房间不存在", "ROOM_NOT_FOUND"))
		return
	}

	if err := room.AddPlayer(player); err != nil {
		s.sendMessage(player, protocol.CreateErrorResponse(err.Error(), "JOIN_FAILED"))
		return
	}

	player.Room = room
	s.sendMessage(player, protocol.CreateSuccessResponse("加入房间成功"))
}

// handleLeaveRoom 处理离开房间请求
func (s *GameServer) handleLeaveRoom(player *PlayerConnection) {
	if player.Room != nil {
		player.Room.RemovePlayer(player.ID)
		player.Room = nil

		// 发送离开房间确认
		s.sendMessage(player, Message{
			Type: "leave_room_confirm",
		})
	}
}

// handlePlayerReady 处理玩家准备/取消准备
func (s *GameServer) handlePlayerReady(player *PlayerConnection, ready bool) {
	if player.Room == nil {
		return
	}
	player.Room.SetPlayerReady(player.ID, ready)
}

// handlePlayerInput 处理玩家输入
func (s *GameServer) handlePlayerInput(player *PlayerConnection, payload json.RawMessage) {
	if player.Room == nil {
		return
	}

	var input PlayerInputPayload
	if err := json.Unmarshal(payload, &input); err != nil {
		return
	}

	player.Room.SetPlayerInput(
		mathx.NewVec2(input.MoveX, input.MoveY),
		mathx.NewVec2(input.AimX, input.AimY),
		input.Firing,
	)
}

// handleChooseUpgrade 处理升级选择
func (s *GameServer) handleChooseUpgrade(player *PlayerConnection, payload json.RawMessage) {
	if player.Room == nil {
		return
	}

	var req ChooseUpgradePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return
	}

	if err := player.Room.ChooseUpgrade(req.UpgradeID); err != nil {
		s.sendMessage(player, protocol.CreateErrorResponse(err.Error(), "INVALID_UPGRADE"))
	}
}

// sendMessage 向玩家发送消息
func (s *GameServer) sendMessage(player *PlayerConnection, msg interface{}) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("序列化消息失败: %v", err)
		return
	}

	select {
	case player.Send <- data:
		// 消息已发送到通道
	default:
		// 通道已满，关闭连接
		s.closeConnection(player)
	}
}

// 房间广播

// broadcast 将消息序列化后推送给房间内所有连接
func (r *Room) broadcast(msgType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("序列化广播消息失败: %v", err)
		return
	}

	envelope, err := json.Marshal(Message{Type: msgType, Payload: data})
	if err != nil {
		log.Printf("序列化广播消息失败: %v", err)
		return
	}

	r.playerMutex.RLock()
	defer r.playerMutex.RUnlock()

	for _, player := range r.players {
		if player.Connection == nil {
			continue
		}
		select {
		case player.Connection.Send <- envelope:
			// 消息已发送
		default:
			// 通道已满，跳过
		}
	}
}

// broadcastFrame 广播当前游戏帧
func (r *Room) broadcastFrame(collisions []*protocol.CollisionEvent) {
	frame := &protocol.GameFrame{
		FrameID:    r.frameID,
		Timestamp:  time.Now().UnixNano() / int64(time.Millisecond),
		Zone:       int32(r.run.Zone),
		Wave:       int32(r.waveIndex),
		Score:      int64(r.run.Score),
		Collisions: collisions,
	}

	frame.Player = &protocol.PlayerState{
		Entity:    protocol.ConvertEntity(r.player.entity),
		Aircraft:  string(r.player.aircraft),
		Position:  protocol.ConvertVec2(r.player.position.AsVec2()),
		Velocity:  protocol.ConvertVec2(r.player.velocity.AsVec2()),
		Health:    int32(r.player.health.Current),
		MaxHealth: int32(r.player.health.Max),
	}

	for entity, enemy := range r.enemies {
		frame.Enemies = append(frame.Enemies, &protocol.EnemyState{
			Entity:    protocol.ConvertEntity(entity),
			EnemyType: string(enemy.enemyType),
			Position:  protocol.ConvertVec2(enemy.position.AsVec2()),
			Velocity:  protocol.ConvertVec2(enemy.velocity.AsVec2()),
			Health:    int32(enemy.health.Current),
			MaxHealth: int32(enemy.health.Max),
			Elite:     enemy.elite,
		})
	}

	for i := range r.projectiles {
		frame.Projectiles = append(frame.Projectiles, protocol.ConvertProjectileToState(&r.projectiles[i]))
	}

	r.broadcast("game_frame", frame)
}

// broadcastZoneInfo 广播当前区域信息
func (r *Room) broadcastZoneInfo() {
	r.broadcast("zone_info", protocol.ConvertZoneToInfo(r.zone))
}

// broadcastUpgradeOffer 广播升级候选
func (r *Room) broadcastUpgradeOffer(zone int, choices []upgrade.Upgrade) {
	r.broadcast("upgrade_offer", protocol.CreateUpgradeOffer(zone, choices))
}

// broadcastRunResult 广播单局结算
func (r *Room) broadcastRunResult(record *models.RunRecord) {
	names := make([]string, len(r.pickedUpgrades))
	for i, picked := range r.pickedUpgrades {
		names[i] = picked.Name
	}

	r.broadcast("run_result", &protocol.RunResult{
		RunID:           record.ID,
		Score:           record.Score,
		FinalZone:       int32(record.FinalZone),
		EnemiesDefeated: int32(record.EnemiesDefeated),
		Duration:        int32(record.Duration),
		Upgrades:        names,
	})
}

// 辅助函数

// parseInt64 将字符串转换为int64
func parseInt64(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// mustMarshal 序列化必然成功的小对象
func mustMarshal(v interface{}) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}
