// hangar.go

package gateway

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/jacl-coder/StormWing-Server/internal/models"
	"github.com/jacl-coder/StormWing-Server/internal/state"
	"github.com/jacl-coder/StormWing-Server/pkg/db"
)

// HangarHandler 机库处理器
type HangarHandler struct{}

// NewHangarHandler 创建机库处理器
func NewHangarHandler() *HangarHandler {
	return &HangarHandler{}
}

// RegisterHandlers 注册HTTP处理器
func (h *HangarHandler) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/hangar", h.handleAircraftList)
	mux.HandleFunc("/hangar/", h.handleAircraftDetail)
	mux.HandleFunc("/players/hangar/", h.handlePlayerHangar)
}

// AircraftInfo 机型信息
type AircraftInfo struct {
	Type          models.AircraftType `json:"type"`
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	MaxHealth     int                 `json:"max_health"`
	Speed         float64             `json:"speed"`
	Weapon        string              `json:"weapon"`
	UnlockLevel   int                 `json:"unlock_level"`
	DefaultUnlock bool                `json:"default_unlock"`
}

// PlayerAircraftInfo 玩家机库条目
type PlayerAircraftInfo struct {
	AircraftInfo
	Unlocked bool `json:"unlocked"`
}

// HangarResponse 机库响应
type HangarResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// aircraftCatalog 内置机型目录
var aircraftCatalog = []AircraftInfo{
	{
		Type:          models.AircraftSpitfire,
		Name:          "Spitfire",
		Description:   "均衡的主力战斗机，适合新飞行员",
		MaxHealth:     100,
		Speed:         250,
		Weapon:        "Browning M2",
		UnlockLevel:   1,
		DefaultUnlock: true,
	},
	{
		Type:        models.AircraftMustang,
		Name:        "Mustang",
		Description: "牺牲部分装甲换取更高速度",
		MaxHealth:   90,
		Speed:       280,
		Weapon:      "Browning M2",
		UnlockLevel: 3,
	},
	{
		Type:        models.AircraftCorsair,
		Name:        "Corsair",
		Description: "装甲更厚的多用途战斗机",
		MaxHealth:   110,
		Speed:       230,
		Weapon:      "Browning M2",
		UnlockLevel: 5,
	},
	{
		Type:        models.AircraftThunderbolt,
		Name:        "Thunderbolt",
		Description: "重装甲攻击机，机动性较差",
		MaxHealth:   130,
		Speed:       200,
		Weapon:      "Twin Browning",
		UnlockLevel: 8,
	},
	{
		Type:        models.AircraftLightning,
		Name:        "Lightning",
		Description: "极速截击机，装甲最薄",
		MaxHealth:   80,
		Speed:       300,
		Weapon:      "Twin Browning",
		UnlockLevel: 12,
	},
}

// handleAircraftList 处理机型列表查询
func (h *HangarHandler) handleAircraftList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.sendErrorResponse(w, "仅支持GET方法", http.StatusMethodNotAllowed)
		return
	}

	// 返回成功响应
	h.sendSuccessResponse(w, "查询成功", aircraftCatalog)
}

// handleAircraftDetail 处理机型详情查询
func (h *HangarHandler) handleAircraftDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.sendErrorResponse(w, "仅支持GET方法", http.StatusMethodNotAllowed)
		return
	}

	// 提取机型标识
	path := strings.TrimPrefix(r.URL.Path, "/hangar/")
	aircraftType := models.AircraftType(path)

	// 在目录中查找机型
	for i := range aircraftCatalog {
		if aircraftCatalog[i].Type == aircraftType {
			h.sendSuccessResponse(w, "查询成功", &aircraftCatalog[i])
			return
		}
	}

	h.sendErrorResponse(w, "机型不存在", http.StatusNotFound)
}

// handlePlayerHangar 处理玩家机库查询
func (h *HangarHandler) handlePlayerHangar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.sendErrorResponse(w, "仅支持GET方法", http.StatusMethodNotAllowed)
		return
	}

	// 提取玩家ID - 路径格式: /players/hangar/{player_id}
	path := strings.TrimPrefix(r.URL.Path, "/players/hangar/")
	playerID, err := strconv.ParseInt(path, 10, 64)
	if err != nil {
		h.sendErrorResponse(w, "无效的玩家ID", http.StatusBadRequest)
		return
	}

	// 从存档读取解锁状态
	unlocked, err := h.getUnlockedAircraft(playerID)
	if err != nil {
		log.Printf("查询玩家机库失败: %v", err)
		h.sendErrorResponse(w, "查询玩家机库失败", http.StatusInternalServerError)
		return
	}

	// 构建玩家机库视图
	hangar := make([]PlayerAircraftInfo, 0, len(aircraftCatalog))
	for _, aircraft := range aircraftCatalog {
		hangar = append(hangar, PlayerAircraftInfo{
			AircraftInfo: aircraft,
			Unlocked:     unlocked[aircraft.Type] || aircraft.DefaultUnlock,
		})
	}

	// 返回成功响应
	h.sendSuccessResponse(w, "查询成功", hangar)
}

// getUnlockedAircraft 从玩家存档中读取机型解锁表
func (h *HangarHandler) getUnlockedAircraft(playerID int64) (map[models.AircraftType]bool, error) {
	var document []byte
	err := db.DB.QueryRow(`SELECT document FROM save_states WHERE player_id = $1`, playerID).Scan(&document)
	if err != nil {
		if err == sql.ErrNoRows {
			// 无存档时按初始成长状态处理
			meta := state.NewMetaProgression()
			return meta.UnlockedAircraft, nil
		}
		return nil, err
	}

	gameState, err := state.FromJSON(document)
	if err != nil {
		// 存档损坏时回退到初始解锁状态，不阻断机库查询
		log.Printf("玩家 %d 的存档解析失败，按初始解锁处理: %v", playerID, err)
		meta := state.NewMetaProgression()
		return meta.UnlockedAircraft, nil
	}

	return gameState.MetaProgression.UnlockedAircraft, nil
}

// sendSuccessResponse 发送成功响应
func (h *HangarHandler) sendSuccessResponse(w http.ResponseWriter, message string, data interface{}) {
	resp := HangarResponse{
		Success: true,
		Message: message,
		Data:    data,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("编码响应失败: %v", err)
	}
}

// sendErrorResponse 发送错误响应
func (h *HangarHandler) sendErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	resp := HangarResponse{
		Success: false,
		Message: message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("编码错误响应失败: %v", err)
	}
}
