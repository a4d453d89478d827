package gateway

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jacl-coder/StormWing-Server/internal/models"
	"github.com/jacl-coder/StormWing-Server/internal/state"
	"github.com/jacl-coder/StormWing-Server/pkg/db"
)

// maxSaveDocumentSize 存档文档大小上限
const maxSaveDocumentSize = 256 * 1024

// ProfileHandler 玩家资料处理器
type ProfileHandler struct{}

// NewProfileHandler 创建玩家资料处理器
func NewProfileHandler() *ProfileHandler {
	return &ProfileHandler{}
}

// RegisterHandlers 注册HTTP处理器
func (h *ProfileHandler) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/players/", h.handlePlayerRoutes)
}

// ProfileResponse 资料响应
type ProfileResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// UpdateProfileRequest 更新资料请求
type UpdateProfileRequest struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

// handlePlayerRoutes 处理玩家相关请求
func (h *ProfileHandler) handlePlayerRoutes(w http.ResponseWriter, r *http.Request) {
	// 解析URL路径
	path := strings.TrimPrefix(r.URL.Path, "/players/")
	parts := strings.Split(path, "/")

	if len(parts) < 2 {
		h.sendErrorResponse(w, "无效的请求路径", http.StatusBadRequest)
		return
	}

	playerID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		h.sendErrorResponse(w, "无效的玩家ID", http.StatusBadRequest)
		return
	}

	switch parts[1] {
	case "profile":
		switch r.Method {
		case http.MethodGet:
			h.handleGetPlayerProfile(w, r, playerID)
		case http.MethodPut:
			h.handleUpdatePlayerProfile(w, r, playerID)
		default:
			h.sendErrorResponse(w, "仅支持GET和PUT方法", http.StatusMethodNotAllowed)
		}
	case "save":
		switch r.Method {
		case http.MethodGet:
			h.handleGetSaveState(w, r, playerID)
		case http.MethodPut:
			h.handlePutSaveState(w, r, playerID)
		default:
			h.sendErrorResponse(w, "仅支持GET和PUT方法", http.StatusMethodNotAllowed)
		}
	default:
		h.sendErrorResponse(w, "未知的请求路径", http.StatusNotFound)
	}
}

// handleGetPlayerProfile 处理获取玩家资料
func (h *ProfileHandler) handleGetPlayerProfile(w http.ResponseWriter, r *http.Request, playerID int64) {
	// 查询玩家基本信息
	player, err := h.getPlayerByID(playerID)
	if err != nil {
		if err == sql.ErrNoRows {
			h.sendErrorResponse(w, "玩家不存在", http.StatusNotFound)
			return
		}
		log.Printf("查询玩家信息失败: %v", err)
		h.sendErrorResponse(w, "查询玩家信息失败", http.StatusInternalServerError)
		return
	}

	// 返回成功响应
	h.sendSuccessResponse(w, "查询成功", player)
}

// handleUpdatePlayerProfile 处理更新玩家资料
func (h *ProfileHandler) handleUpdatePlayerProfile(w http.ResponseWriter, r *http.Request, playerID int64) {
	// 解析请求
	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendErrorResponse(w, "无效的请求格式", http.StatusBadRequest)
		return
	}

	// 验证请求数据
	if req.Username == "" && req.Email == "" {
		h.sendErrorResponse(w, "至少需要提供一个更新字段", http.StatusBadRequest)
		return
	}

	// 检查玩家是否存在
	exists, err := h.checkPlayerExists(playerID)
	if err != nil {
		log.Printf("检查玩家存在性失败: %v", err)
		h.sendErrorResponse(w, "检查玩家信息失败", http.StatusInternalServerError)
		return
	}

	if !exists {
		h.sendErrorResponse(w, "玩家不存在", http.StatusNotFound)
		return
	}

	// 更新玩家信息
	err = h.updatePlayerProfile(playerID, &req)
	if err != nil {
		log.Printf("更新玩家资料失败: %v", err)
		// 检查是否是唯一约束冲突
		if strings.Contains(err.Error(), "duplicate key") {
			if strings.Contains(err.Error(), "username") {
				h.sendErrorResponse(w, "用户名已存在", http.StatusConflict)
			} else if strings.Contains(err.Error(), "email") {
				h.sendErrorResponse(w, "邮箱已存在", http.StatusConflict)
			} else {
				h.sendErrorResponse(w, "数据冲突", http.StatusConflict)
			}
			return
		}
		h.sendErrorResponse(w, "更新玩家资料失败", http.StatusInternalServerError)
		return
	}

	// 返回成功响应
	h.sendSuccessResponse(w, "更新成功", nil)
}

// handleGetSaveState 处理读取存档
func (h *ProfileHandler) handleGetSaveState(w http.ResponseWriter, r *http.Request, playerID int64) {
	document, err := h.getSaveDocument(playerID)
	if err != nil {
		if err == sql.ErrNoRows {
			// 无存档时返回初始状态
			initial := state.NewGameState()
			h.sendSuccessResponse(w, "无存档，返回初始状态", initial)
			return
		}
		log.Printf("读取存档失败: %v", err)
		h.sendErrorResponse(w, "读取存档失败", http.StatusInternalServerError)
		return
	}

	// 解码校验，损坏的存档不下发
	gameState, err := state.FromJSON(document)
	if err != nil {
		if errors.Is(err, state.ErrCorruptState) {
			log.Printf("玩家 %d 的存档已损坏: %v", playerID, err)
			h.sendErrorResponse(w, "存档已损坏", http.StatusConflict)
			return
		}
		log.Printf("解析存档失败: %v", err)
		h.sendErrorResponse(w, "读取存档失败", http.StatusInternalServerError)
		return
	}

	h.sendSuccessResponse(w, "查询成功", gameState)
}

// handlePutSaveState 处理写入存档
func (h *ProfileHandler) handlePutSaveState(w http.ResponseWriter, r *http.Request, playerID int64) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxSaveDocumentSize))
	if err != nil {
		h.sendErrorResponse(w, "读取请求失败", http.StatusBadRequest)
		return
	}

	// 先解码校验再入库，拒绝损坏的文档
	gameState, err := state.FromJSON(body)
	if err != nil {
		h.sendErrorResponse(w, "无效的存档格式", http.StatusBadRequest)
		return
	}

	// 检查玩家是否存在
	exists, err := h.checkPlayerExists(playerID)
	if err != nil {
		log.Printf("检查玩家存在性失败: %v", err)
		h.sendErrorResponse(w, "检查玩家信息失败", http.StatusInternalServerError)
		return
	}

	if !exists {
		h.sendErrorResponse(w, "玩家不存在", http.StatusNotFound)
		return
	}

	// 重新序列化，只存储规范化后的文档
	document, err := gameState.ToJSON()
	if err != nil {
		log.Printf("序列化存档失败: %v", err)
		h.sendErrorResponse(w, "保存存档失败", http.StatusInternalServerError)
		return
	}

	if err := h.putSaveDocument(playerID, document); err != nil {
		log.Printf("保存存档失败: %v", err)
		h.sendErrorResponse(w, "保存存档失败", http.StatusInternalServerError)
		return
	}

	// 返回成功响应
	h.sendSuccessResponse(w, "保存成功", nil)
}

// sendSuccessResponse 发送成功响应
func (h *ProfileHandler) sendSuccessResponse(w http.ResponseWriter, message string, data interface{}) {
	resp := ProfileResponse{
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
func (h *ProfileHandler) sendErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	resp := ProfileResponse{
		Success: false,
		Message: message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("编码错误响应失败: %v", err)
	}
}

// 数据库查询方法

// getPlayerByID 根据ID获取玩家信息
func (h *ProfileHandler) getPlayerByID(playerID int64) (*models.Player, error) {
	query := `
		SELECT id, username, email, created_at, updated_at, squadron_level, squadron_xp,
		       total_runs, total_score, highest_score, highest_zone, enemies_defeated, total_playtime
		FROM players
		WHERE id = $1
	`

	var player models.Player
	err := db.DB.QueryRow(query, playerID).Scan(
		&player.ID, &player.Username, &player.Email, &player.CreatedAt, &player.UpdatedAt,
		&player.SquadronLevel, &player.SquadronXP,
		&player.TotalRuns, &player.TotalScore, &player.HighestScore, &player.HighestZone,
		&player.EnemiesDefeated, &player.TotalPlaytime,
	)

	if err != nil {
		return nil, err
	}

	return &player, nil
}

// checkPlayerExists 检查玩家是否存在
func (h *ProfileHandler) checkPlayerExists(playerID int64) (bool, error) {
	query := `SELECT COUNT(1) FROM players WHERE id = $1`

	var count int
	err := db.DB.QueryRow(query, playerID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("检查玩家存在性失败: %w", err)
	}

	return count > 0, nil
}

// updatePlayerProfile 更新玩家资料
func (h *ProfileHandler) updatePlayerProfile(playerID int64, req *UpdateProfileRequest) error {
	// 构建动态更新SQL
	setParts := []string{}
	args := []interface{}{}
	argIndex := 1

	if req.Username != "" {
		setParts = append(setParts, fmt.Sprintf("username = $%d", argIndex))
		args = append(args, req.Username)
		argIndex++
	}

	if req.Email != "" {
		setParts = append(setParts, fmt.Sprintf("email = $%d", argIndex))
		args = append(args, req.Email)
		argIndex++
	}

	// 添加更新时间
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", argIndex))
	args = append(args, time.Now())
	argIndex++

	// 添加WHERE条件
	args = append(args, playerID)

	query := fmt.Sprintf(`
		UPDATE players
		SET %s
		WHERE id = $%d
	`, strings.Join(setParts, ", "), argIndex)

	_, err := db.DB.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("更新玩家资料失败: %w", err)
	}

	return nil
}

// getSaveDocument 读取存档文档
func (h *ProfileHandler) getSaveDocument(playerID int64) ([]byte, error) {
	query := `SELECT document FROM save_states WHERE player_id = $1`

	var document []byte
	err := db.DB.QueryRow(query, playerID).Scan(&document)
	if err != nil {
		return nil, err
	}

	return document, nil
}

// putSaveDocument 写入存档文档
func (h *ProfileHandler) putSaveDocument(playerID int64, document []byte) error {
	// 使用 UPSERT 语法（PostgreSQL）
	query := `
		INSERT INTO save_states (player_id, document, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (player_id)
		DO UPDATE SET document = EXCLUDED.document, updated_at = NOW()
	`

	_, err := db.DB.Exec(query, playerID, document)
	if err != nil {
		return fmt.Errorf("写入存档失败: %w", err)
	}

	return nil
}
