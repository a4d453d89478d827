// stats.go

package gateway

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/jacl-coder/StormWing-Server/internal/models"
	"github.com/jacl-coder/StormWing-Server/internal/protocol"
	"github.com/jacl-coder/StormWing-Server/pkg/db"
)

// StatsHandler 战绩处理器
type StatsHandler struct {
	redisLeaderboard *models.RedisLeaderboard
	useRedis         bool
}

// NewStatsHandler 创建战绩处理器
func NewStatsHandler() *StatsHandler {
	useRedis := db.RedisClient != nil
	var redisLeaderboard *models.RedisLeaderboard

	if useRedis {
		redisLeaderboard = models.NewRedisLeaderboard()
	}

	return &StatsHandler{
		redisLeaderboard: redisLeaderboard,
		useRedis:         useRedis,
	}
}

// RegisterHandlers 注册HTTP处理器
func (h *StatsHandler) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/stats/player/", h.handlePlayerStats)
	mux.HandleFunc("/stats/runs/", h.handlePlayerRuns)
	mux.HandleFunc("/stats/leaderboard", h.handleLeaderboard)
	mux.HandleFunc("/stats/leaderboard/refresh", h.handleRefreshLeaderboard)
}

// StatsResponse 战绩响应
type StatsResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// PlayerRunsResponse 玩家单局历史响应
type PlayerRunsResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    *PlayerRunsData `json:"data"`
}

// PlayerRunsData 玩家单局历史数据
type PlayerRunsData struct {
	Runs  []models.RunRecord `json:"runs"`
	Total int                `json:"total"`
	Limit int                `json:"limit"`
}

// handlePlayerStats 处理玩家战绩查询
func (h *StatsHandler) handlePlayerStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.sendErrorResponse(w, "仅支持GET方法", http.StatusMethodNotAllowed)
		return
	}

	// 提取玩家ID
	path := strings.TrimPrefix(r.URL.Path, "/stats/player/")
	playerID, err := strconv.ParseInt(path, 10, 64)
	if err != nil {
		h.sendErrorResponse(w, "无效的玩家ID", http.StatusBadRequest)
		return
	}

	// 查询玩家战绩统计
	stats, err := models.GetPlayerStatistics(playerID)
	if err != nil {
		if err == sql.ErrNoRows {
			h.sendErrorResponse(w, "玩家不存在", http.StatusNotFound)
			return
		}
		log.Printf("查询玩家战绩失败: %v", err)
		h.sendErrorResponse(w, "查询玩家战绩失败", http.StatusInternalServerError)
		return
	}

	// 返回成功响应
	h.writeJSON(w, http.StatusOK, protocol.CreatePlayerStatsResponse(stats))
}

// handlePlayerRuns 处理玩家单局历史查询
func (h *StatsHandler) handlePlayerRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.sendErrorResponse(w, "仅支持GET方法", http.StatusMethodNotAllowed)
		return
	}

	// 提取玩家ID
	path := strings.TrimPrefix(r.URL.Path, "/stats/runs/")
	playerID, err := strconv.ParseInt(path, 10, 64)
	if err != nil {
		h.sendErrorResponse(w, "无效的玩家ID", http.StatusBadRequest)
		return
	}

	// 解析查询参数
	limit := 10 // 默认限制
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	// 查询玩家单局历史
	runs, err := models.GetRecentRuns(playerID, limit)
	if err != nil {
		log.Printf("查询玩家单局历史失败: %v", err)
		h.sendErrorResponse(w, "查询单局历史失败", http.StatusInternalServerError)
		return
	}

	// 构建响应数据
	resp := &PlayerRunsResponse{
		Success: true,
		Message: "查询成功",
		Data: &PlayerRunsData{
			Runs:  runs,
			Total: len(runs),
			Limit: limit,
		},
	}

	// 返回成功响应
	h.writeJSON(w, http.StatusOK, resp)
}

// handleLeaderboard 处理排行榜查询
func (h *StatsHandler) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.sendErrorResponse(w, "仅支持GET方法", http.StatusMethodNotAllowed)
		return
	}

	// 解析查询参数
	query := r.URL.Query()
	leaderboardType := query.Get("type")
	if leaderboardType == "" {
		leaderboardType = "score" // 默认按最高分排序
	}

	limit := 50 // 默认限制
	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	// 验证排行榜类型
	validTypes := map[string]bool{
		"score": true,
		"zone":  true,
	}

	if !validTypes[leaderboardType] {
		h.sendErrorResponse(w, "无效的排行榜类型", http.StatusBadRequest)
		return
	}

	// 查询排行榜
	leaderboard, err := h.getLeaderboard(models.LeaderboardType(leaderboardType), limit)
	if err != nil {
		log.Printf("查询排行榜失败: %v", err)
		h.sendErrorResponse(w, "查询排行榜失败", http.StatusInternalServerError)
		return
	}

	log.Printf("排行榜查询结果: 类型=%s, 数量=%d", leaderboardType, len(leaderboard))

	// 返回成功响应
	h.writeJSON(w, http.StatusOK, protocol.CreateLeaderboardResponse(leaderboard, leaderboardType))
}

// handleRefreshLeaderboard 处理排行榜刷新
func (h *StatsHandler) handleRefreshLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.sendErrorResponse(w, "仅支持POST方法", http.StatusMethodNotAllowed)
		return
	}

	if !h.useRedis {
		h.sendErrorResponse(w, "Redis未启用，无需刷新", http.StatusBadRequest)
		return
	}

	// 刷新排行榜
	if err := h.redisLeaderboard.RefreshLeaderboard(); err != nil {
		log.Printf("刷新排行榜失败: %v", err)
		h.sendErrorResponse(w, "刷新排行榜失败", http.StatusInternalServerError)
		return
	}

	// 返回成功响应
	h.writeJSON(w, http.StatusOK, protocol.CreateSuccessResponse("排行榜刷新成功"))
}

// writeJSON 写入JSON响应
func (h *StatsHandler) writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("编码响应失败: %v", err)
	}
}

// sendErrorResponse 发送错误响应
func (h *StatsHandler) sendErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	resp := StatsResponse{
		Success: false,
		Message: message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("编码错误响应失败: %v", err)
	}
}

// getLeaderboard 获取排行榜
func (h *StatsHandler) getLeaderboard(leaderboardType models.LeaderboardType, limit int) ([]models.LeaderboardEntry, error) {
	// 优先使用Redis
	if h.useRedis {
		entries, err := h.redisLeaderboard.GetLeaderboard(leaderboardType, limit)
		if err == nil && len(entries) > 0 {
			return entries, nil
		}

		// Redis失败或无数据时，刷新排行榜并重试
		log.Printf("Redis排行榜查询失败或无数据，刷新排行榜: %v", err)
		if refreshErr := h.redisLeaderboard.RefreshLeaderboard(); refreshErr == nil {
			if entries, err := h.redisLeaderboard.GetLeaderboard(leaderboardType, limit); err == nil {
				return entries, nil
			}
		}

		log.Printf("Redis排行榜刷新失败，回退到数据库查询")
	}

	// 回退到数据库查询
	return h.getLeaderboardFromDB(leaderboardType, limit)
}

// getLeaderboardFromDB 从数据库获取排行榜
func (h *StatsHandler) getLeaderboardFromDB(leaderboardType models.LeaderboardType, limit int) ([]models.LeaderboardEntry, error) {
	var orderBy string

	switch leaderboardType {
	case models.LeaderboardZone:
		orderBy = "p.highest_zone DESC, p.highest_score DESC"
	case models.LeaderboardScore:
		orderBy = "p.highest_score DESC"
	default:
		orderBy = "p.highest_score DESC"
	}

	query := fmt.Sprintf(`
		SELECT
			p.id AS player_id,
			p.username,
			p.squadron_level,
			p.highest_score,
			p.highest_zone,
			(p.highest_score + p.highest_zone * 1000) AS score,
			ROW_NUMBER() OVER (ORDER BY %s) as rank
		FROM players p
		ORDER BY %s
		LIMIT $1
	`, orderBy, orderBy)

	rows, err := db.DB.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("查询排行榜失败: %w", err)
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	for rows.Next() {
		var entry models.LeaderboardEntry
		err := rows.Scan(
			&entry.PlayerID, &entry.Username, &entry.SquadronLevel,
			&entry.HighestScore, &entry.HighestZone, &entry.Score, &entry.Rank,
		)
		if err != nil {
			return nil, fmt.Errorf("扫描排行榜数据失败: %w", err)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("遍历排行榜数据失败: %w", err)
	}

	return entries, nil
}
