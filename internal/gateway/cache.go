package gateway

import (
	"crypto/md5"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
)

// cacheRule 一条可缓存路径及其存活时间
type cacheRule struct {
	Prefix string
	TTL    time.Duration
}

// cachedResponse 已缓存的GET响应
type cachedResponse struct {
	Body        []byte
	ContentType string
	ETag        string
	ExpiresAt   time.Time
}

// CacheMiddleware 网关响应缓存。机库目录是静态数据缓存10分钟，
// 排行榜读多写少缓存2分钟，排行榜刷新请求会使对应缓存失效。
type CacheMiddleware struct {
	mutex   sync.RWMutex
	entries map[string]*cachedResponse
	rules   []cacheRule

	maxEntries int
}

// NewCacheMiddleware 创建缓存中间件并启动过期清理协程
func NewCacheMiddleware() *CacheMiddleware {
	cm := &CacheMiddleware{
		entries: make(map[string]*cachedResponse),
		rules: []cacheRule{
			{Prefix: "/hangar", TTL: 10 * time.Minute},
			{Prefix: "/stats/leaderboard", TTL: 2 * time.Minute},
		},
		maxEntries: 1000,
	}

	go cm.sweepLoop()

	return cm
}

// Middleware 缓存中间件。只缓存匹配规则的成功GET响应，
// 命中时支持If-None-Match协商。
func (cm *CacheMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			// 排行榜刷新写入了新数据，旧页面立即作废
			if r.Method == http.MethodPost && strings.HasPrefix(r.URL.Path, "/stats/leaderboard") {
				cm.invalidatePrefix("/stats/leaderboard")
			}
			next.ServeHTTP(w, r)
			return
		}

		rule, cacheable := cm.matchRule(r.URL.Path)
		if !cacheable {
			next.ServeHTTP(w, r)
			return
		}

		key := cacheKey(r)

		if entry := cm.lookup(key); entry != nil {
			if match := r.Header.Get("If-None-Match"); match != "" && match == entry.ETag {
				w.WriteHeader(http.StatusNotModified)
				return
			}
			cm.serveCached(w, entry)
			return
		}

		recorder := &cacheResponseRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}
		next.ServeHTTP(recorder, r)

		if recorder.statusCode != http.StatusOK || len(recorder.body) == 0 {
			return
		}

		etag := fmt.Sprintf(`"%x"`, md5.Sum(recorder.body))
		cm.store(key, &cachedResponse{
			Body:        recorder.body,
			ContentType: recorder.Header().Get("Content-Type"),
			ETag:        etag,
			ExpiresAt:   time.Now().Add(rule.TTL),
		})

		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", int(rule.TTL.Seconds())))
	})
}

// matchRule 按前缀匹配缓存规则
func (cm *CacheMiddleware) matchRule(path string) (cacheRule, bool) {
	for _, rule := range cm.rules {
		if strings.HasPrefix(path, rule.Prefix) {
			return rule, true
		}
	}
	return cacheRule{}, false
}

// cacheKey 路径加查询参数作为缓存键，排行榜的type/limit各自独立缓存
func cacheKey(r *http.Request) string {
	if r.URL.RawQuery == "" {
		return r.URL.Path
	}
	return r.URL.Path + "?" + r.URL.RawQuery
}

// lookup 读取未过期的缓存条目
func (cm *CacheMiddleware) lookup(key string) *cachedResponse {
	cm.mutex.RLock()
	entry, exists := cm.entries[key]
	cm.mutex.RUnlock()

	if !exists {
		return nil
	}
	if time.Now().After(entry.ExpiresAt) {
		cm.mutex.Lock()
		delete(cm.entries, key)
		cm.mutex.Unlock()
		return nil
	}
	return entry
}

// store 写入缓存条目，容量到上限时先清过期再挤掉最早过期的
func (cm *CacheMiddleware) store(key string, entry *cachedResponse) {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	if len(cm.entries) >= cm.maxEntries {
		cm.evictExpiredLocked()
		if len(cm.entries) >= cm.maxEntries {
			cm.evictSoonestLocked()
		}
	}

	cm.entries[key] = entry
}

// invalidatePrefix 删除指定前缀下的全部缓存条目
func (cm *CacheMiddleware) invalidatePrefix(prefix string) {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	for key := range cm.entries {
		if strings.HasPrefix(key, prefix) {
			delete(cm.entries, key)
		}
	}
}

// serveCached 写出缓存命中的响应
func (cm *CacheMiddleware) serveCached(w http.ResponseWriter, entry *cachedResponse) {
	if entry.ContentType != "" {
		w.Header().Set("Content-Type", entry.ContentType)
	}
	w.Header().Set("ETag", entry.ETag)
	w.Header().Set("X-Cache", "HIT")
	w.WriteHeader(http.StatusOK)
	w.Write(entry.Body)
}

// evictExpiredLocked 清理过期条目，调用方持锁
func (cm *CacheMiddleware) evictExpiredLocked() {
	now := time.Now()
	for key, entry := range cm.entries {
		if now.After(entry.ExpiresAt) {
			delete(cm.entries, key)
		}
	}
}

// evictSoonestLocked 挤掉最早过期的条目，调用方持锁
func (cm *CacheMiddleware) evictSoonestLocked() {
	var victim string
	var victimExpiry time.Time

	for key, entry := range cm.entries {
		if victim == "" || entry.ExpiresAt.Before(victimExpiry) {
			victim = key
			victimExpiry = entry.ExpiresAt
		}
	}

	if victim != "" {
		delete(cm.entries, victim)
	}
}

// sweepLoop 定期清理过期条目
func (cm *CacheMiddleware) sweepLoop() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		cm.mutex.Lock()
		cm.evictExpiredLocked()
		cm.mutex.Unlock()
	}
}

// cacheResponseRecorder 捕获响应体用于写入缓存
type cacheResponseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       []byte
}

// WriteHeader 记录状态码
func (crr *cacheResponseRecorder) WriteHeader(code int) {
	crr.statusCode = code
	crr.ResponseWriter.WriteHeader(code)
}

// Write 记录响应体并透传
func (crr *cacheResponseRecorder) Write(data []byte) (int, error) {
	crr.body = append(crr.body, data...)
	return crr.ResponseWriter.Write(data)
}
