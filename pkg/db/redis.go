package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jacl-coder/StormWing-Server/config"
)

var (
	// RedisClient 全局Redis客户端，用于排行榜与令牌吊销表
	RedisClient *redis.Client
	// Ctx 全局上下文
	Ctx = context.Background()
)

// InitRedis 初始化Redis连接。连接失败时调用方可以降级到纯数据库模式。
func InitRedis() error {
	redisConfig := config.GlobalConfig.Redis

	client := redis.NewClient(&redis.Options{
		Addr:         redisConfig.GetRedisAddr(),
		Password:     redisConfig.Password,
		DB:           redisConfig.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(Ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return fmt.Errorf("Redis连接失败: %w", err)
	}

	RedisClient = client
	log.Printf("成功连接到Redis服务器: %s", redisConfig.GetRedisAddr())
	return nil
}

// CloseRedis 关闭Redis连接
func CloseRedis() {
	if RedisClient == nil {
		return
	}
	if err := RedisClient.Close(); err != nil {
		log.Printf("关闭Redis连接时发生错误: %v", err)
		return
	}
	log.Println("Redis连接已关闭")
}
