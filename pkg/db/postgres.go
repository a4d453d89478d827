// Package db 管理PostgreSQL与Redis连接的生命周期。
package db

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/jacl-coder/StormWing-Server/config"
	_ "github.com/lib/pq"
)

var (
	// DB 全局数据库连接池
	DB *sql.DB
)

// InitPostgres 初始化PostgreSQL连接池。
// 对局结算与存档写入都走这个池，池参数来自配置。
func InitPostgres() error {
	dbConfig := config.GlobalConfig.Database

	pool, err := sql.Open("postgres", dbConfig.GetDSN())
	if err != nil {
		return fmt.Errorf("打开数据库失败: %w", err)
	}

	pool.SetMaxOpenConns(dbConfig.MaxOpenConns)
	pool.SetMaxIdleConns(dbConfig.MaxIdleConns)
	pool.SetConnMaxLifetime(30 * time.Minute)

	if err := pool.Ping(); err != nil {
		pool.Close()
		return fmt.Errorf("数据库Ping失败: %w", err)
	}

	DB = pool
	log.Printf("成功连接到PostgreSQL数据库: %s", dbConfig.DBName)
	return nil
}

// Close 关闭数据库连接池
func Close() {
	if DB == nil {
		return
	}
	if err := DB.Close(); err != nil {
		log.Printf("关闭数据库连接时发生错误: %v", err)
		return
	}
	log.Println("数据库连接已关闭")
}
