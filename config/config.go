// config.go

package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config 服务器配置结构
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Game     GameConfig     `mapstructure:"game"`
}

// ServerConfig 服务器基本配置
type ServerConfig struct {
	GamePort     int    `mapstructure:"game_port"`
	GatewayPort  int    `mapstructure:"gateway_port"`
	Debug        bool   `mapstructure:"debug"`
	LogLevel     string `mapstructure:"log_level"`
	MaxRoomCount int    `mapstructure:"max_room_count"`
	JWTSecret    string `mapstructure:"jwt_secret"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	DBName       string `mapstructure:"dbname"`
	SSLMode      string `mapstructure:"sslmode"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

// RedisConfig Redis配置
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// GameConfig 游戏模拟配置
type GameConfig struct {
	TickRate       int     `mapstructure:"tick_rate"`       // 每秒模拟帧数
	CollisionCell  float64 `mapstructure:"collision_cell"`  // 空间哈希网格单元大小
	DefaultSeed    int64   `mapstructure:"default_seed"`    // 关卡生成默认种子(0表示随机)
	UpgradeChoices int     `mapstructure:"upgrade_choices"` // 每次提供的升级选项数量
	StartingZone   string  `mapstructure:"starting_zone"`   // 初始区域类型
}

var (
	// GlobalConfig 全局配置实例
	GlobalConfig Config
)

// LoadConfig 从文件加载配置
func LoadConfig(configPath string) error {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	setGameDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("无法读取配置文件: %w", err)
	}

	if err := viper.Unmarshal(&GlobalConfig); err != nil {
		return fmt.Errorf("无法解析配置文件: %w", err)
	}

	return nil
}

// setGameDefaults 设置模拟相关的默认值
func setGameDefaults() {
	viper.SetDefault("game.tick_rate", 60)
	viper.SetDefault("game.collision_cell", 100.0)
	viper.SetDefault("game.default_seed", 0)
	viper.SetDefault("game.upgrade_choices", 3)
	viper.SetDefault("game.starting_zone", "sky")
	viper.SetDefault("server.jwt_secret", "stormwing-dev-secret")
	viper.SetDefault("database.max_open_conns", 20)
	viper.SetDefault("database.max_idle_conns", 5)
}

// GetDSN 获取PostgreSQL连接字符串
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// GetRedisAddr 获取Redis连接地址
func (c *RedisConfig) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
