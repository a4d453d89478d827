// schema.go

package db

// 统一的数据库表结构定义

// CreateAllTablesSQL 创建所有表的SQL语句
const CreateAllTablesSQL = `
-- 玩家表
CREATE TABLE IF NOT EXISTS players (
    id SERIAL PRIMARY KEY,
    username VARCHAR(50) UNIQUE NOT NULL,
    password VARCHAR(100) NOT NULL,
    email VARCHAR(100) UNIQUE NOT NULL,
    created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,

    -- 中队成长
    squadron_level INT DEFAULT 1,
    squadron_xp BIGINT DEFAULT 0,

    -- 累计战绩
    total_runs INT DEFAULT 0,
    total_score BIGINT DEFAULT 0,
    highest_score BIGINT DEFAULT 0,
    highest_zone INT DEFAULT 0,
    enemies_defeated INT DEFAULT 0,
    total_playtime INT DEFAULT 0
);

-- 单局记录表
CREATE TABLE IF NOT EXISTS runs (
    id VARCHAR(50) PRIMARY KEY,
    player_id BIGINT REFERENCES players(id) ON DELETE CASCADE,
    seed BIGINT NOT NULL,
    aircraft VARCHAR(20) NOT NULL,
    final_zone INT DEFAULT 0,
    score BIGINT DEFAULT 0,
    enemies_defeated INT DEFAULT 0,
    duration INT DEFAULT 0,
    started_at TIMESTAMP WITH TIME ZONE NOT NULL,
    ended_at TIMESTAMP WITH TIME ZONE
);

-- 单局升级记录表
CREATE TABLE IF NOT EXISTS run_upgrades (
    run_id VARCHAR(50) REFERENCES runs(id) ON DELETE CASCADE,
    upgrade_id INT NOT NULL,
    name VARCHAR(50) NOT NULL,
    zone INT NOT NULL,
    picked_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (run_id, upgrade_id)
);

-- 玩家统计表
CREATE TABLE IF NOT EXISTS player_statistics (
    player_id BIGINT REFERENCES players(id) ON DELETE CASCADE PRIMARY KEY,
    total_runs INT DEFAULT 0,
    total_score BIGINT DEFAULT 0,
    average_score DECIMAL(12,2) DEFAULT 0,
    highest_score BIGINT DEFAULT 0,
    highest_zone INT DEFAULT 0,
    enemies_defeated INT DEFAULT 0,
    total_playtime INT DEFAULT 0,
    updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
);

-- 存档表
CREATE TABLE IF NOT EXISTS save_states (
    player_id BIGINT REFERENCES players(id) ON DELETE CASCADE PRIMARY KEY,
    document JSONB NOT NULL,
    updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
);

-- 创建排行榜视图
CREATE OR REPLACE VIEW leaderboard AS
SELECT
    p.id AS player_id,
    p.username,
    p.squadron_level,
    p.highest_score,
    p.highest_zone,
    (p.highest_score + p.highest_zone * 1000) AS score
FROM
    players p
ORDER BY
    score DESC;

-- 创建索引以提高查询性能
CREATE INDEX IF NOT EXISTS idx_players_username ON players(username);
CREATE INDEX IF NOT EXISTS idx_players_email ON players(email);
CREATE INDEX IF NOT EXISTS idx_runs_player_id ON runs(player_id);
CREATE INDEX IF NOT EXISTS idx_runs_score ON runs(score);
CREATE INDEX IF NOT EXISTS idx_run_upgrades_run_id ON run_upgrades(run_id);
`

// InitAllTables 初始化所有数据库表
func InitAllTables() error {
	_, err := DB.Exec(CreateAllTablesSQL)
	if err != nil {
		return err
	}
	return nil
}
