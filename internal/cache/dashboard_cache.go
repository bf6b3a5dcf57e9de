package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"hostelmate-data/internal/dashboard"
	"hostelmate-data/internal/domain"

	"go.uber.org/zap"
)

const dashboardKeyPrefix = "hostelmate:dashboard"

// DashboardCache 仪表盘 payload 缓存
// - key = 调用方身份 + 当天日期 + 规范化后的完整查询参数
// - 仅按 TTL 过期，写操作不做失效
// - 读写失败只记日志，调用方照常计算
type DashboardCache struct {
	kv     KV
	ttl    time.Duration
	logger *zap.Logger
}

// NewDashboardCache 创建仪表盘缓存
func NewDashboardCache(kv KV, ttl time.Duration, logger *zap.Logger) *DashboardCache {
	return &DashboardCache{
		kv:     kv,
		ttl:    ttl,
		logger: logger,
	}
}

// Key 同一调用方、同一天、同一组参数命中同一条缓存
// 日期参与 key：默认窗口与"今天"相关，跨天后需要重新计算
func (c *DashboardCache) Key(caller domain.Caller, today domain.Date, values url.Values) string {
	return fmt.Sprintf("%s:%s:%t:%s:%s",
		dashboardKeyPrefix, caller.OwnerID, caller.Privileged, today, dashboard.CanonicalKey(values))
}

// Get 命中返回 payload；未命中或出错返回 false
func (c *DashboardCache) Get(ctx context.Context, key string) (*dashboard.Payload, bool) {
	raw, err := c.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			c.logger.Debug("Dashboard cache miss", zap.String("key", key))
		} else {
			c.logger.Warn("Failed to read dashboard cache", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var p dashboard.Payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		c.logger.Warn("Failed to decode dashboard cache", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	c.logger.Debug("Dashboard cache hit", zap.String("key", key))
	return &p, true
}

// Set 写入缓存（TTL 由配置决定）
func (c *DashboardCache) Set(ctx context.Context, key string, p *dashboard.Payload) {
	jsonData, err := json.Marshal(p)
	if err != nil {
		c.logger.Warn("Failed to marshal dashboard payload", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.kv.Set(ctx, key, string(jsonData), c.ttl); err != nil {
		c.logger.Warn("Failed to set dashboard cache", zap.String("key", key), zap.Error(err))
		return
	}

	c.logger.Debug("Updated dashboard cache",
		zap.String("key", key),
		zap.Duration("ttl", c.ttl),
	)
}
