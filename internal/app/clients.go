package app

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/yungbote/payona-backend/internal/clients/redis"
	"github.com/yungbote/payona-backend/internal/platform/db"
	"github.com/yungbote/payona-backend/internal/platform/logger"
)

type Clients struct {
	DB    *db.Service
	Redis *goredis.Client
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	dbs, err := db.Open(log, cfg.DB)
	if err != nil {
		return Clients{}, fmt.Errorf("init database: %w", err)
	}
	if err := dbs.AutoMigrateAll(); err != nil {
		_ = dbs.Close()
		return Clients{}, fmt.Errorf("automigrate: %w", err)
	}

	rdb, err := redis.NewClient(ctx, log, redis.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		_ = dbs.Close()
		return Clients{}, fmt.Errorf("init redis: %w", err)
	}

	return Clients{DB: dbs, Redis: rdb}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.DB != nil {
		_ = c.DB.Close()
	}
}
