package main

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"github.com/gosuda/kanban/internal/api/ws"
	"github.com/gosuda/kanban/internal/config"
	"github.com/gosuda/kanban/internal/store"
	"github.com/gosuda/kanban/internal/store/file"
	"github.com/gosuda/kanban/internal/store/memory"
	"github.com/gosuda/kanban/internal/store/postgres"
	redisstore "github.com/gosuda/kanban/internal/store/redis"
)

// openBackend connects the configured storage backend. Live updates go
// through Redis pub/sub when Redis is the backend and stay in-process
// otherwise. The returned func releases every connection.
func openBackend(ctx context.Context, cfg *config.Config) (store.KV, ws.PubSub, func(), error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		log.Warn().Msg("memory backend selected; boards are lost on restart")
		return memory.NewKV(), memory.NewPubSub(), func() {}, nil

	case config.BackendFile:
		kv, err := file.New(cfg.Storage.Dir)
		if err != nil {
			return nil, nil, nil, err
		}
		return kv, memory.NewPubSub(), func() {}, nil

	case config.BackendRedis:
		client, err := redisstore.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, nil, err
		}
		return client, client, func() { _ = client.Close() }, nil

	case config.BackendPostgres:
		if cfg.Database.MaxConns < 0 || cfg.Database.MaxConns > math.MaxInt32 {
			return nil, nil, nil, fmt.Errorf("database max_conns %d out of int32 range", cfg.Database.MaxConns)
		}
		kv, err := postgres.New(ctx, cfg.Database.DSN(), int32(cfg.Database.MaxConns)) //nolint:gosec // bounds checked above
		if err != nil {
			return nil, nil, nil, err
		}
		return kv, memory.NewPubSub(), kv.Close, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
