package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/NavalhaLabs/navalha-agenda/internal/config"
	"github.com/NavalhaLabs/navalha-agenda/internal/logger"
	"github.com/NavalhaLabs/navalha-agenda/internal/schedule"
)

// AvailabilityCache guarda o resultado do calendário mensal por alguns
// minutos. O cache mora fora do núcleo de disponibilidade de propósito: o
// cálculo em si é sempre função pura das leituras + "agora".
type AvailabilityCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAvailabilityCache(cfg *config.Config) *AvailabilityCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	return &AvailabilityCache{
		rdb: rdb,
		ttl: 2 * time.Minute,
	}
}

func key(barbershopID, serviceID uint, from, to string) string {
	return fmt.Sprintf("cal:shop:%d:svc:%d:%s:%s", barbershopID, serviceID, from, to)
}

func (c *AvailabilityCache) Get(
	ctx context.Context,
	barbershopID, serviceID uint,
	from, to string,
) (map[string]schedule.DayStatus, bool) {

	raw, err := c.rdb.Get(ctx, key(barbershopID, serviceID, from, to)).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		// cache fora do ar nunca derruba a consulta, só a encarece
		logger.L().Debug("availability cache read failed", zap.Error(err))
		return nil, false
	}

	var days map[string]schedule.DayStatus
	if err := json.Unmarshal([]byte(raw), &days); err != nil {
		return nil, false
	}

	return days, true
}

func (c *AvailabilityCache) Set(
	ctx context.Context,
	barbershopID, serviceID uint,
	from, to string,
	days map[string]schedule.DayStatus,
) {

	raw, err := json.Marshal(days)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, key(barbershopID, serviceID, from, to), raw, c.ttl).Err(); err != nil {
		logger.L().Debug("availability cache write failed", zap.Error(err))
	}
}

// InvalidateShop derruba todo calendário cacheado da barbearia; chamado
// após criar ou cancelar agendamento.
func (c *AvailabilityCache) InvalidateShop(ctx context.Context, barbershopID uint) {
	pattern := fmt.Sprintf("cal:shop:%d:*", barbershopID)

	iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		c.rdb.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logger.L().Debug("availability cache invalidation failed", zap.Error(err))
	}
}
