// Package statscache guarda os resumos do painel em Redis por um TTL
// curto. O cache é opcional: sem endereço configurado tudo vira miss e
// o resumo é recomputado a cada leitura.
package statscache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/studiotrim/agenda-api/internal/config"
	"github.com/studiotrim/agenda-api/internal/stats"
)

const summaryTTL = 60 * time.Second

type Cache struct {
	rdb *redis.Client
}

// New retorna um cache desativado (nil interno) quando não há Redis
// configurado.
func New(cfg *config.Config) *Cache {
	if cfg.RedisAddr == "" {
		return &Cache{}
	}

	return &Cache{
		rdb: redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}),
	}
}

func (c *Cache) Enabled() bool {
	return c.rdb != nil
}

func summaryKey(barberID uint, p stats.Period) string {
	return fmt.Sprintf("stats:summary:%d:%s", barberID, p)
}

// Summary devolve o resumo em cache ou (zero, false) em caso de miss;
// erro de Redis é tratado como miss.
func (c *Cache) Summary(ctx context.Context, barberID uint, p stats.Period) (stats.Summary, bool) {
	if c.rdb == nil {
		return stats.Summary{}, false
	}

	raw, err := c.rdb.Get(ctx, summaryKey(barberID, p)).Result()
	if err != nil {
		return stats.Summary{}, false
	}

	var s stats.Summary
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return stats.Summary{}, false
	}
	return s, true
}

func (c *Cache) SetSummary(ctx context.Context, barberID uint, s stats.Summary) error {
	if c.rdb == nil {
		return nil
	}

	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, summaryKey(barberID, s.Period), raw, summaryTTL).Err()
}

// Invalidate limpa os três períodos de um barbeiro; chamado após criar,
// cancelar, concluir ou remover um agendamento.
func (c *Cache) Invalidate(ctx context.Context, barberID uint) {
	if c.rdb == nil {
		return
	}

	for _, p := range []stats.Period{stats.PeriodDay, stats.PeriodWeek, stats.PeriodMonth} {
		c.rdb.Del(ctx, summaryKey(barberID, p))
	}
}
