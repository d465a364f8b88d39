package cache

import (
	"fmt"
	"time"

	"quiz-exam/internal/adapter"
	"quiz-exam/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// embeddedTick is how often the embedded server's clock is advanced.
// miniredis only expires keys when its clock moves.
const embeddedTick = time.Second

// newEmbeddedStore starts an in-process Redis server and returns the usual
// Redis adapter on top of it.
func newEmbeddedStore() (domain.Cache, func() error, error) {
	srv := miniredis.NewMiniRedis()
	if err := srv.Start(); err != nil {
		return nil, nil, fmt.Errorf("failed to start embedded session store: %w", err)
	}

	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(embeddedTick)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				srv.FastForward(embeddedTick)
			}
		}
	}()

	closeFn := func() error {
		close(done)
		err := client.Close()
		srv.Close()
		return err
	}
	return adapter.NewRedisCacheAdapter(client), closeFn, nil
}
