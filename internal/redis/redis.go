package redis

import (
	"sync"

	redisv9 "github.com/redis/go-redis/v9"

	"github.com/Pranali0315/NomadHelp/internal/config"
)

var (
	client *redisv9.Client
	once   sync.Once
)

// GetClient returns the process-wide Redis client, or nil when no Redis
// address is configured (caching disabled).
func GetClient() *redisv9.Client {
	once.Do(func() {
		addr := config.GetRedisAddr()
		if addr == "" {
			return
		}
		client = redisv9.NewClient(&redisv9.Options{
			Addr: addr,
		})
	})
	return client
}

// ResetClientForTest resets the Redis client singleton. Use only in tests.
func ResetClientForTest() {
	once = sync.Once{}
	client = nil
}
