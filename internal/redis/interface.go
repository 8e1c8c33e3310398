package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client wraps redis.UniversalClient so repositories depend on a narrow
// local type.
type Client interface {
	redis.UniversalClient
}
