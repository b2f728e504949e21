package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/api/handlers"
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// RedisRateLimiter ограничитель частоты запросов с фиксированным окном на Redis
// Счетчик общий для всех инстансов сервиса, ключ - клиент и шаблон роута
type RedisRateLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	prefix string

	// failOpen пропускает запросы при недоступности Redis
	failOpen bool
	logger   Logger
}

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// NewRedisRateLimiter создает новый ограничитель частоты запросов
func NewRedisRateLimiter(rdb *redis.Client, limit int, window time.Duration, prefix string, failOpen bool, logger Logger) *RedisRateLimiter {
	if limit <= 0 {
		limit = 60
	}
	if window <= 0 {
		window = time.Minute
	}
	if prefix == "" {
		prefix = "rl"
	}
	return &RedisRateLimiter{
		rdb:      rdb,
		limit:    limit,
		window:   window,
		prefix:   prefix,
		failOpen: failOpen,
		logger:   logger,
	}
}

// Middleware возвращает mux middleware ограничителя
func (rl *RedisRateLimiter) Middleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := rl.prefix + ":" + clientKey(r)

			count, err := rl.incr(r.Context(), key)
			if err != nil {
				rl.logger.Warn("rate limiter: redis error: %v", err)
				if rl.failOpen {
					next.ServeHTTP(w, r)
					return
				}
				handlers.RespondError(w, http.StatusServiceUnavailable, "сервис временно недоступен")
				return
			}

			if count > int64(rl.limit) {
				handlers.RespondError(w, http.StatusTooManyRequests, "превышен лимит запросов")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// incr атомарно инкрементирует счетчик окна и выставляет TTL при первом запросе
func (rl *RedisRateLimiter) incr(ctx context.Context, key string) (int64, error) {
	res, err := fixedWindowScript.Run(ctx, rl.rdb, []string{key}, rl.window.Milliseconds()).Result()
	if err != nil {
		return 0, err
	}

	switch v := res.(type) {
	case int64:
		return v, nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected redis script result type %T", res)
	}
}

// clientKey строит ключ клиента: ID пользователя при наличии, иначе IP,
// плюс шаблон роута
func clientKey(r *http.Request) string {
	client := ""
	if userID, ok := GetUserID(r.Context()); ok {
		client = strconv.FormatInt(userID, 10)
	} else if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		client = host
	} else {
		client = r.RemoteAddr
	}

	path := r.URL.Path
	if route := mux.CurrentRoute(r); route != nil {
		if template, err := route.GetPathTemplate(); err == nil {
			path = template
		}
	}

	return client + ":" + path
}
