package middleware

import (
	"sync"
	"time"

	"rentvehicle/config"
	"rentvehicle/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// clientLimiter pairs a per-IP limiter with its last activity, so idle
// entries can be evicted.
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type rateLimiterStore struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
}

var limiterStore = newRateLimiterStore()

func newRateLimiterStore() *rateLimiterStore {
	s := &rateLimiterStore{clients: make(map[string]*clientLimiter)}
	go s.evictLoop()
	return s
}

func (s *rateLimiterStore) getLimiter(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	client, ok := s.clients[ip]
	if !ok {
		perMin := config.AppConfig.MaxRequestsPerMin
		if perMin <= 0 {
			perMin = 100
		}
		client = &clientLimiter{
			limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMin)), perMin),
		}
		s.clients[ip] = client
	}
	client.lastSeen = time.Now()
	return client.limiter
}

// evictLoop drops limiters idle for more than ten minutes.
func (s *rateLimiterStore) evictLoop() {
	for range time.Tick(time.Minute) {
		cutoff := time.Now().Add(-10 * time.Minute)
		s.mu.Lock()
		for ip, client := range s.clients {
			if client.lastSeen.Before(cutoff) {
				delete(s.clients, ip)
			}
		}
		s.mu.Unlock()
	}
}

// RateLimitMiddleware throttles requests per client IP.
func RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := getClientIP(c)
		if !limiterStore.getLimiter(ip).Allow() {
			utils.GetLogger().Warn("Rate limit exceeded", zap.String("ip", ip))
			c.AbortWithStatusJSON(utils.ErrTooManyRequests.Status, utils.Response{
				Code:    utils.ErrTooManyRequests.Code,
				Message: utils.ErrTooManyRequests.Message,
			})
			return
		}
		c.Next()
	}
}
