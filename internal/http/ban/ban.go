// Package ban tracks failed login attempts in Redis and temporarily locks
// out targets that accumulate too many strikes.
package ban

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gudang-mitra/gudang-api/internal/redissvc"
	"github.com/redis/go-redis/v9"
)

var (
	rdb *redis.Client
	ctx context.Context

	maxStrikes = 5
	banWindow  = 15 * time.Minute
)

func SetRedisService(rs *redissvc.RedisService) {
	rdb = rs.Rdb()
	ctx = rs.Ctx()
}

// Configure overrides the strike threshold and lockout window.
func Configure(strikes int, window time.Duration) {
	if strikes > 0 {
		maxStrikes = strikes
	}
	if window > 0 {
		banWindow = window
	}
}

func strikeKey(target string) string {
	return "login:strikes:" + target
}

func banKey(target string) string {
	return "login:ban:" + target
}

// RecordFailure adds a strike for the target (ip|email). Crossing the
// threshold bans the target for the configured window.
func RecordFailure(target string) {
	if rdb == nil {
		return
	}

	strikes, err := rdb.Incr(ctx, strikeKey(target)).Result()
	if err != nil {
		log.Printf("failed to record login strike for %s: %v", target, err)
		return
	}
	// first strike starts the counting window
	if strikes == 1 {
		rdb.Expire(ctx, strikeKey(target), banWindow)
	}

	if strikes >= int64(maxStrikes) {
		if err := rdb.Set(ctx, banKey(target), time.Now().Format(time.RFC3339), banWindow).Err(); err != nil {
			log.Printf("failed to ban %s: %v", target, err)
			return
		}
		rdb.Del(ctx, strikeKey(target))
		log.Printf("login target %s banned after %d failed attempts", target, strikes)
	}
}

// ClearStrikes resets the counter, called after a successful login.
func ClearStrikes(target string) {
	if rdb == nil {
		return
	}
	rdb.Del(ctx, strikeKey(target))
}

// IsBanned reports whether the target is currently locked out.
func IsBanned(target string) bool {
	if rdb == nil {
		return false
	}
	exists, err := rdb.Exists(ctx, banKey(target)).Result()
	if err != nil {
		log.Printf("failed to check ban for %s: %v", target, err)
		return false
	}
	return exists > 0
}

// Target builds the redis key fragment for an ip+email pair.
func Target(ip, email string) string {
	return fmt.Sprintf("%s|%s", ip, email)
}
