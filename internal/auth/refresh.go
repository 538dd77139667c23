package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const refreshTokenTTL = 7 * 24 * time.Hour

var ErrRefreshTokenNotFound = errors.New("refresh token not found or expired")

// RefreshStore keeps refresh tokens in Redis keyed by token value, so a
// restart never invalidates sessions and expiry is enforced by TTL.
type RefreshStore struct {
	rdb *redis.Client
}

func NewRefreshStore(rdb *redis.Client) *RefreshStore {
	return &RefreshStore{rdb: rdb}
}

func refreshKey(token string) string {
	return "auth:refresh:" + token
}

// Issue creates and stores a refresh token for the user.
func (s *RefreshStore) Issue(ctx context.Context, userID int) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)

	if err := s.rdb.Set(ctx, refreshKey(token), userID, refreshTokenTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}
	return token, nil
}

// Redeem resolves a refresh token to its user and rotates it: the old
// token is deleted and cannot be replayed.
func (s *RefreshStore) Redeem(ctx context.Context, token string) (int, error) {
	userID, err := s.rdb.GetDel(ctx, refreshKey(token)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, ErrRefreshTokenNotFound
	}
	if err != nil {
		return 0, err
	}
	return userID, nil
}

// Revoke drops a refresh token without redeeming it.
func (s *RefreshStore) Revoke(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, refreshKey(token)).Err()
}
