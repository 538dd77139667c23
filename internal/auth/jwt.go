package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gudang-mitra/gudang-api/internal/models"
)

var (
	jwtSecret []byte
	tokenTTL  = 15 * time.Minute
)

// Configure sets the signing secret and access-token lifetime. Must be
// called once at startup before any token is issued or parsed.
func Configure(secret []byte, ttl time.Duration) {
	jwtSecret = secret
	if ttl > 0 {
		tokenTTL = ttl
	}
}

func GenerateToken(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func ParseToken(tokenStr string) (*jwt.Token, error) {
	return jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		return jwtSecret, nil
	})
}

// TokenClaims extracts the claims from a "Bearer ..." authorization header
// value, validating the token in the process.
func TokenClaims(authorization string) (*jwt.Token, jwt.MapClaims, error) {
	tokenStr := authorization
	if len(tokenStr) > 7 && tokenStr[:7] == "Bearer " {
		tokenStr = tokenStr[7:]
	}

	token, err := ParseToken(tokenStr)
	if err != nil {
		return nil, nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, nil, jwt.ErrTokenMalformed
	}
	return token, claims, nil
}
