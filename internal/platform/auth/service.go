package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// 管理者アカウントは環境変数で1件だけ持つ。アカウントストアは無い。
const (
	EnvSecret       = "JWT_SECRET"
	EnvAdminUser    = "ADMIN_USER"
	EnvPasswordHash = "ADMIN_PASSWORD_HASH" // bcrypt ハッシュ
)

var ErrAuthFailed = errors.New("authentication failed")

type Service struct {
	secret       []byte
	adminUser    string
	passwordHash string
	tokenTTL     time.Duration
}

// FromEnv returns nil when JWT_SECRET is unset: auth is then disabled and
// mutating routes stay open (dev parity).
func FromEnv() *Service {
	secret := os.Getenv(EnvSecret)
	if secret == "" {
		return nil
	}
	return &Service{
		secret:       []byte(secret),
		adminUser:    os.Getenv(EnvAdminUser),
		passwordHash: os.Getenv(EnvPasswordHash),
		tokenTTL:     24 * time.Hour,
	}
}

func (s *Service) Secret() []byte { return s.secret }

// Login verifies the env-configured credentials and issues an HS256 token.
func (s *Service) Login(username, password string) (string, error) {
	if s.adminUser == "" || s.passwordHash == "" {
		return "", ErrAuthFailed
	}
	if username != s.adminUser {
		return "", ErrAuthFailed
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		return "", ErrAuthFailed
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  username,
		"role": "admin",
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	})
	return token.SignedString(s.secret)
}
