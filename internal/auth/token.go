/* JWT 토큰 발급 및 검증 (HS256, stateless) */

package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"HRPolicyGateway/internal/models"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const DefaultTTL = time.Hour

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token has expired")
	ErrMalformedToken = errors.New("malformed token")
	ErrEmptySubject   = errors.New("subject is required")
)

// Claims 구조체 정의, JWT 페이로드에 역할 목록 포함
type Claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// RoleSet returns the roles carried by the token.
func (c *Claims) RoleSet() []models.Role {
	return models.RolesFromStrings(c.Roles)
}

// TokenService 는 서명 키를 단독으로 소유함
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret, issuer string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock returns a copy of the service that reads time from now.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	cp := *s
	cp.now = now
	return &cp
}

func (s *TokenService) TTL() time.Duration { return s.ttl }

// JWT 토큰 생성
func (s *TokenService) Issue(subject string, roles []string) (string, error) {
	if strings.TrimSpace(subject) == "" {
		return "", ErrEmptySubject
	}
	if roles == nil {
		roles = []string{}
	}
	issuedAt := s.now()
	claims := &Claims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tokenString, nil
}

// JWT 토큰 검증. 시간 검사는 라이브러리 대신 s.now 기준으로 직접 수행
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	_, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return nil, ErrMalformedToken
		}
		return nil, ErrInvalidToken
	}

	if claims.Issuer == "" || claims.Subject == "" || claims.IssuedAt == nil || claims.ExpiresAt == nil {
		return nil, ErrMalformedToken
	}
	if !claims.ExpiresAt.After(claims.IssuedAt.Time) {
		return nil, ErrMalformedToken
	}
	if claims.Issuer != s.issuer {
		return nil, ErrInvalidToken
	}

	now := s.now()
	if !now.Before(claims.ExpiresAt.Time) {
		return nil, ErrExpiredToken
	}
	if now.Before(claims.IssuedAt.Time) {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
