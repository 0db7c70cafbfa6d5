package auth

import (
	"time"

	"bloodbridge_backend/pkg/apperrors"

	"github.com/golang-jwt/jwt/v5"
)

// Claims - полезная нагрузка JWT токена донора
type Claims struct {
	DonorID string `json:"donor_id"`
	jwt.RegisteredClaims
}

// TokenService выпускает и проверяет JWT токены.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttlMinutes int) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    time.Duration(ttlMinutes) * time.Minute,
	}
}

// GenerateToken выпускает токен для донора
func (s *TokenService) GenerateToken(donorID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		DonorID: donorID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseToken проверяет подпись и срок действия токена
func (s *TokenService) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.New(apperrors.CodeInvalidToken, "auth", "Unexpected signing method", 401)
		}
		return s.secret, nil
	})
	if err != nil {
		if apperrors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.New(apperrors.CodeTokenExpired, "auth", "Token has expired", 401)
		}
		return nil, apperrors.New(apperrors.CodeInvalidToken, "auth", "Invalid token", 401)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.DonorID == "" {
		return nil, apperrors.New(apperrors.CodeInvalidToken, "auth", "Invalid token", 401)
	}

	return claims, nil
}
