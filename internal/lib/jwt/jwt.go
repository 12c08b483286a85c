// Package jwt реализует генерацию и парсинг JWT токенов с пользовательскими claim полями.
//
// Токен самодостаточен: сервер не хранит сессии, валидность определяется
// подписью и сроком действия. Парсер принимает только HS256 — токен с
// подменённым алгоритмом (включая "none") отклоняется.
package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CustomClaims описывает пользовательские данные, хранящиеся в JWT.
type CustomClaims struct {
	Email                string `json:"email"` // Email пользователя
	Role                 string `json:"role"`  // Роль пользователя
	jwt.RegisteredClaims        // Стандартные claims (Subject = UUID пользователя, ExpiresAt и пр.)
}

// Maker описывает интерфейс для генерации и парсинга JWT токенов.
type Maker interface {
	// GenerateToken создает токен с идентификатором пользователя, email и ролью.
	GenerateToken(userID, email, role string) (string, error)
	// ParseToken проверяет подпись и срок действия, возвращает claims.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}

// GenerateToken создает JWT токен с заданными userID, email и role,
// подписывая его секретным ключом. Срок действия — now + tokenTTL.
func (j *MakerImpl) GenerateToken(userID, email, role string) (string, error) {
	claims := CustomClaims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// ParseToken парсит JWT токен, проверяет метод подписи, саму подпись и
// срок действия, возвращает CustomClaims, если токен корректен.
// Токен без поля exp считается невалидным.
func (j *MakerImpl) ParseToken(tokenStr string) (*CustomClaims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{},
		func(_ *jwt.Token) (any, error) {
			return []byte(j.secretKey), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}
