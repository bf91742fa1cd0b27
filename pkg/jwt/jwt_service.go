package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/Konstantin-Kleinikov/foodgram/domain"
	"github.com/Konstantin-Kleinikov/foodgram/internal/utils"
)

const tokenLifetime = 24 * time.Hour

type (
	JWTService interface {
		GenerateToken(userID string) string
		ValidateToken(token string) (*jwt.Token, error)
		GetUserIDByToken(token string) (string, error)
		GenerateResetToken(email string, duration time.Duration) (string, error)
		ValidateResetToken(token string) (string, error)
	}

	userClaims struct {
		UserID string `json:"user_id"`
		jwt.RegisteredClaims
	}

	resetClaims struct {
		Email string `json:"email"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
	}
)

func NewJWTService() JWTService {
	return &jwtService{
		secretKey: utils.GetConfig("JWT_SECRET"),
		issuer:    "FOODGRAM",
	}
}

func (j *jwtService) GenerateToken(userID string) string {
	claims := userClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    j.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return ""
	}
	return signed
}

func (j *jwtService) keyFunc(t *jwt.Token) (any, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateToken(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &userClaims{}, j.keyFunc)
}

func (j *jwtService) GetUserIDByToken(token string) (string, error) {
	parsed, err := j.ValidateToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrTokenInvalid
	}
	if !parsed.Valid {
		return "", domain.ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*userClaims)
	if !ok {
		return "", domain.ErrTokenInvalid
	}
	return claims.UserID, nil
}

func (j *jwtService) GenerateResetToken(email string, duration time.Duration) (string, error) {
	claims := resetClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    j.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

func (j *jwtService) ValidateResetToken(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &resetClaims{}, j.keyFunc)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrTokenInvalid
	}
	if !parsed.Valid {
		return "", domain.ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*resetClaims)
	if !ok {
		return "", domain.ErrTokenInvalid
	}
	return claims.Email, nil
}
