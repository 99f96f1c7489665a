package service

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken 令牌缺失、签名错误、过期或主体无法解析
var ErrInvalidToken = errors.New("invalid token")

// PatientClaims 在标准声明之外携带患者 ID
type PatientClaims struct {
	jwt.RegisteredClaims
	PatientID uint `json:"pid"`
}

// TokenService 负责签发和校验 API 使用的 HS256 令牌
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService 构造 TokenService
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue 为患者签发一个带过期时间的令牌
func (s *TokenService) Issue(patientID uint) (string, error) {
	issued := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, PatientClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(patientID), 10),
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(s.ttl)),
		},
		PatientID: patientID,
	})
	return token.SignedString(s.secret)
}

// Parse 校验令牌并返回患者 ID
func (s *TokenService) Parse(raw string) (uint, error) {
	claims := &PatientClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid || claims.PatientID == 0 {
		return 0, ErrInvalidToken
	}
	return claims.PatientID, nil
}
