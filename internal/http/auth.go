package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"hostelmate-data/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type contextKey string

const contextKeyCaller = contextKey("caller")

// Claims 访问令牌声明：sub = owner id，is_superuser = 全局视图
type Claims struct {
	IsSuperuser bool `json:"is_superuser"`
	jwt.RegisteredClaims
}

// Authenticator 校验 HS256 Bearer 令牌并把 Caller 写入 context
type Authenticator struct {
	secret []byte
	issuer string
	logger *zap.Logger
}

func NewAuthenticator(secret, issuer string, logger *zap.Logger) *Authenticator {
	return &Authenticator{secret: []byte(secret), issuer: issuer, logger: logger}
}

// IssueToken 签发令牌（开发联调与测试使用）
func (a *Authenticator) IssueToken(caller domain.Caller, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		IsSuperuser: caller.Privileged,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   caller.OwnerID,
			Issuer:    a.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// Parse 解析并校验令牌
func (a *Authenticator) Parse(tokenStr string) (domain.Caller, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	var claims Claims
	tok, err := jwt.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, opts...)
	if err != nil {
		return domain.Caller{}, err
	}
	if !tok.Valid {
		return domain.Caller{}, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return domain.Caller{}, errors.New("missing subject")
	}
	return domain.Caller{OwnerID: claims.Subject, Privileged: claims.IsSuperuser}, nil
}

// Require 需要登录的接口：令牌缺失或无效返回 401；过期返回 code=60401
func (a *Authenticator) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenStr, ok := bearerToken(r)
		if !ok {
			writeJSON(w, http.StatusUnauthorized, Fail("missing bearer token"))
			return
		}

		caller, err := a.Parse(tokenStr)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				writeJSON(w, http.StatusUnauthorized, Result[any]{Code: ResultTokenExpired, Type: "error", Message: "token expired"})
				return
			}
			a.logger.Debug("Rejected token", zap.String("path", r.URL.Path), zap.Error(err))
			writeJSON(w, http.StatusUnauthorized, Fail("invalid token"))
			return
		}

		next(w, r.WithContext(WithCaller(r.Context(), caller)))
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(h[len(prefix):]), true
}

// WithCaller 把调用方写入 context
func WithCaller(ctx context.Context, caller domain.Caller) context.Context {
	return context.WithValue(ctx, contextKeyCaller, caller)
}

// CallerFrom 读取 Require 写入的调用方
func CallerFrom(ctx context.Context) (domain.Caller, bool) {
	caller, ok := ctx.Value(contextKeyCaller).(domain.Caller)
	return caller, ok
}
