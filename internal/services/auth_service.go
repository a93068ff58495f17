package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"bizadmin/internal/domain"
	"bizadmin/internal/models"
	"bizadmin/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	TokenAccess  = "access"
	TokenRefresh = "refresh"
)

// Claims are carried by both token kinds; Type tells them apart.
type Claims struct {
	Role string `json:"role"`
	Type string `json:"typ"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim.
func (c Claims) UserID() int64 {
	id, _ := strconv.ParseInt(c.Subject, 10, 64)
	return id
}

type TokenPair struct {
	AccessToken  string            `json:"access_token"`
	RefreshToken string            `json:"refresh_token"`
	TokenType    string            `json:"token_type"`
	ExpiresIn    int64             `json:"expires_in"`
	User         models.PublicUser `json:"user"`
}

type UserStore interface {
	FindByLogin(ctx context.Context, login string) (models.PublicUser, string, error)
	FindByID(ctx context.Context, id int64) (models.PublicUser, error)
}

type RevocationStore interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// AuthService issues and checks bearer tokens.
type AuthService struct {
	Users      UserStore
	Tokens     RevocationStore
	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Now        func() time.Time
	RequestID  string
}

var errBadCredentials = domain.UnauthorizedError{Msg: "invalid login or password"}

func (s AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Login accepts an email or a username.
func (s AuthService) Login(ctx context.Context, login, password string) (TokenPair, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return TokenPair{}, domain.ValidationError{Msg: "login and password are required"}
	}

	user, hash, err := s.Users.FindByLogin(ctx, login)
	if domain.IsNotFound(err) {
		return TokenPair{}, errBadCredentials
	}
	if err != nil {
		return TokenPair{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return TokenPair{}, errBadCredentials
	}
	if !user.Active {
		return TokenPair{}, domain.UnauthorizedError{Msg: "account is disabled"}
	}

	utils.LogEvent(s.RequestID, "auth", "login", "user_id="+strconv.FormatInt(user.ID, 10))
	return s.issue(user)
}

// Refresh trades a refresh token for a new pair; the old one is revoked.
func (s AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := s.Parse(ctx, refreshToken, TokenRefresh)
	if err != nil {
		return TokenPair{}, err
	}
	user, err := s.Users.FindByID(ctx, claims.UserID())
	if err != nil {
		if domain.IsNotFound(err) {
			return TokenPair{}, domain.UnauthorizedError{Msg: "account no longer exists"}
		}
		return TokenPair{}, err
	}
	if !user.Active {
		return TokenPair{}, domain.UnauthorizedError{Msg: "account is disabled"}
	}
	if err := s.revoke(ctx, claims); err != nil {
		return TokenPair{}, err
	}
	utils.LogEvent(s.RequestID, "auth", "refresh", "user_id="+claims.Subject)
	return s.issue(user)
}

// Logout revokes the presented access token.
func (s AuthService) Logout(ctx context.Context, claims *Claims) error {
	if claims == nil {
		return domain.UnauthorizedError{}
	}
	utils.LogEvent(s.RequestID, "auth", "logout", "user_id="+claims.Subject)
	return s.revoke(ctx, claims)
}

func (s AuthService) Me(ctx context.Context, claims *Claims) (models.PublicUser, error) {
	if claims == nil {
		return models.PublicUser{}, domain.UnauthorizedError{}
	}
	return s.Users.FindByID(ctx, claims.UserID())
}

// Parse verifies signature, expiry, kind and revocation.
func (s AuthService) Parse(ctx context.Context, raw, wantType string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(strings.TrimSpace(raw), claims, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.UnauthorizedError{Msg: "token expired", Err: err}
		}
		return nil, domain.UnauthorizedError{Msg: "invalid token", Err: err}
	}
	if claims.Type != wantType {
		return nil, domain.UnauthorizedError{Msg: "wrong token type"}
	}
	if s.Tokens != nil && claims.ID != "" {
		revoked, err := s.Tokens.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("check revocation: %w", err)
		}
		if revoked {
			return nil, domain.UnauthorizedError{Msg: "token revoked"}
		}
	}
	return claims, nil
}

func (s AuthService) issue(user models.PublicUser) (TokenPair, error) {
	access, err := s.sign(user, TokenAccess, s.AccessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.sign(user, TokenRefresh, s.RefreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.AccessTTL.Seconds()),
		User:         user,
	}, nil
}

func (s AuthService) sign(user models.PublicUser, kind string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		Role: user.Role,
		Type: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", domain.InternalError{Msg: "failed to sign token", Err: err}
	}
	return signed, nil
}

func (s AuthService) revoke(ctx context.Context, claims *Claims) error {
	if s.Tokens == nil || claims.ID == "" {
		return nil
	}
	exp := s.now().Add(s.RefreshTTL)
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}
	if err := s.Tokens.Revoke(ctx, claims.ID, exp); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}
