package user

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/muhammadheryan/storefront/cmd/config"
	"github.com/muhammadheryan/storefront/constant"
	"github.com/muhammadheryan/storefront/model"
	redisrepo "github.com/muhammadheryan/storefront/repository/redis"
	userrepo "github.com/muhammadheryan/storefront/repository/user"
	"github.com/muhammadheryan/storefront/utils/errors"
	"github.com/muhammadheryan/storefront/utils/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserApp interface {
	Register(ctx context.Context, req *model.SignupRequest) (*model.LoginResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	Logout(ctx context.Context, sessionID string) error
	Me(ctx context.Context, userID uint64) (*model.PublicUser, error)
	ValidateToken(ctx context.Context, tokenString string) (uint64, error)
	ValidateSession(ctx context.Context, sessionID string) (uint64, error)
}

type UserAppImpl struct {
	config    *config.Config
	userRepo  userrepo.UserRepository
	redisRepo redisrepo.Repository
}

func NewUserApp(config *config.Config, userRepo userrepo.UserRepository, redisRepo redisrepo.Repository) UserApp {
	return &UserAppImpl{
		config:    config,
		userRepo:  userRepo,
		redisRepo: redisRepo,
	}
}

// Register creates the account and opens a session for it.
func (s *UserAppImpl) Register(ctx context.Context, req *model.SignupRequest) (*model.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)

	taken, err := s.userRepo.Taken(ctx, username, email)
	if err != nil {
		logger.Error("[Register] err userRepo.Taken", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if taken.EmailTaken || taken.UsernameTaken {
		logger.Debug("[Register] credentials taken",
			zap.Bool("email", taken.EmailTaken),
			zap.Bool("username", taken.UsernameTaken))
		return nil, errors.SetCustomError(constant.ErrCredentialExists)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("[Register] err bcrypt.GenerateFromPassword", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	user, err := s.userRepo.Create(ctx, &model.UserEntity{
		Username:       username,
		Email:          email,
		HashedPassword: string(hashedPassword),
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
	})
	if err != nil {
		logger.Error("[Register] err userRepo.Create", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return s.openSession(ctx, "Register", user)
}

func (s *UserAppImpl) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	identifier := strings.ToLower(strings.TrimSpace(req.Identifier))

	if s.lockedOut(ctx, identifier) {
		return nil, errors.SetCustomError(constant.ErrTooManyAttempts)
	}

	user, err := s.userRepo.GetByIdentifier(ctx, req.Identifier)
	if err != nil {
		logger.Error("[Login] err userRepo.GetByIdentifier", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	// unknown identifiers fail exactly like a wrong password
	if user == nil {
		s.recordFailure(ctx, identifier)
		return nil, errors.SetCustomError(constant.ErrInvalidCredentials)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password))
	if err != nil {
		s.recordFailure(ctx, identifier)
		return nil, errors.SetCustomError(constant.ErrInvalidCredentials)
	}

	if err := s.redisRepo.Delete(ctx, attemptsKey(identifier)); err != nil {
		logger.Warn("[Login] err reset attempts", zap.String("error", err.Error()))
	}

	return s.openSession(ctx, "Login", user)
}

func (s *UserAppImpl) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.redisRepo.DeleteSession(ctx, sessionID); err != nil {
		logger.Error("[Logout] err DeleteSession", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

func (s *UserAppImpl) Me(ctx context.Context, userID uint64) (*model.PublicUser, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Error("[Me] err userRepo.GetByID", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}
	pub := user.Public()
	return &pub, nil
}

func (s *UserAppImpl) ValidateToken(ctx context.Context, tokenString string) (uint64, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(s.config.Auth.JWTSecret), nil
	})
	if err != nil {
		return 0, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return 0, fmt.Errorf("invalid claims")
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user id in token")
	}

	if claims.ID == "" {
		return 0, fmt.Errorf("token missing jti")
	}

	redisUserID, err := s.ValidateSession(ctx, claims.ID)
	if err != nil {
		return 0, err
	}

	if redisUserID != userID {
		return 0, fmt.Errorf("token does not match user session")
	}

	return userID, nil
}

// ValidateSession resolves a cookie session id to its user.
func (s *UserAppImpl) ValidateSession(ctx context.Context, sessionID string) (uint64, error) {
	if sessionID == "" {
		return 0, fmt.Errorf("empty session id")
	}
	userID, err := s.redisRepo.GetSession(ctx, sessionID)
	if err != nil {
		return 0, fmt.Errorf("invalid or expired session")
	}
	return userID, nil
}

func (s *UserAppImpl) openSession(ctx context.Context, method string, user *model.UserEntity) (*model.LoginResponse, error) {
	token, jti, err := s.generateJWT(user.ID)
	if err != nil {
		logger.Error("["+method+"] err generateJWT", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	err = s.redisRepo.SetSession(ctx, jti, user.ID, s.config.Auth.SessionExpTime)
	if err != nil {
		logger.Error("["+method+"] err SetSession", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.LoginResponse{
		User:      user.Public(),
		Token:     token,
		SessionID: jti,
	}, nil
}

// lockedOut fails open when Redis is unavailable.
func (s *UserAppImpl) lockedOut(ctx context.Context, identifier string) bool {
	ttl, err := s.redisRepo.TTL(ctx, cooldownKey(identifier))
	if err != nil {
		logger.Warn("[Login] err read cooldown", zap.String("error", err.Error()))
		return false
	}
	return ttl > 0
}

func (s *UserAppImpl) recordFailure(ctx context.Context, identifier string) {
	attempts, err := s.redisRepo.Incr(ctx, attemptsKey(identifier), s.config.Auth.LoginCooldown)
	if err != nil {
		logger.Warn("[Login] err count attempt", zap.String("error", err.Error()))
		return
	}
	if attempts < int64(s.config.Auth.LoginMaxAttempts) {
		return
	}

	logger.Warn("[Login] too many failed attempts", zap.String("identifier", identifier))
	if err := s.redisRepo.SetWithTTL(ctx, cooldownKey(identifier), "1", s.config.Auth.LoginCooldown); err != nil {
		logger.Warn("[Login] err set cooldown", zap.String("error", err.Error()))
	}
	if err := s.redisRepo.Delete(ctx, attemptsKey(identifier)); err != nil {
		logger.Warn("[Login] err reset attempts", zap.String("error", err.Error()))
	}
}

// generateJWT creates a JWT token for the user
func (s *UserAppImpl) generateJWT(userID uint64) (string, string, error) {
	newUUID, _ := uuid.NewRandom()
	claims := jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", userID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.config.Auth.JWTExpiration)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ID:        newUUID.String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Auth.JWTSecret))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, claims.ID, nil
}

func attemptsKey(identifier string) string {
	return "login_attempts:" + identifier
}

func cooldownKey(identifier string) string {
	return "login_cooldown:" + identifier
}
