package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/academy_booking/internal/model"
	"github.com/Freeeeeet/academy_booking/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength минимальная длина пароля
const MinPasswordLength = 4

type AuthService struct {
	userRepo     UserRepository
	allowedRepo  AllowedStudentRepository
	sessionRepo  SessionRepository
	sessionTTL   time.Duration
	passwordCost int
	now          func() time.Time
	logger       *zap.Logger
}

func NewAuthService(
	userRepo UserRepository,
	allowedRepo AllowedStudentRepository,
	sessionRepo SessionRepository,
	sessionTTL time.Duration,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		allowedRepo:  allowedRepo,
		sessionRepo:  sessionRepo,
		sessionTTL:   sessionTTL,
		passwordCost: bcrypt.DefaultCost,
		now:          time.Now,
		logger:       logger,
	}
}

// Register регистрирует студента из белого списка и открывает сессию
func (s *AuthService) Register(ctx context.Context, phone, password string) (*model.User, *model.Session, error) {
	phone = NormalizePhone(phone)
	if phone == "" {
		return nil, nil, ErrPhoneRequired
	}
	if len(password) < MinPasswordLength {
		return nil, nil, ErrPasswordTooShort
	}

	existing, err := s.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, nil, fmt.Errorf("check existing user: %w", err)
	}
	if existing != nil {
		return nil, nil, ErrAlreadyRegistered
	}

	allowed, err := s.allowedRepo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, nil, fmt.Errorf("check roster: %w", err)
	}
	if allowed == nil {
		s.logger.Info("Registration rejected: not on roster", zap.String("phone", phone))
		return nil, nil, ErrNotOnRoster
	}

	hash, err := HashPassword(password, s.passwordCost)
	if err != nil {
		return nil, nil, err
	}

	seat := allowed.SeatNumber
	user := &model.User{
		PhoneNumber:  phone,
		PasswordHash: hash,
		Name:         allowed.Name,
		SeatNumber:   &seat,
		Role:         model.RoleStudent,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, nil, ErrAlreadyRegistered
		}
		return nil, nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("New user registered",
		zap.Int64("user_id", user.ID),
		zap.String("name", user.Name),
		zap.Int("seat_number", seat),
	)

	session, err := s.openSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	return user, session, nil
}

// Login проверяет пароль и открывает сессию
func (s *AuthService) Login(ctx context.Context, phone, password string) (*model.User, *model.Session, error) {
	phone = NormalizePhone(phone)
	if phone == "" {
		return nil, nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil || !CheckPassword(user.PasswordHash, password) {
		return nil, nil, ErrInvalidCredentials
	}

	session, err := s.openSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("User logged in", zap.Int64("user_id", user.ID))

	return user, session, nil
}

// Logout закрывает сессию
func (s *AuthService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Authenticate возвращает пользователя сессии или nil, если сессии нет или она истекла
func (s *AuthService) Authenticate(ctx context.Context, sessionID uuid.UUID) (*model.User, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session == nil || session.IsExpired(s.now()) {
		return nil, nil
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("get session user: %w", err)
	}

	return user, nil
}

// PurgeExpiredSessions удаляет истёкшие сессии
func (s *AuthService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return s.sessionRepo.DeleteExpired(ctx, s.now())
}

func (s *AuthService) openSession(ctx context.Context, user *model.User) (*model.Session, error) {
	session := &model.Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		ExpiresAt: s.now().Add(s.sessionTTL),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}

	return session, nil
}

// HashPassword возвращает bcrypt хеш пароля
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword сравнивает пароль с bcrypt хешем
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
