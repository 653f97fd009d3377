package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"eduplatform/dto"
	apperrors "eduplatform/errors"
	"eduplatform/models"
	"eduplatform/services/logger"
	"eduplatform/validator"

	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"
	"gorm.io/gorm"
)

const msgInvalidCredentials = "Invalid email or password"

// GoogleVerifier validates a Google ID token for the given audience.
type GoogleVerifier func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

type AuthServiceInterface interface {
	Register(ctx context.Context, in dto.RegisterInput) (*dto.AuthResponse, error)
	Login(ctx context.Context, in dto.LoginInput) (*dto.AuthResponse, error)
	GoogleLogin(ctx context.Context, in dto.GoogleLoginInput) (*dto.AuthResponse, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)
}

type AuthService struct {
	db             *gorm.DB
	logger         logger.Logger
	tokens         *TokenManager
	googleClientID string
	verifyGoogle   GoogleVerifier
}

type AuthServiceOptions struct {
	DB             *gorm.DB
	Logger         logger.Logger
	Tokens         *TokenManager
	GoogleClientID string
	VerifyGoogle   GoogleVerifier
}

func NewAuthService(opts AuthServiceOptions) *AuthService {
	s := &AuthService{
		db:             opts.DB,
		logger:         opts.Logger,
		tokens:         opts.Tokens,
		googleClientID: opts.GoogleClientID,
		verifyGoogle:   opts.VerifyGoogle,
	}
	if s.logger == nil {
		s.logger = logger.NewNop()
	}
	if s.verifyGoogle == nil {
		s.verifyGoogle = idtoken.Validate
	}
	return s
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, in dto.RegisterInput) (*dto.AuthResponse, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	email := normalizeEmail(in.Email)

	var existing int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&existing).Error; err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to check email", err)
	}
	if existing > 0 {
		return nil, apperrors.Conflict(apperrors.ErrCodeUserExists, "Email is already registered")
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInternal, "Failed to hash password", err)
	}
	role := in.Role
	if role == "" {
		role = models.RoleStudent
	}

	user := models.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to create user", err)
	}
	s.logger.Info("registered user %d (%s)", user.ID, user.Role)
	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, in dto.LoginInput) (*dto.AuthResponse, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(in.Email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Unauthorized(apperrors.ErrCodeInvalidCredentials, msgInvalidCredentials)
	}
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to load user", err)
	}
	if user.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, apperrors.Unauthorized(apperrors.ErrCodeInvalidCredentials, msgInvalidCredentials)
	}
	return s.issue(user)
}

// GoogleLogin signs in with a Google ID token, linking the Google account to
// an existing user with the same email or creating a new student.
func (s *AuthService) GoogleLogin(ctx context.Context, in dto.GoogleLoginInput) (*dto.AuthResponse, error) {
	if s.googleClientID == "" {
		return nil, apperrors.Unauthorized(apperrors.ErrCodeUnauthorized, "Google sign-in is not configured")
	}
	payload, err := s.verifyGoogle(ctx, in.IDToken, s.googleClientID)
	if err != nil {
		return nil, &apperrors.AppError{
			Code:    apperrors.ErrCodeInvalidToken,
			Kind:    apperrors.KindUnauthorized,
			Message: "Invalid Google token",
			Err:     err,
		}
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	email = normalizeEmail(email)
	if email == "" || payload.Subject == "" {
		return nil, apperrors.Unauthorized(apperrors.ErrCodeInvalidToken, "Google token has no email")
	}
	if name == "" {
		name = email
	}
	googleID := payload.Subject

	var user models.User
	err = s.db.WithContext(ctx).Where("google_id = ? OR email = ?", googleID, email).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.User{Name: name, Email: email, Role: models.RoleStudent, GoogleID: &googleID}
		if picture, ok := payload.Claims["picture"].(string); ok && picture != "" {
			user.Avatar = &picture
		}
		if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to create user", err)
		}
		s.logger.Info("created google user %d", user.ID)
	case err != nil:
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to load user", err)
	case user.GoogleID == nil:
		if err := s.db.WithContext(ctx).Model(&user).Update("google_id", googleID).Error; err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to link google account", err)
		}
		user.GoogleID = &googleID
	}
	return s.issue(user)
}

func (s *AuthService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound(apperrors.ErrCodeUserNotFound, "User not found")
	}
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to load user", err)
	}
	return &user, nil
}

func (s *AuthService) issue(user models.User) (*dto.AuthResponse, error) {
	token, err := s.tokens.GenerateToken(UserInfo{UserId: user.ID, Role: user.Role})
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInternal, "Failed to sign token", err)
	}
	return &dto.AuthResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.tokens.TTL() / time.Second),
		User:        dto.NewUserSummary(user),
	}, nil
}
