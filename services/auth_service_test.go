package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"eduplatform/dto"
	apperrors "eduplatform/errors"
	"eduplatform/models"
	"eduplatform/services/logger"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	token, err := tm.GenerateToken(UserInfo{UserId: 7, Role: models.RoleTeacher})
	require.NoError(t, err)

	info, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), info.UserId)
	assert.Equal(t, models.RoleTeacher, info.Role)
}

func TestTokenManager_Rejects(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	other, err := NewTokenManager("other", time.Hour).GenerateToken(UserInfo{UserId: 1, Role: models.RoleAdmin})
	require.NoError(t, err)
	_, err = tm.ParseToken(other)
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))

	expired := NewTokenManager("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.GenerateToken(UserInfo{UserId: 1, Role: models.RoleAdmin})
	require.NoError(t, err)
	_, err = tm.ParseToken(old)
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserInfo: UserInfo{UserId: 1, Role: models.RoleAdmin}})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = tm.ParseToken(unsigned)
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))

	badRole, err := tm.GenerateToken(UserInfo{UserId: 1, Role: "superuser"})
	require.NoError(t, err)
	_, err = tm.ParseToken(badRole)
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))
	assert.Equal(t, apperrors.ErrCodeInvalidRole, apperrors.GetAppError(err).Code)

	_, err = tm.ParseToken("not-a-token")
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))
}

func newAuthService(t *testing.T, verify GoogleVerifier) *AuthService {
	t.Helper()
	return NewAuthService(AuthServiceOptions{
		DB:             newTestDB(t),
		Logger:         logger.NewNop(),
		Tokens:         NewTokenManager("secret", time.Hour),
		GoogleClientID: "client-id",
		VerifyGoogle:   verify,
	})
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t, nil)
	ctx := context.Background()

	res, err := svc.Register(ctx, dto.RegisterInput{Name: "Sara", Email: "Sara@School.test", Password: "hunter22!", Role: models.RoleTeacher})
	require.NoError(t, err)
	assert.Equal(t, "sara@school.test", res.User.Email)
	assert.Equal(t, models.RoleTeacher, res.User.Role)
	assert.EqualValues(t, 3600, res.ExpiresIn)

	info, err := svc.tokens.ParseToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, info.UserId)

	_, err = svc.Register(ctx, dto.RegisterInput{Name: "Sara", Email: "sara@school.test", Password: "hunter22!"})
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))

	_, err = svc.Register(ctx, dto.RegisterInput{Name: "Eve", Email: "eve@school.test", Password: "hunter22!", Role: models.RoleAdmin})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	student, err := svc.Register(ctx, dto.RegisterInput{Name: "Omar", Email: "omar@school.test", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, student.User.Role)

	login, err := svc.Login(ctx, dto.LoginInput{Email: "SARA@school.test", Password: "hunter22!"})
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, login.User.ID)

	_, err = svc.Login(ctx, dto.LoginInput{Email: "sara@school.test", Password: "wrong"})
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))
	_, err = svc.Login(ctx, dto.LoginInput{Email: "nobody@school.test", Password: "wrong"})
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))
}

func TestGoogleLogin(t *testing.T) {
	verify := func(_ context.Context, token, audience string) (*idtoken.Payload, error) {
		if token != "good" || audience != "client-id" {
			return nil, errors.New("invalid token")
		}
		return &idtoken.Payload{
			Subject: "google-123",
			Claims:  map[string]interface{}{"email": "lina@gmail.test", "name": "Lina"},
		}, nil
	}
	svc := newAuthService(t, verify)
	ctx := context.Background()

	first, err := svc.GoogleLogin(ctx, dto.GoogleLoginInput{IDToken: "good"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, first.User.Role)
	assert.Equal(t, "Lina", first.User.Name)

	second, err := svc.GoogleLogin(ctx, dto.GoogleLoginInput{IDToken: "good"})
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, second.User.ID)

	_, err = svc.GoogleLogin(ctx, dto.GoogleLoginInput{IDToken: "bad"})
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))

	// Google-only accounts cannot use password login.
	_, err = svc.Login(ctx, dto.LoginInput{Email: "lina@gmail.test", Password: ""})
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))
}

func TestGoogleLogin_LinksExistingEmail(t *testing.T) {
	verify := func(context.Context, string, string) (*idtoken.Payload, error) {
		return &idtoken.Payload{Subject: "g-9", Claims: map[string]interface{}{"email": "teacher@school.test"}}, nil
	}
	svc := newAuthService(t, verify)
	ctx := context.Background()

	reg, err := svc.Register(ctx, dto.RegisterInput{Name: "T", Email: "teacher@school.test", Password: "password1", Role: models.RoleTeacher})
	require.NoError(t, err)

	res, err := svc.GoogleLogin(ctx, dto.GoogleLoginInput{IDToken: "any"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, res.User.ID)
	assert.Equal(t, models.RoleTeacher, res.User.Role)

	u, err := svc.GetUser(ctx, reg.User.ID)
	require.NoError(t, err)
	require.NotNil(t, u.GoogleID)
	assert.Equal(t, "g-9", *u.GoogleID)
}
