package service

import (
	"context"
	"testing"
	"time"

	"fitnessfreaks/api/internal/domain"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test-secret-not-for-production"

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("successful registration", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewAuthService(repo, testJWTSecret, time.Hour)

		user, err := svc.Register(ctx, "Alex", "alex@example.com", "correct horse battery", "lose weight")
		require.NoError(t, err)
		assert.False(t, user.ID.IsZero())
		assert.Equal(t, "alex@example.com", user.Email)
		assert.Empty(t, user.PasswordHash, "hash never leaves the service")

		stored, err := repo.GetByEmail(ctx, "alex@example.com")
		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct horse battery")))
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := newFakeUserRepo(domain.User{Email: "taken@example.com"})
		svc := NewAuthService(repo, testJWTSecret, time.Hour)

		_, err := svc.Register(ctx, "Alex", "taken@example.com", "password123", "")
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})

	t.Run("empty fields", func(t *testing.T) {
		svc := NewAuthService(newFakeUserRepo(), testJWTSecret, time.Hour)
		_, err := svc.Register(ctx, "", "a@b.c", "password123", "")
		assert.Error(t, err)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := newFakeUserRepo()
	_, err = repo.Create(ctx, &domain.User{Name: "Alex", Email: "alex@example.com", PasswordHash: string(hash)})
	require.NoError(t, err)
	svc := NewAuthService(repo, testJWTSecret, time.Hour)

	t.Run("valid credentials yield a signed token", func(t *testing.T) {
		token, user, err := svc.Login(ctx, "alex@example.com", "password123")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Empty(t, user.PasswordHash)

		claims := jwt.MapClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(testJWTSecret), nil
		})
		require.NoError(t, err)
		assert.True(t, parsed.Valid)
		assert.Equal(t, user.ID.Hex(), claims["uid"])
		assert.Equal(t, "fitnessfreaks", claims["iss"])
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "alex@example.com", "not-the-password")
		assert.ErrorIs(t, err, ErrAuthenticationFailed)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "ghost@example.com", "password123")
		assert.ErrorIs(t, err, ErrAuthenticationFailed)
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	repo := newFakeUserRepo()
	user := &domain.User{Name: "Alex", Email: "alex@example.com", PasswordHash: "irrelevant", FitnessGoals: "bulk"}
	_, err := repo.Create(ctx, user)
	require.NoError(t, err)
	svc := NewAuthService(repo, testJWTSecret, time.Hour)

	t.Run("partial update leaves other fields", func(t *testing.T) {
		goals := "cut"
		updated, err := svc.UpdateProfile(ctx, user.ID, ProfilePatch{FitnessGoals: &goals})
		require.NoError(t, err)
		assert.Equal(t, "cut", updated.FitnessGoals)
		assert.Equal(t, "Alex", updated.Name)
		assert.Equal(t, "alex@example.com", updated.Email)
	})

	t.Run("email collision", func(t *testing.T) {
		_, err := repo.Create(ctx, &domain.User{Name: "Riley", Email: "riley@example.com"})
		require.NoError(t, err)

		email := "riley@example.com"
		_, err = svc.UpdateProfile(ctx, user.ID, ProfilePatch{Email: &email})
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})

	t.Run("password change is re-hashed", func(t *testing.T) {
		password := "a-brand-new-password"
		_, err := svc.UpdateProfile(ctx, user.ID, ProfilePatch{Password: &password})
		require.NoError(t, err)

		stored, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(password)))
	})

	t.Run("unknown user", func(t *testing.T) {
		name := "Nobody"
		_, err := svc.UpdateProfile(ctx, primitive.NewObjectID(), ProfilePatch{Name: &name})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
