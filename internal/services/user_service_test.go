package services

import (
	"context"
	"testing"

	"github.com/Dias221467/LinguaConnect/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegisterUserValidation(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		fullName string
	}{
		{"missing email", "", "secret1", "Alice"},
		{"missing password", "alice@example.com", "", "Alice"},
		{"missing full name", "alice@example.com", "secret1", ""},
		{"password too short", "alice@example.com", "12345", "Alice"},
		{"invalid email", "not-an-email", "secret1", "Alice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewUserService(newFakeUserStore(), nil)
			_, err := svc.RegisterUser(context.Background(), tt.email, tt.password, tt.fullName)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestRegisterUserPasswordLengthBoundary(t *testing.T) {
	svc := NewUserService(newFakeUserStore(), nil)

	_, err := svc.RegisterUser(context.Background(), "alice@example.com", "12345", "Alice")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	user, err := svc.RegisterUser(context.Background(), "alice@example.com", "123456", "Alice")
	require.NoError(t, err)
	assert.False(t, user.ID.IsZero())
}

func TestRegisterUserHashesPassword(t *testing.T) {
	svc := NewUserService(newFakeUserStore(), nil)

	user, err := svc.RegisterUser(context.Background(), "alice@example.com", "secret1", "Alice")
	require.NoError(t, err)

	assert.NotEqual(t, "secret1", user.HashedPassword)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("secret1")))
	assert.Contains(t, user.ProfilePic, "dicebear.com")
	assert.False(t, user.IsOnboarded)
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	svc := NewUserService(newFakeUserStore(), nil)

	_, err := svc.RegisterUser(context.Background(), "alice@example.com", "secret1", "Alice")
	require.NoError(t, err)

	_, err = svc.RegisterUser(context.Background(), "alice@example.com", "secret2", "Alice Again")
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestRegisterUserSyncsProvider(t *testing.T) {
	provider := &fakeProvider{}
	svc := NewUserService(newFakeUserStore(), provider)

	user, err := svc.RegisterUser(context.Background(), "alice@example.com", "secret1", "Alice")
	require.NoError(t, err)
	assert.Equal(t, []string{user.ID.Hex()}, provider.upserted)
}

func TestRegisterUserProviderOutageIsSwallowed(t *testing.T) {
	svc := NewUserService(newFakeUserStore(), &fakeProvider{failing: true})

	// A messaging-provider outage must never block account creation.
	_, err := svc.RegisterUser(context.Background(), "alice@example.com", "secret1", "Alice")
	assert.NoError(t, err)
}

func TestAuthenticateUser(t *testing.T) {
	svc := NewUserService(newFakeUserStore(), nil)
	created, err := svc.RegisterUser(context.Background(), "alice@example.com", "secret1", "Alice")
	require.NoError(t, err)

	user, err := svc.AuthenticateUser(context.Background(), "alice@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = svc.AuthenticateUser(context.Background(), "alice@example.com", "wrong-pass")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = svc.AuthenticateUser(context.Background(), "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestOnboardUserListsMissingFields(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, nil)
	alice := store.addUser("alice", false)

	_, err := svc.OnboardUser(context.Background(), alice.ID, OnboardInput{
		FullName: "Alice",
		Location: "Almaty",
	})
	require.ErrorIs(t, err, apperrors.ErrValidation)

	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.ElementsMatch(t, []string{"bio", "nativeLanguage", "LearningLanguage"}, ve.Fields)
}

func TestOnboardUserCompletesProfile(t *testing.T) {
	store := newFakeUserStore()
	provider := &fakeProvider{}
	svc := NewUserService(store, provider)
	alice := store.addUser("alice", false)

	user, err := svc.OnboardUser(context.Background(), alice.ID, OnboardInput{
		FullName:         "Alice",
		Bio:              "Learning Spanish",
		NativeLanguage:   "English",
		LearningLanguage: "Spanish",
		Location:         "London",
	})
	require.NoError(t, err)

	assert.True(t, user.IsOnboarded)
	assert.Equal(t, "Spanish", user.LearningLanguage)
	assert.Equal(t, []string{alice.ID.Hex()}, provider.upserted)
}

func TestGetRecommendedUsersExclusions(t *testing.T) {
	store := newFakeUserStore()
	friendStore := newFakeFriendStore(store)
	userSvc := NewUserService(store, nil)
	friendSvc := NewFriendService(friendStore, store)
	ctx := context.Background()

	alice := store.addUser("alice", true)
	bob := store.addUser("bob", true)
	carol := store.addUser("carol", true)
	store.addUser("dave", false) // not onboarded

	// Make bob a friend of alice.
	req, err := friendSvc.SendFriendRequest(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.NoError(t, friendSvc.AcceptFriendRequest(ctx, req.ID, bob.ID))

	recommended, err := userSvc.GetRecommendedUsers(ctx, alice.ID)
	require.NoError(t, err)

	require.Len(t, recommended, 1)
	assert.Equal(t, carol.ID, recommended[0].ID)
}

func TestGetFriendsEmpty(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, nil)
	alice := store.addUser("alice", true)

	friends, err := svc.GetFriends(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Empty(t, friends)
}
