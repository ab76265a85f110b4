package services

import (
	"context"
	"fmt"

	"github.com/Dias221467/LinguaConnect/internal/models"
	"github.com/Dias221467/LinguaConnect/pkg/apperrors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory store fakes mirroring the repository semantics, including the
// unique pair index and set-semantics friend adds.

type fakeUserStore struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[primitive.ObjectID]*models.User)}
}

func (f *fakeUserStore) addUser(fullName string, onboarded bool) *models.User {
	user := &models.User{
		ID:          primitive.NewObjectID(),
		FullName:    fullName,
		Email:       fullName + "@example.com",
		IsOnboarded: onboarded,
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeUserStore) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return nil, fmt.Errorf("email already exists: %w", apperrors.ErrConflict)
		}
	}
	user.ID = primitive.NewObjectID()
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, fmt.Errorf("user with email %s: %w", email, apperrors.ErrNotFound)
}

func (f *fakeUserStore) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id.Hex(), apperrors.ErrNotFound)
	}
	return user, nil
}

func (f *fakeUserStore) UpdateUser(ctx context.Context, id primitive.ObjectID, update map[string]interface{}) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id.Hex(), apperrors.ErrNotFound)
	}
	for key, value := range update {
		switch key {
		case "full_name":
			user.FullName = value.(string)
		case "bio":
			user.Bio = value.(string)
		case "native_language":
			user.NativeLanguage = value.(string)
		case "learning_language":
			user.LearningLanguage = value.(string)
		case "location":
			user.Location = value.(string)
		case "is_onboarded":
			user.IsOnboarded = value.(bool)
		}
	}
	return user, nil
}

func (f *fakeUserStore) GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	var users []models.User
	for _, id := range ids {
		if user, ok := f.users[id]; ok {
			users = append(users, *user)
		}
	}
	return users, nil
}

func (f *fakeUserStore) GetRecommended(ctx context.Context, userID primitive.ObjectID, friendIDs []primitive.ObjectID) ([]models.User, error) {
	excluded := map[primitive.ObjectID]bool{userID: true}
	for _, id := range friendIDs {
		excluded[id] = true
	}

	var users []models.User
	for _, user := range f.users {
		if !excluded[user.ID] && user.IsOnboarded {
			users = append(users, *user)
		}
	}
	return users, nil
}

type fakeFriendStore struct {
	users    *fakeUserStore
	requests map[primitive.ObjectID]*models.FriendRequest
}

func newFakeFriendStore(users *fakeUserStore) *fakeFriendStore {
	return &fakeFriendStore{
		users:    users,
		requests: make(map[primitive.ObjectID]*models.FriendRequest),
	}
}

func (f *fakeFriendStore) CreateRequest(ctx context.Context, req *models.FriendRequest) (*models.FriendRequest, error) {
	pairKey := models.FriendRequestPairKey(req.SenderID, req.RecipientID)
	for _, existing := range f.requests {
		if existing.PairKey == pairKey {
			return nil, fmt.Errorf("friend request already exists between these users: %w", apperrors.ErrConflict)
		}
	}

	req.ID = primitive.NewObjectID()
	req.PairKey = pairKey
	req.Status = models.RequestStatusPending
	f.requests[req.ID] = req
	return req, nil
}

func (f *fakeFriendStore) GetRequestByID(ctx context.Context, id primitive.ObjectID) (*models.FriendRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, fmt.Errorf("friend request %s: %w", id.Hex(), apperrors.ErrNotFound)
	}
	return req, nil
}

func (f *fakeFriendStore) ExistsBetween(ctx context.Context, a, b primitive.ObjectID) (bool, error) {
	pairKey := models.FriendRequestPairKey(a, b)
	for _, req := range f.requests {
		if req.PairKey == pairKey {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeFriendStore) AcceptRequest(ctx context.Context, req *models.FriendRequest) error {
	stored, ok := f.requests[req.ID]
	if !ok {
		return fmt.Errorf("friend request %s: %w", req.ID.Hex(), apperrors.ErrNotFound)
	}
	stored.Status = models.RequestStatusAccepted
	f.addFriend(stored.SenderID, stored.RecipientID)
	f.addFriend(stored.RecipientID, stored.SenderID)
	return nil
}

func (f *fakeFriendStore) addFriend(userID, friendID primitive.ObjectID) {
	user := f.users.users[userID]
	if user == nil {
		return
	}
	for _, id := range user.Friends {
		if id == friendID {
			return
		}
	}
	user.Friends = append(user.Friends, friendID)
}

func (f *fakeFriendStore) GetPendingByRecipient(ctx context.Context, recipientID primitive.ObjectID) ([]models.FriendRequest, error) {
	return f.filter(func(req *models.FriendRequest) bool {
		return req.RecipientID == recipientID && req.Status == models.RequestStatusPending
	}), nil
}

func (f *fakeFriendStore) GetPendingBySender(ctx context.Context, senderID primitive.ObjectID) ([]models.FriendRequest, error) {
	return f.filter(func(req *models.FriendRequest) bool {
		return req.SenderID == senderID && req.Status == models.RequestStatusPending
	}), nil
}

func (f *fakeFriendStore) GetAcceptedBySender(ctx context.Context, senderID primitive.ObjectID) ([]models.FriendRequest, error) {
	return f.filter(func(req *models.FriendRequest) bool {
		return req.SenderID == senderID && req.Status == models.RequestStatusAccepted
	}), nil
}

func (f *fakeFriendStore) filter(keep func(*models.FriendRequest) bool) []models.FriendRequest {
	var out []models.FriendRequest
	for _, req := range f.requests {
		if keep(req) {
			out = append(out, *req)
		}
	}
	return out
}

// fakeProvider records provider calls; when failing is set every call errors.
type fakeProvider struct {
	failing  bool
	upserted []string
	tokens   []string
}

func (p *fakeProvider) UpsertUser(ctx context.Context, id, name, image string) error {
	if p.failing {
		return fmt.Errorf("provider unreachable: %w", apperrors.ErrExternalProvider)
	}
	p.upserted = append(p.upserted, id)
	return nil
}

func (p *fakeProvider) CreateToken(userID string) (string, error) {
	if p.failing {
		return "", fmt.Errorf("provider unreachable: %w", apperrors.ErrExternalProvider)
	}
	token := "token-" + userID
	p.tokens = append(p.tokens, token)
	return token, nil
}
