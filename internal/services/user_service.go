package services

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	"github.com/Dias221467/LinguaConnect/internal/models"
	"github.com/Dias221467/LinguaConnect/pkg/apperrors"
	"github.com/Dias221467/LinguaConnect/pkg/chat"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserStore is the persistence contract the user service needs.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateUser(ctx context.Context, id primitive.ObjectID, update map[string]interface{}) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	GetRecommended(ctx context.Context, userID primitive.ObjectID, friendIDs []primitive.ObjectID) ([]models.User, error)
}

// UserService encapsulates the business logic for accounts, onboarding and
// the recommendation query.
type UserService struct {
	repo     UserStore
	provider chat.Provider
}

// NewUserService creates a new instance of UserService.
func NewUserService(repo UserStore, provider chat.Provider) *UserService {
	return &UserService{
		repo:     repo,
		provider: provider,
	}
}

// OnboardInput is the one-time profile-completion payload. All fields are
// required.
type OnboardInput struct {
	FullName         string `json:"fullName"`
	Bio              string `json:"bio"`
	NativeLanguage   string `json:"nativeLanguage"`
	LearningLanguage string `json:"LearningLanguage"`
	Location         string `json:"location"`
}

// RegisterUser validates signup input, hashes the password and creates the
// account with a random avatar. The messaging-provider mirror is best-effort:
// a provider outage never blocks signup.
func (s *UserService) RegisterUser(ctx context.Context, email, password, fullName string) (*models.User, error) {
	logrus.Info("Registering new user")

	if email == "" || password == "" || fullName == "" {
		return nil, &apperrors.ValidationError{Message: "All fields are required"}
	}
	if len(password) < 6 {
		return nil, &apperrors.ValidationError{Message: "Password must be at least 6 characters"}
	}
	if !emailRegex.MatchString(email) {
		return nil, &apperrors.ValidationError{Message: "Invalid email format"}
	}

	// Check if the email is already registered
	existingUser, _ := s.repo.GetUserByEmail(ctx, email)
	if existingUser != nil {
		logrus.WithField("email", email).Warn("Email already in use")
		return nil, fmt.Errorf("email already exists, please try a different one: %w", apperrors.ErrConflict)
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Error("Password hashing failed")
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:          email,
		FullName:       fullName,
		HashedPassword: string(hashedPwd),
		ProfilePic:     randomAvatar(),
	}

	createdUser, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		logrus.WithError(err).Error("User registration failed")
		return nil, err
	}

	s.syncProviderUser(ctx, createdUser)

	logrus.WithField("userID", createdUser.ID.Hex()).Info("User registered successfully")
	return createdUser, nil
}

// AuthenticateUser verifies the email and password and returns the user if
// credentials are valid. Both failure modes report the same message.
func (s *UserService) AuthenticateUser(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, &apperrors.ValidationError{Message: "All fields are required"}
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		logrus.WithField("email", email).Warn("Login attempt for unknown email")
		return nil, fmt.Errorf("invalid email or password: %w", apperrors.ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		logrus.WithField("email", email).Warn("Invalid credentials")
		return nil, fmt.Errorf("invalid email or password: %w", apperrors.ErrUnauthorized)
	}

	logrus.WithField("userID", user.ID.Hex()).Info("User authenticated successfully")
	return user, nil
}

// OnboardUser completes the one-time profile step. Missing fields are
// reported individually so the form can highlight them.
func (s *UserService) OnboardUser(ctx context.Context, userID primitive.ObjectID, input OnboardInput) (*models.User, error) {
	var missing []string
	if input.FullName == "" {
		missing = append(missing, "fullName")
	}
	if input.Bio == "" {
		missing = append(missing, "bio")
	}
	if input.NativeLanguage == "" {
		missing = append(missing, "nativeLanguage")
	}
	if input.LearningLanguage == "" {
		missing = append(missing, "LearningLanguage")
	}
	if input.Location == "" {
		missing = append(missing, "location")
	}
	if len(missing) > 0 {
		return nil, &apperrors.ValidationError{
			Message: "All fields are required",
			Fields:  missing,
		}
	}

	update := map[string]interface{}{
		"full_name":         input.FullName,
		"bio":               input.Bio,
		"native_language":   input.NativeLanguage,
		"learning_language": input.LearningLanguage,
		"location":          input.Location,
		"is_onboarded":      true,
	}

	updatedUser, err := s.repo.UpdateUser(ctx, userID, update)
	if err != nil {
		return nil, err
	}

	s.syncProviderUser(ctx, updatedUser)

	logrus.WithField("userID", userID.Hex()).Info("User onboarded")
	return updatedUser, nil
}

// GetUser retrieves a user by their ID.
func (s *UserService) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

// GetRecommendedUsers lists onboarded users who are neither the given user
// nor already their friend.
func (s *UserService) GetRecommendedUsers(ctx context.Context, userID primitive.ObjectID) ([]models.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	recommended, err := s.repo.GetRecommended(ctx, userID, user.Friends)
	if err != nil {
		return nil, err
	}
	if recommended == nil {
		recommended = []models.User{}
	}
	return recommended, nil
}

// GetFriends returns the user's friends as public profiles.
func (s *UserService) GetFriends(ctx context.Context, userID primitive.ObjectID) ([]models.PublicUser, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(user.Friends) == 0 {
		return []models.PublicUser{}, nil
	}

	users, err := s.repo.GetUsersByIDs(ctx, user.Friends)
	if err != nil {
		return nil, fmt.Errorf("failed to get friends: %v", err)
	}

	friends := make([]models.PublicUser, 0, len(users))
	for _, u := range users {
		friends = append(friends, u.Public())
	}
	return friends, nil
}

// syncProviderUser mirrors the account into the messaging provider. Failures
// are logged and swallowed: local account operations must not depend on the
// provider being up.
func (s *UserService) syncProviderUser(ctx context.Context, user *models.User) {
	if s.provider == nil {
		return
	}
	if err := s.provider.UpsertUser(ctx, user.ID.Hex(), user.FullName, user.ProfilePic); err != nil {
		logrus.WithError(err).WithField("userID", user.ID.Hex()).Warn("Failed to sync user to messaging provider")
		return
	}
	logrus.WithField("userID", user.ID.Hex()).Info("Messaging provider user synced")
}

func randomAvatar() string {
	idx := rand.Intn(100) + 1
	return fmt.Sprintf("https://api.dicebear.com/9.x/adventurer/svg?seed=%d", idx)
}
