package services

import (
	"context"
	"fmt"

	"github.com/Dias221467/LinguaConnect/internal/models"
	"github.com/Dias221467/LinguaConnect/pkg/apperrors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FriendRequestStore is the persistence contract for friend requests.
type FriendRequestStore interface {
	CreateRequest(ctx context.Context, req *models.FriendRequest) (*models.FriendRequest, error)
	GetRequestByID(ctx context.Context, id primitive.ObjectID) (*models.FriendRequest, error)
	ExistsBetween(ctx context.Context, a, b primitive.ObjectID) (bool, error)
	AcceptRequest(ctx context.Context, req *models.FriendRequest) error
	GetPendingByRecipient(ctx context.Context, recipientID primitive.ObjectID) ([]models.FriendRequest, error)
	GetPendingBySender(ctx context.Context, senderID primitive.ObjectID) ([]models.FriendRequest, error)
	GetAcceptedBySender(ctx context.Context, senderID primitive.ObjectID) ([]models.FriendRequest, error)
}

// FriendUserStore is the slice of the user store the friend service needs.
type FriendUserStore interface {
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
}

// FriendService implements the friend-request state machine.
type FriendService struct {
	friendRepo FriendRequestStore
	userRepo   FriendUserStore
}

// NewFriendService creates a new FriendService.
func NewFriendService(friendRepo FriendRequestStore, userRepo FriendUserStore) *FriendService {
	return &FriendService{
		friendRepo: friendRepo,
		userRepo:   userRepo,
	}
}

// SendFriendRequest creates a pending request from sender to recipient.
// At most one request may exist per unordered pair, in either direction.
func (s *FriendService) SendFriendRequest(ctx context.Context, senderID, recipientID primitive.ObjectID) (*models.FriendRequest, error) {
	if senderID == recipientID {
		return nil, fmt.Errorf("you cannot send a friend request to yourself: %w", apperrors.ErrInvalidOperation)
	}

	recipient, err := s.userRepo.GetUserByID(ctx, recipientID)
	if err != nil {
		return nil, fmt.Errorf("recipient not found: %w", apperrors.ErrNotFound)
	}

	if recipient.HasFriend(senderID) {
		return nil, fmt.Errorf("you are already friends with this user: %w", apperrors.ErrConflict)
	}

	exists, err := s.friendRepo.ExistsBetween(ctx, senderID, recipientID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("a friend request already exists between you and this user: %w", apperrors.ErrConflict)
	}

	request := &models.FriendRequest{
		SenderID:    senderID,
		RecipientID: recipientID,
	}

	created, err := s.friendRepo.CreateRequest(ctx, request)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"senderID":    senderID.Hex(),
		"recipientID": recipientID.Hex(),
	}).Info("Friend request sent")
	return created, nil
}

// AcceptFriendRequest transitions a pending request to accepted and makes the
// friendship symmetric. Only the recipient may accept. Accepting an already
// accepted request is a no-op.
func (s *FriendService) AcceptFriendRequest(ctx context.Context, requestID, actingUserID primitive.ObjectID) error {
	request, err := s.friendRepo.GetRequestByID(ctx, requestID)
	if err != nil {
		return err
	}

	if request.RecipientID != actingUserID {
		return fmt.Errorf("you are not authorized to accept this request: %w", apperrors.ErrForbidden)
	}

	if request.Status == models.RequestStatusAccepted {
		return nil
	}

	if err := s.friendRepo.AcceptRequest(ctx, request); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"requestID": requestID.Hex(),
		"userID":    actingUserID.Hex(),
	}).Info("Friend request accepted")
	return nil
}

// GetFriendRequests returns the user's pending incoming requests joined with
// sender profiles, plus the accepted requests this user originally sent
// joined with recipient profiles. Acceptances of requests the user received
// do not appear here; only the original sender is notified.
func (s *FriendService) GetFriendRequests(ctx context.Context, userID primitive.ObjectID) (incoming, accepted []models.FriendRequestView, err error) {
	incomingReqs, err := s.friendRepo.GetPendingByRecipient(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	acceptedReqs, err := s.friendRepo.GetAcceptedBySender(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	incoming, err = s.joinProfiles(ctx, incomingReqs, true)
	if err != nil {
		return nil, nil, err
	}
	accepted, err = s.joinProfiles(ctx, acceptedReqs, false)
	if err != nil {
		return nil, nil, err
	}
	return incoming, accepted, nil
}

// GetOutgoingRequests returns the user's pending sent requests joined with
// recipient profiles.
func (s *FriendService) GetOutgoingRequests(ctx context.Context, userID primitive.ObjectID) ([]models.FriendRequestView, error) {
	outgoing, err := s.friendRepo.GetPendingBySender(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.joinProfiles(ctx, outgoing, false)
}

// joinProfiles attaches the counterpart's public profile to each request:
// the sender's when joinSender is true, the recipient's otherwise.
func (s *FriendService) joinProfiles(ctx context.Context, requests []models.FriendRequest, joinSender bool) ([]models.FriendRequestView, error) {
	views := make([]models.FriendRequestView, 0, len(requests))
	if len(requests) == 0 {
		return views, nil
	}

	ids := make([]primitive.ObjectID, 0, len(requests))
	for _, req := range requests {
		if joinSender {
			ids = append(ids, req.SenderID)
		} else {
			ids = append(ids, req.RecipientID)
		}
	}

	users, err := s.userRepo.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to join user profiles: %v", err)
	}

	profiles := make(map[primitive.ObjectID]models.PublicUser, len(users))
	for _, user := range users {
		profiles[user.ID] = user.Public()
	}

	for _, req := range requests {
		view := models.FriendRequestView{
			ID:        req.ID,
			Status:    req.Status,
			CreatedAt: req.CreatedAt,
		}
		if joinSender {
			if profile, ok := profiles[req.SenderID]; ok {
				view.Sender = &profile
			}
		} else {
			if profile, ok := profiles[req.RecipientID]; ok {
				view.Recipient = &profile
			}
		}
		views = append(views, view)
	}

	return views, nil
}
