package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dias221467/LinguaConnect/internal/models"
	"github.com/Dias221467/LinguaConnect/pkg/apperrors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FriendRepository handles friend request persistence. It also owns the
// transactional acceptance path, which touches the users collection.
type FriendRepository struct {
	db         *mongo.Database
	collection *mongo.Collection
}

// NewFriendRepository creates a new FriendRepository and ensures the unique
// pair index. The index is what closes the concurrent-propose race: a second
// insert for the same unordered pair fails with a duplicate key error.
func NewFriendRepository(db *mongo.Database) *FriendRepository {
	coll := db.Collection("friend_requests")

	idx := mongo.IndexModel{
		Keys:    bson.D{{Key: "pair_key", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("pair_key_unique"),
	}
	if _, err := coll.Indexes().CreateOne(context.Background(), idx); err != nil {
		logrus.WithError(err).Warn("Failed to ensure unique pair_key index")
	}

	return &FriendRepository{
		db:         db,
		collection: coll,
	}
}

// CreateRequest inserts a new pending friend request.
func (r *FriendRepository) CreateRequest(ctx context.Context, req *models.FriendRequest) (*models.FriendRequest, error) {
	req.CreatedAt = time.Now()
	req.Status = models.RequestStatusPending
	req.PairKey = models.FriendRequestPairKey(req.SenderID, req.RecipientID)

	result, err := r.collection.InsertOne(ctx, req)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("friend request already exists between these users: %w", apperrors.ErrConflict)
		}
		return nil, fmt.Errorf("failed to create friend request: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	req.ID = insertedID

	return req, nil
}

// GetRequestByID fetches a single friend request.
func (r *FriendRepository) GetRequestByID(ctx context.Context, id primitive.ObjectID) (*models.FriendRequest, error) {
	var request models.FriendRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("friend request %s: %w", id.Hex(), apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find friend request: %v", err)
	}
	return &request, nil
}

// ExistsBetween reports whether any request exists between the unordered pair,
// regardless of direction or status.
func (r *FriendRepository) ExistsBetween(ctx context.Context, a, b primitive.ObjectID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"pair_key": models.FriendRequestPairKey(a, b),
	})
	if err != nil {
		return false, fmt.Errorf("failed to check existing request: %v", err)
	}
	return count > 0, nil
}

// AcceptRequest marks the request accepted and adds each user to the other's
// friend set, all inside one session transaction so a crash cannot leave an
// accepted request without the friend-set updates.
func (r *FriendRepository) AcceptRequest(ctx context.Context, req *models.FriendRequest) error {
	session, err := r.db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %v", err)
	}
	defer session.EndSession(ctx)

	users := r.db.Collection("users")

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		_, err := r.collection.UpdateOne(
			sc,
			bson.M{"_id": req.ID},
			bson.M{"$set": bson.M{"status": models.RequestStatusAccepted}},
		)
		if err != nil {
			return nil, fmt.Errorf("failed to update request status: %v", err)
		}

		// $addToSet keeps friend sets duplicate-free even on replays.
		if _, err := users.UpdateOne(
			sc,
			bson.M{"_id": req.SenderID},
			bson.M{"$addToSet": bson.M{"friends": req.RecipientID}},
		); err != nil {
			return nil, fmt.Errorf("failed to add friend to sender: %v", err)
		}
		if _, err := users.UpdateOne(
			sc,
			bson.M{"_id": req.RecipientID},
			bson.M{"$addToSet": bson.M{"friends": req.SenderID}},
		); err != nil {
			return nil, fmt.Errorf("failed to add friend to recipient: %v", err)
		}

		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("accept transaction failed: %v", err)
	}

	logrus.WithField("requestID", req.ID.Hex()).Info("Friend request accepted")
	return nil
}

// GetPendingByRecipient fetches all pending requests addressed to the user.
func (r *FriendRepository) GetPendingByRecipient(ctx context.Context, recipientID primitive.ObjectID) ([]models.FriendRequest, error) {
	return r.findRequests(ctx, bson.M{"recipient_id": recipientID, "status": models.RequestStatusPending})
}

// GetPendingBySender fetches all pending requests the user has sent.
func (r *FriendRepository) GetPendingBySender(ctx context.Context, senderID primitive.ObjectID) ([]models.FriendRequest, error) {
	return r.findRequests(ctx, bson.M{"sender_id": senderID, "status": models.RequestStatusPending})
}

// GetAcceptedBySender fetches accepted requests the user originally sent.
// This feeds the "new connection" notifications.
func (r *FriendRepository) GetAcceptedBySender(ctx context.Context, senderID primitive.ObjectID) ([]models.FriendRequest, error) {
	return r.findRequests(ctx, bson.M{"sender_id": senderID, "status": models.RequestStatusAccepted})
}

func (r *FriendRepository) findRequests(ctx context.Context, filter bson.M) ([]models.FriendRequest, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find friend requests: %v", err)
	}
	defer cursor.Close(ctx)

	var requests []models.FriendRequest
	for cursor.Next(ctx) {
		var req models.FriendRequest
		if err := cursor.Decode(&req); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	return requests, nil
}
