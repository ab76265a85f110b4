package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Friend request lifecycle: pending -> accepted. There is no rejected or
// withdrawn state; a pair's only way out of pending is acceptance.
const (
	RequestStatusPending  = "pending"
	RequestStatusAccepted = "accepted"
)

type FriendRequest struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SenderID    primitive.ObjectID `bson:"sender_id" json:"sender"`
	RecipientID primitive.ObjectID `bson:"recipient_id" json:"recipient"`
	// PairKey identifies the unordered user pair; a unique index on it
	// guarantees at most one request per pair in either direction.
	PairKey   string    `bson:"pair_key" json:"-"`
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// FriendRequestPairKey builds the canonical key for an unordered user pair.
func FriendRequestPairKey(a, b primitive.ObjectID) string {
	ah, bh := a.Hex(), b.Hex()
	if ah > bh {
		ah, bh = bh, ah
	}
	return ah + ":" + bh
}

// FriendRequestView is a request joined with the counterpart's profile for
// the incoming/outgoing/accepted feeds.
type FriendRequestView struct {
	ID        primitive.ObjectID `json:"id"`
	Status    string             `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
	Sender    *PublicUser        `json:"sender,omitempty"`
	Recipient *PublicUser        `json:"recipient,omitempty"`
}
