package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account in the language-exchange network.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName       string             `bson:"full_name" json:"fullName"`
	Email          string             `bson:"email" json:"email"`
	HashedPassword string             `bson:"hashed_password" json:"-"`
	Bio            string             `bson:"bio" json:"bio"`
	ProfilePic     string             `bson:"profile_pic" json:"profilePic"`
	NativeLanguage string             `bson:"native_language" json:"nativeLanguage"`
	// Capitalised on the wire; the frontend sends and expects it that way.
	LearningLanguage string               `bson:"learning_language" json:"LearningLanguage"`
	Location         string               `bson:"location" json:"location"`
	IsOnboarded      bool                 `bson:"is_onboarded" json:"isOnboarded"`
	Friends          []primitive.ObjectID `bson:"friends,omitempty" json:"friends,omitempty"`
	CreatedAt        time.Time            `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time            `bson:"updated_at" json:"updatedAt"`
}

// PublicUser is the profile slice joined onto friend lists and request feeds.
type PublicUser struct {
	ID               primitive.ObjectID `json:"id"`
	FullName         string             `json:"fullName"`
	ProfilePic       string             `json:"profilePic"`
	NativeLanguage   string             `json:"nativeLanguage"`
	LearningLanguage string             `json:"LearningLanguage"`
}

// Public returns the user's joinable profile fields.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:               u.ID,
		FullName:         u.FullName,
		ProfilePic:       u.ProfilePic,
		NativeLanguage:   u.NativeLanguage,
		LearningLanguage: u.LearningLanguage,
	}
}

// HasFriend reports whether id is already in the user's friend set.
func (u *User) HasFriend(id primitive.ObjectID) bool {
	for _, friendID := range u.Friends {
		if friendID == id {
			return true
		}
	}
	return false
}
