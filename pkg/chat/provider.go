package chat

import "context"

// Provider is the contract this backend needs from the external messaging
// service. The provider owns message transport, delivery and storage; the
// backend only mirrors user profiles into it and mints client tokens.
type Provider interface {
	// UpsertUser creates or updates the user's mirror on the provider side.
	UpsertUser(ctx context.Context, id, name, image string) error

	// CreateToken mints an opaque client token granting channel access.
	CreateToken(userID string) (string, error)
}

// ChannelID derives the conversation id for a 1:1 chat. Both participants
// resolve to the same channel regardless of who initiates.
func ChannelID(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "-" + b
}
