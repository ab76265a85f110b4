package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/LinguaConnect/pkg/apperrors"
	stream "github.com/GetStream/stream-chat-go/v6"
)

// StreamProvider implements Provider on top of Stream Chat. It is constructed
// once in main and injected into the services that need it.
type StreamProvider struct {
	client *stream.Client
}

func NewStreamProvider(apiKey, apiSecret string) (*StreamProvider, error) {
	if apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("stream api key or secret is missing")
	}

	client, err := stream.NewClient(apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create stream client: %v", err)
	}
	return &StreamProvider{client: client}, nil
}

func (p *StreamProvider) UpsertUser(ctx context.Context, id, name, image string) error {
	_, err := p.client.UpsertUser(ctx, &stream.User{
		ID:    id,
		Name:  name,
		Image: image,
	})
	if err != nil {
		return fmt.Errorf("upsert stream user %s: %v: %w", id, err, apperrors.ErrExternalProvider)
	}
	return nil
}

func (p *StreamProvider) CreateToken(userID string) (string, error) {
	// Token expiry is left to the client widget; the zero time means no expiry.
	token, err := p.client.CreateToken(userID, time.Time{})
	if err != nil {
		return "", fmt.Errorf("create stream token for %s: %v: %w", userID, err, apperrors.ErrExternalProvider)
	}
	return token, nil
}
