package services

import (
	"fmt"

	"github.com/Dias221467/LinguaConnect/pkg/chat"
)

// ChatService mints messaging-provider tokens for authenticated users. The
// provider hosts the actual conversations; nothing chat-related is stored
// locally.
type ChatService struct {
	provider chat.Provider
}

func NewChatService(provider chat.Provider) *ChatService {
	return &ChatService{provider: provider}
}

// GetToken returns a client token for the user's chat session.
func (s *ChatService) GetToken(userID string) (string, error) {
	token, err := s.provider.CreateToken(userID)
	if err != nil {
		return "", fmt.Errorf("failed to mint chat token: %w", err)
	}
	return token, nil
}
