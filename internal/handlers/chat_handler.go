package handlers

import (
	"net/http"

	"github.com/Dias221467/LinguaConnect/internal/services"
	"github.com/Dias221467/LinguaConnect/pkg/logger"
)

// ChatHandler exposes the messaging-provider token endpoint.
type ChatHandler struct {
	Service *services.ChatService
}

func NewChatHandler(service *services.ChatService) *ChatHandler {
	return &ChatHandler{Service: service}
}

// GetTokenHandler mints a chat token for the session user. The client widget
// uses it to open channels directly against the provider.
func (h *ChatHandler) GetTokenHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUserID(w, r)
	if !ok {
		return
	}

	token, err := h.Service.GetToken(userID.Hex())
	if err != nil {
		logger.Log.Errorf("Failed to mint chat token for %s: %v", userID.Hex(), err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Internal server error while getting chat token"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}
