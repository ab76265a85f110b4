package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Dias221467/LinguaConnect/internal/services"
	"github.com/Dias221467/LinguaConnect/pkg/logger"
	"github.com/Dias221467/LinguaConnect/pkg/middleware"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserHandler handles onboarding, recommendations and the friends list.
type UserHandler struct {
	Service *services.UserService
}

// NewUserHandler creates a new instance of UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{Service: service}
}

// OnboardingHandler completes the one-time profile step for the session user.
func (h *UserHandler) OnboardingHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUserID(w, r)
	if !ok {
		return
	}

	var input services.OnboardInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		logger.Log.Warnf("Failed to decode onboarding request: %v", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request payload"})
		return
	}
	defer r.Body.Close()

	user, err := h.Service.OnboardUser(r.Context(), userID, input)
	if err != nil {
		logger.Log.Warnf("Onboarding failed for user %s: %v", userID.Hex(), err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
	})
}

// RecommendedUsersHandler lists candidate language partners.
func (h *UserHandler) RecommendedUsersHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUserID(w, r)
	if !ok {
		return
	}

	users, err := h.Service.GetRecommendedUsers(r.Context(), userID)
	if err != nil {
		logger.Log.Errorf("Failed to fetch recommended users for %s: %v", userID.Hex(), err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// FriendsHandler returns the session user's friends as public profiles.
func (h *UserHandler) FriendsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUserID(w, r)
	if !ok {
		return
	}

	friends, err := h.Service.GetFriends(r.Context(), userID)
	if err != nil {
		logger.Log.Errorf("Failed to fetch friends for %s: %v", userID.Hex(), err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, friends)
}

// sessionUserID extracts the authenticated user's id, writing a 401 when the
// session is absent or malformed.
func sessionUserID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
		return primitive.NilObjectID, false
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		logger.Log.Warnf("Malformed user id in session claims: %v", err)
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
		return primitive.NilObjectID, false
	}
	return userID, true
}
