package handlers

import (
	"net/http"

	"github.com/Dias221467/LinguaConnect/internal/services"
	"github.com/Dias221467/LinguaConnect/pkg/logger"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FriendHandler manages HTTP endpoints related to friend requests.
type FriendHandler struct {
	Service *services.FriendService
}

// NewFriendHandler initializes a new FriendHandler.
func NewFriendHandler(service *services.FriendService) *FriendHandler {
	return &FriendHandler{Service: service}
}

// SendFriendRequestHandler proposes a friendship to the user in the path.
func (h *FriendHandler) SendFriendRequestHandler(w http.ResponseWriter, r *http.Request) {
	senderID, ok := sessionUserID(w, r)
	if !ok {
		return
	}

	recipientID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid user ID"})
		return
	}

	request, err := h.Service.SendFriendRequest(r.Context(), senderID, recipientID)
	if err != nil {
		logger.Log.Warnf("Failed to send friend request from %s to %s: %v", senderID.Hex(), recipientID.Hex(), err)
		writeError(w, err)
		return
	}

	logger.Log.Infof("User %s sent a friend request to %s", senderID.Hex(), recipientID.Hex())
	writeJSON(w, http.StatusCreated, request)
}

// AcceptFriendRequestHandler accepts a pending request addressed to the
// session user.
func (h *FriendHandler) AcceptFriendRequestHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUserID(w, r)
	if !ok {
		return
	}

	requestID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request ID"})
		return
	}

	if err := h.Service.AcceptFriendRequest(r.Context(), requestID, userID); err != nil {
		logger.Log.Warnf("User %s failed to accept friend request %s: %v", userID.Hex(), requestID.Hex(), err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Friend request accepted"})
}

// GetFriendRequestsHandler returns pending incoming requests and the accepted
// requests this user sent.
func (h *FriendHandler) GetFriendRequestsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUserID(w, r)
	if !ok {
		return
	}

	incoming, accepted, err := h.Service.GetFriendRequests(r.Context(), userID)
	if err != nil {
		logger.Log.Errorf("Failed to fetch friend requests for %s: %v", userID.Hex(), err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"incomingReqs": incoming,
		"acceptedReqs": accepted,
	})
}

// GetOutgoingRequestsHandler returns the user's pending sent requests.
func (h *FriendHandler) GetOutgoingRequestsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUserID(w, r)
	if !ok {
		return
	}

	outgoing, err := h.Service.GetOutgoingRequests(r.Context(), userID)
	if err != nil {
		logger.Log.Errorf("Failed to fetch outgoing requests for %s: %v", userID.Hex(), err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, outgoing)
}
