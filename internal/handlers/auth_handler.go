package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Dias221467/LinguaConnect/internal/config"
	"github.com/Dias221467/LinguaConnect/internal/services"
	jwtutil "github.com/Dias221467/LinguaConnect/pkg/jwt"
	"github.com/Dias221467/LinguaConnect/pkg/logger"
	"github.com/Dias221467/LinguaConnect/pkg/middleware"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthHandler handles signup, login, logout and session restore.
type AuthHandler struct {
	Service *services.UserService
	Config  *config.Config
}

// NewAuthHandler creates a new instance of AuthHandler.
func NewAuthHandler(service *services.UserService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		Service: service,
		Config:  cfg,
	}
}

// SignupHandler registers a new account and issues the session cookie.
func (h *AuthHandler) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"fullName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		logger.Log.Warnf("Failed to decode signup request: %v", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request payload"})
		return
	}
	defer r.Body.Close()

	user, err := h.Service.RegisterUser(r.Context(), body.Email, body.Password, body.FullName)
	if err != nil {
		logger.Log.Warnf("Signup failed: %v", err)
		writeError(w, err)
		return
	}

	if err := h.issueSession(w, user.ID.Hex()); err != nil {
		logger.Log.Errorf("Failed to issue session token: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Internal Server Error"})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"user":    user,
	})
}

// LoginHandler authenticates credentials and issues the session cookie.
func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		logger.Log.Warnf("Failed to decode login request: %v", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request payload"})
		return
	}
	defer r.Body.Close()

	user, err := h.Service.AuthenticateUser(r.Context(), body.Email, body.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.issueSession(w, user.ID.Hex()); err != nil {
		logger.Log.Errorf("Failed to issue session token: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Internal Server Error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
	})
}

// LogoutHandler clears the session cookie.
func (h *AuthHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   h.Config.Env == "production",
	})

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Logout successful",
	})
}

// MeHandler returns the authenticated user, used by the SPA to restore its
// session on reload.
func (h *AuthHandler) MeHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
		return
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
		return
	}

	user, err := h.Service.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
	})
}

func (h *AuthHandler) issueSession(w http.ResponseWriter, userID string) error {
	token, err := jwtutil.GenerateToken(userID, h.Config.JWTSecret, h.Config.TokenExpiry)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.Config.TokenExpiry.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   h.Config.Env == "production",
	})
	return nil
}
