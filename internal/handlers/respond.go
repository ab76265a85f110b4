package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Dias221467/LinguaConnect/pkg/apperrors"
	"github.com/Dias221467/LinguaConnect/pkg/logger"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps an error to its HTTP status. Unknown errors become a
// generic 500 so internal detail never reaches the client.
func writeError(w http.ResponseWriter, err error) {
	status := apperrors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logger.Log.Errorf("Internal error: %v", err)
		writeJSON(w, status, map[string]string{"message": "Internal Server Error"})
		return
	}

	body := map[string]interface{}{"message": err.Error()}
	var ve *apperrors.ValidationError
	if errors.As(err, &ve) && len(ve.Fields) > 0 {
		body["missingFields"] = ve.Fields
	}
	writeJSON(w, status, body)
}
