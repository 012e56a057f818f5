package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// Response bodies returned to clients.
const (
	msgRegistered         = "User registered successfully!"
	msgMissingFields      = "Name, email, and password are required."
	msgEmailRegistered    = "Email already registered."
	msgInvalidCredentials = "Invalid email or password."
	msgNoToken            = "Access denied. No token provided."
	msgInvalidToken       = "Invalid or expired token."
	msgInvalidUserID      = "Invalid user ID"
	msgUserNotFound       = "User with ID %d not found."
	msgEmailInUse         = "Email already in use by another user."
	msgUpdated            = "User with ID %d updated successfully."
	msgDeleted            = "User with ID %d deleted successfully."
	msgNotSelf            = "You are not authorized to delete this user."
	msgPasswordTooLong    = "Password must be at most 72 bytes."
	msgInvalidBody        = "Invalid request body."
	msgBodyTooLarge       = "Request body too large."
	msgTooManyRequests    = "Too many requests from this IP, please try again later."
	msgInternal           = "Something went wrong!"
)

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, messageResponse{Message: msg})
}

var errBodyTooLarge = errors.New("request body too large")

// decodeJSON reads the request body into out. An empty body decodes as an
// empty object.
func decodeJSON(r *http.Request, out any) error {
	err := json.NewDecoder(r.Body).Decode(out)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return errBodyTooLarge
	}
	return err
}
