package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/dmitrijs2005/userkeeper/internal/logging"
	"github.com/dmitrijs2005/userkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/userkeeper/internal/server/users"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type updateRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type updateResponse struct {
	Message string       `json:"message"`
	User    users.Public `json:"user"`
}

// POST /register
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var in registerRequest
	if !h.decode(w, r, &in) {
		return
	}

	_, err := h.users.Register(r.Context(), in.Name, in.Email, in.Password)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrPasswordTooLong):
			writeMessage(w, http.StatusBadRequest, msgPasswordTooLong)
		case errors.Is(err, common.ErrValidation):
			writeMessage(w, http.StatusBadRequest, msgMissingFields)
		case errors.Is(err, common.ErrEmailTaken):
			writeMessage(w, http.StatusBadRequest, msgEmailRegistered)
		default:
			h.internalError(w, r, err)
		}
		return
	}

	writeMessage(w, http.StatusCreated, msgRegistered)
}

// POST /login
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if !h.decode(w, r, &in) {
		return
	}

	token, err := h.users.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			h.authFailure(metrics.ReasonInvalidCredentials)
			writeMessage(w, http.StatusUnauthorized, msgInvalidCredentials)
			return
		}
		h.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}

// GET /users
func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	list, err := h.users.List(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	out := make([]users.Public, 0, len(list))
	for _, u := range list {
		out = append(out, u.Public())
	}
	writeJSON(w, http.StatusOK, out)
}

// PUT /users/{id}
func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var in updateRequest
	if !h.decode(w, r, &in) {
		return
	}

	user, err := h.users.Update(r.Context(), id, users.UpdateInput{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrNotFound):
			writeMessage(w, http.StatusNotFound, fmt.Sprintf(msgUserNotFound, id))
		case errors.Is(err, common.ErrEmailTaken):
			writeMessage(w, http.StatusBadRequest, msgEmailInUse)
		case errors.Is(err, users.ErrPasswordTooLong):
			writeMessage(w, http.StatusBadRequest, msgPasswordTooLong)
		default:
			h.internalError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, updateResponse{
		Message: fmt.Sprintf(msgUpdated, id),
		User:    user.Public(),
	})
}

// DELETE /users/{id}
func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	identity, _ := IdentityFromContext(r.Context())
	if err := h.gateway.AuthorizeSelfOnly(identity, id); err != nil {
		h.authFailure(metrics.ReasonForbidden)
		writeMessage(w, http.StatusForbidden, msgNotSelf)
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, fmt.Sprintf(msgUserNotFound, id))
			return
		}
		h.internalError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, fmt.Sprintf(msgDeleted, id))
}

// userID parses the {id} path segment, answering 400 itself on failure.
func userID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, msgInvalidUserID)
		return 0, false
	}
	return id, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, out any) bool {
	if err := decodeJSON(r, out); err != nil {
		if errors.Is(err, errBodyTooLarge) {
			writeMessage(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			return false
		}
		writeMessage(w, http.StatusBadRequest, msgInvalidBody)
		return false
	}
	return true
}

// internalError logs the cause and answers with a generic 500.
func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	logging.FromContext(r.Context(), h.logger).Error(r.Context(), "request failed", "error", err.Error())
	writeMessage(w, http.StatusInternalServerError, msgInternal)
}
