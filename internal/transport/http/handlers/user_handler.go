package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/vedran77/userhub/internal/domain"
	"github.com/vedran77/userhub/internal/service"
	"github.com/vedran77/userhub/internal/transport/http/middleware"
	"github.com/vedran77/userhub/pkg/validator"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetUser(r.Context())

	user, err := h.userService.GetWithProfile(r.Context(), principal.ID)
	if err != nil {
		logError(r, "get me", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetUser(r.Context())

	var input service.UpdateUserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateUserUpdate(input.Email, input.Password); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	user, err := h.userService.Update(r.Context(), principal.ID, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			writeError(w, http.StatusConflict, "EMAIL_TAKEN", "Email is already registered")
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		default:
			logError(r, "update me", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, user)
}

type changePasswordInput struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetUser(r.Context())

	var input changePasswordInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidatePasswordChange(input.OldPassword, input.NewPassword); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	if err := h.userService.ChangePassword(r.Context(), principal, input.OldPassword, input.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrWrongPassword):
			writeError(w, http.StatusBadRequest, "WRONG_PASSWORD", "Current password does not match")
		case errors.Is(err, service.ErrPasswordTooShort):
			writeError(w, http.StatusBadRequest, "PASSWORD_TOO_SHORT", "New password must be at least 8 characters")
		default:
			logError(r, "change password", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List is superuser-only. active_only defaults to true.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetUser(r.Context())
	if !principal.IsSuperuser {
		writeError(w, http.StatusForbidden, "FORBIDDEN", "Superuser privileges required")
		return
	}

	activeOnly := true
	if v := r.URL.Query().Get("active_only"); v != "" {
		activeOnly = v != "false"
	}

	skip, limit := parsePagination(r)

	users, err := h.userService.List(r.Context(), activeOnly, skip, limit)
	if err != nil {
		logError(r, "list users", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	if users == nil {
		users = []domain.User{}
	}

	writeJSON(w, http.StatusOK, users)
}

// Deactivate is superuser-only; deactivating yourself is rejected.
func (h *UserHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetUser(r.Context())
	if !principal.IsSuperuser {
		writeError(w, http.StatusForbidden, "FORBIDDEN", "Superuser privileges required")
		return
	}

	userID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	user, err := h.userService.Deactivate(r.Context(), userID, principal.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfDeactivation):
			writeError(w, http.StatusBadRequest, "SELF_DEACTIVATION", "Cannot deactivate your own account")
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		default:
			logError(r, "deactivate user", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// parsePagination reads skip and limit query params with the defaults the
// API documents: skip 0, limit 100 (also the cap).
func parsePagination(r *http.Request) (skip, limit int) {
	skip, limit = 0, 100

	if s := r.URL.Query().Get("skip"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 0 {
			skip = n
		}
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	return skip, limit
}
