package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/vedran77/userhub/internal/service"
	"github.com/vedran77/userhub/internal/transport/http/middleware"
	"github.com/vedran77/userhub/pkg/validator"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateRegister(input.Email, input.Password); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	user, err := h.authService.Register(r.Context(), input)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			writeError(w, http.StatusConflict, "EMAIL_TAKEN", "Email is already registered")
		} else {
			logError(r, "register", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login accepts either a JSON body or an OAuth2-style form with username and
// password fields. The username is the email.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var email, password string

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var input loginInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
			return
		}
		email, password = input.Email, input.Password
	} else {
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_FORM", "Invalid request body")
			return
		}
		email = r.PostFormValue("username")
		password = r.PostFormValue("password")
	}

	if errs := validator.ValidateLogin(email, password); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	resp, err := h.authService.Login(r.Context(), email, password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
		case errors.Is(err, service.ErrAccountDisabled):
			writeError(w, http.StatusForbidden, "ACCOUNT_DISABLED", "Account is disabled")
		default:
			logError(r, "login", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	resp, err := h.authService.Refresh(r.Context(), user)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAccountDisabled):
			writeError(w, http.StatusForbidden, "ACCOUNT_DISABLED", "Account is disabled")
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
		default:
			logError(r, "refresh", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

func writeValidationErrors(w http.ResponseWriter, errs validator.ValidationErrors) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"error": map[string]any{
			"code":   "VALIDATION_ERROR",
			"fields": errs,
		},
	})
}

func logError(r *http.Request, op string, err error) {
	log.Printf("ERROR %s [%s]: %v", op, middleware.GetRequestID(r.Context()), err)
}
