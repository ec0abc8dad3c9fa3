package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/vedran77/userhub/internal/domain"
	"github.com/vedran77/userhub/internal/service"
	"github.com/vedran77/userhub/internal/transport/http/middleware"
)

type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetUser(r.Context())

	profile, err := h.profileService.GetByUserID(r.Context(), principal.ID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Profile not found")
		} else {
			logError(r, "get profile", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetUser(r.Context())

	var input service.UpdateProfileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	profile, err := h.profileService.Update(r.Context(), principal.ID, input)
	if err != nil {
		logError(r, "update profile", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) Completion(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetUser(r.Context())

	status, err := h.profileService.CompletionStatus(r.Context(), principal.ID)
	if err != nil {
		logError(r, "profile completion", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, status)
}

type updateAvatarInput struct {
	AvatarURL string `json:"avatar_url"`
}

func (h *ProfileHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetUser(r.Context())

	var input updateAvatarInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	profile, err := h.profileService.UpdateAvatar(r.Context(), principal.ID, input.AvatarURL)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAvatarURL) {
			writeError(w, http.StatusBadRequest, "INVALID_AVATAR_URL", "Avatar URL must start with http:// or https://")
		} else {
			logError(r, "update avatar", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) DeleteAvatar(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetUser(r.Context())

	profile, err := h.profileService.DeleteAvatar(r.Context(), principal.ID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Profile not found")
		} else {
			logError(r, "delete avatar", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) Search(w http.ResponseWriter, r *http.Request) {
	firstName := r.URL.Query().Get("first_name")
	lastName := r.URL.Query().Get("last_name")
	skip, limit := parsePagination(r)

	profiles, err := h.profileService.Search(r.Context(), firstName, lastName, skip, limit)
	if err != nil {
		if errors.Is(err, service.ErrSearchFilterRequired) {
			writeError(w, http.StatusBadRequest, "MISSING_FILTER", "At least one of first_name or last_name is required")
		} else {
			logError(r, "search profiles", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	if profiles == nil {
		profiles = []domain.Profile{}
	}

	writeJSON(w, http.StatusOK, profiles)
}

func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit := parsePagination(r)

	profiles, err := h.profileService.List(r.Context(), skip, limit)
	if err != nil {
		logError(r, "list profiles", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	if profiles == nil {
		profiles = []domain.Profile{}
	}

	writeJSON(w, http.StatusOK, profiles)
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	profileID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid profile ID")
		return
	}

	profile, err := h.profileService.GetByID(r.Context(), profileID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Profile not found")
		} else {
			logError(r, "get profile by id", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, profile)
}
