package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/eventified/eventified/internal/adapters/repository"
	"github.com/eventified/eventified/internal/domain/model"
	"github.com/goccy/go-json"
)

// UserDependencies defines the interface for user registration.
type UserDependencies interface {
	CreateUser(ctx context.Context, username string, prefs []model.SportPreference) (model.User, error)
}

// UsersHandler handles user registration requests.
type UsersHandler struct {
	deps UserDependencies
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(deps UserDependencies) *UsersHandler {
	return &UsersHandler{deps: deps}
}

type preferenceRequest struct {
	Sport      int `json:"sport"`
	SkillLevel int `json:"skill_level"`
}

type userRequest struct {
	Username    string              `json:"username"`
	Preferences []preferenceRequest `json:"preferences"`
}

func (u userRequest) validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return errors.New("missing username")
	}
	for _, p := range u.Preferences {
		if p.Sport < 0 {
			return errors.New("negative sport")
		}
		if p.SkillLevel < 0 {
			return errors.New("negative skill_level")
		}
	}
	return nil
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// HandlePostUser handles POST /users requests.
func (h *UsersHandler) HandlePostUser(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_user"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	prefs := make([]model.SportPreference, len(req.Preferences))
	for i, p := range req.Preferences {
		prefs[i] = model.SportPreference{Sport: p.Sport, SkillLevel: p.SkillLevel}
	}

	user, err := h.deps.CreateUser(r.Context(), strings.TrimSpace(req.Username), prefs)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			writeError(w, http.StatusConflict, "conflict", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	writeJSON(w, http.StatusCreated, userResponse{
		ID:       user.ID.String(),
		Username: user.Username,
	})
}
