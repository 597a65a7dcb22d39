package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/omok-labs/gomoku-backend/internal/entity"
	"github.com/omok-labs/gomoku-backend/internal/pkg"
)

const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
)

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)
	LeaderboardHandler(w http.ResponseWriter, r *http.Request)

	GoogleLogin(w http.ResponseWriter, r *http.Request)
	GoogleCallback(w http.ResponseWriter, r *http.Request)
}

type userService interface {
	SaveUser(ctx context.Context, user *entity.User) error
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
}

type authService interface {
	GenerateToken(email string) (string, error)
}

type leaderboardProvider interface {
	TopPlayers(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error)
}

type handlers struct {
	oauthConfig      *oauth2.Config
	oauthStateString string
	userService      userService
	authService      authService
	leaderboard      leaderboardProvider
}

func NewHandlers(redirectURL, clientID, clientSecret string, userService userService, authService authService, leaderboard leaderboardProvider) Handlers {
	oauthConfig := &oauth2.Config{
		RedirectURL:  redirectURL,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email"},
		Endpoint:     google.Endpoint,
	}

	return &handlers{
		oauthConfig:      oauthConfig,
		oauthStateString: pkg.GenerateNewSessionID(),
		userService:      userService,
		authService:      authService,
		leaderboard:      leaderboard,
	}
}

func (that *handlers) PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// LeaderboardHandler - returns the top players by win count, most wins
// first. The limit query parameter is optional.
func (that *handlers) LeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	limit := defaultLeaderboardLimit

	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, "invalid limit parameter", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}

	entries, err := that.leaderboard.TopPlayers(r.Context(), limit)
	if err != nil {
		http.Error(w, "failed to get leaderboard", http.StatusInternalServerError)
		return
	}

	if entries == nil {
		entries = []entity.LeaderboardEntry{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(entries); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}
