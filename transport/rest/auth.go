package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/omok-labs/gomoku-backend/internal/apperror"
	"github.com/omok-labs/gomoku-backend/internal/entity"
	"github.com/omok-labs/gomoku-backend/internal/pkg"
)

const urlUserInfo = "https://www.googleapis.com/oauth2/v2/userinfo?access_token="

func (that *handlers) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	state := pkg.GenerateNewSessionID()

	http.SetCookie(w, &http.Cookie{
		Name:     "oauthstate",
		Value:    state,
		Expires:  time.Now().Add(24 * time.Hour),
		HttpOnly: true,
	})

	url := that.oauthConfig.AuthCodeURL(state)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

func (that *handlers) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stateCookie, err := r.Cookie("oauthstate")
	if err != nil {
		http.Error(w, "State cookie not found", http.StatusBadRequest)
		return
	}

	if stateCookie.Value != r.URL.Query().Get("state") {
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "Code not found in request", http.StatusBadRequest)
		return
	}

	token, err := that.oauthConfig.Exchange(ctx, code)
	if err != nil {
		http.Error(w, "Code exchange failed", http.StatusInternalServerError)
		return
	}

	client := that.oauthConfig.Client(ctx, token)
	resp, err := client.Get(urlUserInfo + token.AccessToken)
	if err != nil {
		http.Error(w, "Failed to get user info", http.StatusInternalServerError)
		return
	}
	defer resp.Body.Close()

	var userInfo struct {
		Email string `json:"email"`
	}

	if err = json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		http.Error(w, "Failed to decode user info", http.StatusInternalServerError)
		return
	}

	user, err := that.userService.GetUserByEmail(ctx, userInfo.Email)
	if errors.Is(err, apperror.ErrNotFound) {
		user = &entity.User{Email: userInfo.Email}
		if err = that.userService.SaveUser(ctx, user); err != nil {
			http.Error(w, "Failed to save user", http.StatusInternalServerError)
			return
		}
	} else if err != nil {
		http.Error(w, "Failed to get user", http.StatusInternalServerError)
		return
	}

	jwtToken, err := that.authService.GenerateToken(user.Email)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(map[string]string{
		"token": jwtToken,
	}); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}
