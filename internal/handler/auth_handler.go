package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"streamhub-server/internal/domain"
	"streamhub-server/internal/middleware"
	"streamhub-server/internal/service"
	"streamhub-server/pkg/response"

	"github.com/go-playground/validator/v10"
)

const maxUploadBytes = 512 << 20

// RefreshTokenCookie is the cookie browsers carry the refresh token in.
const RefreshTokenCookie = "refreshToken"

type AuthHandler struct {
	authService   *service.AuthService
	validator     *validator.Validate
	accessMaxAge  time.Duration
	refreshMaxAge time.Duration
	secureCookies bool
}

func NewAuthHandler(authService *service.AuthService, accessMaxAge, refreshMaxAge time.Duration, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		validator:     validator.New(),
		accessMaxAge:  accessMaxAge,
		refreshMaxAge: refreshMaxAge,
		secureCookies: secureCookies,
	}
}

// Register accepts a multipart form: the account fields plus an avatar file
// and an optional coverImage file.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.BadRequest(w, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	req := domain.RegisterRequest{
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
		FullName: r.FormValue("fullName"),
	}
	if err := h.validator.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	avatar, err := formUpload(r, "avatar")
	if err != nil {
		response.BadRequest(w, "avatar file is required")
		return
	}
	defer avatar.close()

	cover, err := formUpload(r, "coverImage")
	if err == nil {
		defer cover.close()
	}

	user, err := h.authService.Register(r.Context(), &req, avatar.file(), cover.file())
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Created(w, "user registered successfully", user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	loginResp, err := h.authService.Login(&req)
	if err != nil {
		response.Error(w, err)
		return
	}

	h.setTokenCookies(w, loginResp.AccessToken, loginResp.RefreshToken)
	response.Success(w, "logged in successfully", loginResp)
}

// Refresh rotates the token pair. The presented token comes from the cookie
// or, for non-browser clients, the request body.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	presented := ""
	if cookie, err := r.Cookie(RefreshTokenCookie); err == nil {
		presented = cookie.Value
	}
	if presented == "" {
		var req domain.RefreshTokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			presented = req.RefreshToken
		}
	}
	if presented == "" {
		response.Unauthorized(w, "missing refresh token")
		return
	}

	tokenResp, err := h.authService.Refresh(presented)
	if err != nil {
		response.Error(w, err)
		return
	}

	h.setTokenCookies(w, tokenResp.AccessToken, tokenResp.RefreshToken)
	response.Success(w, "token refreshed", tokenResp)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	if err := h.authService.Logout(user.ID); err != nil {
		response.Error(w, err)
		return
	}

	h.clearTokenCookies(w)
	response.Success(w, "logged out successfully", nil)
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	var req domain.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if err := h.authService.ChangePassword(user.ID, &req); err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, "password changed successfully", nil)
}

func (h *AuthHandler) setTokenCookies(w http.ResponseWriter, accessToken, refreshToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    accessToken,
		Path:     "/",
		MaxAge:   int(h.accessMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshTokenCookie,
		Value:    refreshToken,
		Path:     "/",
		MaxAge:   int(h.refreshMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearTokenCookies(w http.ResponseWriter) {
	for _, name := range []string{middleware.AccessTokenCookie, RefreshTokenCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   h.secureCookies,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
