// AngelaMos | 2026
// handler.go

package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/RaulRamazanov/Shop/internal/config"
	"github.com/RaulRamazanov/Shop/internal/core"
	"github.com/RaulRamazanov/Shop/internal/middleware"
)

// invalidUserData is deliberately generic; field level detail is not
// returned for registration.
const invalidUserData = "invalid user data"

type Handler struct {
	service   *Service
	validator *validator.Validate
	cookie    config.CookieConfig
}

func NewHandler(service *Service, cookie config.CookieConfig) *Handler {
	return &Handler{
		service:   service,
		validator: core.NewValidator(),
		cookie:    cookie,
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	loginLimiter func(http.Handler) http.Handler,
) {
	r.Post("/users/", h.Register)
	r.Post("/users", h.Register)

	r.With(loginLimiter).Post("/login/", h.Login)
	r.With(loginLimiter).Post("/login", h.Login)

	r.Post("/logout/", h.Logout)
	r.Post("/logout", h.Logout)

	r.With(authenticator).Get("/me", h.GetMe)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.ValidationFailed(w, invalidUserData)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.ValidationFailed(w, invalidUserData)
		return
	}

	resp, err := h.service.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrUserExists) {
			core.JSONError(w, core.DuplicateError("username or email"))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	h.setTokenCookie(w, resp.Token.AccessToken, resp.Token.ExpiresAt)
	core.OK(w, resp.User)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		core.BadRequest(w, "invalid form body")
		return
	}

	req := LoginRequest{
		Username: r.PostForm.Get("username"),
		Password: r.PostForm.Get("password"),
	}

	if err := h.validator.Struct(req); err != nil {
		core.ValidationFailed(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			core.JSONError(
				w,
				core.UnauthorizedError("invalid username or password"),
			)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	h.setTokenCookie(w, resp.Token.AccessToken, resp.Token.ExpiresAt)
	core.OK(w, resp.Token)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearTokenCookie(w)
	core.OK(w, MessageResponse{Message: "logged out"})
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return
	}

	user, err := h.service.GetCurrentUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	resp := MeResponse{UserResponse: *user}
	if claims := middleware.GetClaims(r.Context()); claims != nil {
		resp.SessionExpiresAt = &claims.ExpiresAt
	}

	core.OK(w, resp)
}

func (h *Handler) setTokenCookie(
	w http.ResponseWriter,
	token string,
	expiresAt time.Time,
) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     h.cookie.Path,
		Domain:   h.cookie.Domain,
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: sameSite(h.cookie.SameSite),
	})
}

func (h *Handler) clearTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     h.cookie.Path,
		Domain:   h.cookie.Domain,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: sameSite(h.cookie.SameSite),
	})
}

func sameSite(mode string) http.SameSite {
	switch mode {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
