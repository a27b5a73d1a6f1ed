package handler

import (
	"errors"   // errors.Is maps repository sentinels
	"net/http" // HTTP status codes and primitives

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/iliyamo/little-lemon/internal/config"     // app configuration
	"github.com/iliyamo/little-lemon/internal/middleware" // identity of the authenticated caller
	"github.com/iliyamo/little-lemon/internal/repository" // sentinel errors
	"github.com/iliyamo/little-lemon/internal/serializer" // validation and wire objects
	"github.com/iliyamo/little-lemon/internal/utils"      // hashing and token issuing
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg    config.Config
	Users  UserStore
	Tokens TokenStore
}

func NewAuthHandler(cfg config.Config, u UserStore, t TokenStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Tokens: t}
}

// ----- DTOs -----

type loginReq struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type tokenResp struct {
	Token string `json:"token"`
}

const msgBadCredentials = "Unable to log in with provided credentials."

// ObtainToken: verify credentials and return the user's token, creating it
// on first login.  Repeated logins return the same token until logout.
func (h *AuthHandler) ObtainToken(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return errInvalidBody
	}
	res := serializer.ValidateCredentials(req.Username, req.Password)
	if !res.OK() {
		return validationFailed(c, res.Errors)
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, res.Value.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			utils.BurnPasswordCheck(res.Value.Password) // same cost as a wrong password
			return badCredentials(c)
		}
		return internalError(c, "lookup user", err)
	}
	if !utils.VerifyPassword(u.PasswordHash, res.Value.Password) || !u.IsActive {
		return badCredentials(c)
	}

	key, err := h.tokenFor(c, u.ID, u.Username)
	if err != nil {
		return internalError(c, "issue token", err)
	}
	return c.JSON(http.StatusOK, tokenResp{Token: key})
}

// tokenFor is get-or-create over the one-token-per-user table.  When two
// logins race, the loser re-reads the winner's token.
func (h *AuthHandler) tokenFor(c echo.Context, userID uint64, username string) (string, error) {
	ctx, cancel := storeCtx(c)
	defer cancel()

	key, err := h.Tokens.KeyForUser(ctx, userID)
	if err == nil {
		return key, nil
	}
	if !errors.Is(err, repository.ErrTokenNotFound) {
		return "", err
	}

	key, err = utils.NewAuthToken(h.Cfg.JWTSecret, userID, username, h.Cfg.TokenTTL)
	if err != nil {
		return "", err
	}
	if err := h.Tokens.Create(ctx, userID, key); err != nil {
		if errors.Is(err, repository.ErrTokenExists) {
			return h.Tokens.KeyForUser(ctx, userID)
		}
		return "", err
	}
	return key, nil
}

func badCredentials(c echo.Context) error {
	return validationFailed(c, serializer.FieldErrors{serializer.NonFieldErrors: {msgBadCredentials}})
}

// Register: create a user account.  No token is issued; clients log in
// afterwards.
func (h *AuthHandler) Register(c echo.Context) error {
	body, err := bindBody(c)
	if err != nil {
		return err
	}
	res := serializer.ValidateRegistration(body)
	if !res.OK() {
		return validationFailed(c, res.Errors)
	}
	reg := res.Value

	ctx, cancel := storeCtx(c)
	defer cancel()

	uid, err := h.Users.Create(ctx, reg.Username, reg.Email, reg.Password, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return validationFailed(c, serializer.FieldErrors{"username": {"A user with that username already exists."}})
		}
		return internalError(c, "create user", err)
	}
	u, err := h.Users.GetByID(ctx, uid) // read back the stored (normalized) email
	if err != nil {
		return internalError(c, "load user", err)
	}
	return c.JSON(http.StatusCreated, serializer.UserToJSON(*u))
}

// Me: return the authenticated account.
func (h *AuthHandler) Me(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication credentials were not provided"})
	}
	ctx, cancel := storeCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return notFound(c, "user")
		}
		return internalError(c, "load user", err)
	}
	return c.JSON(http.StatusOK, serializer.UserToJSON(*u))
}

// Logout: revoke the token the request was authenticated with.
func (h *AuthHandler) Logout(c echo.Context) error {
	key := middleware.AuthToken(c)
	if key == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication credentials were not provided"})
	}
	ctx, cancel := storeCtx(c)
	defer cancel()

	// Already gone means a concurrent logout won; the outcome is the same.
	if err := h.Tokens.DeleteByKey(ctx, key); err != nil && !errors.Is(err, repository.ErrTokenNotFound) {
		return internalError(c, "revoke token", err)
	}
	return c.NoContent(http.StatusNoContent)
}
