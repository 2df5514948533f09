package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/todocards/api/internal/application"
	"github.com/todocards/api/internal/domain/entity"
	"github.com/todocards/api/pkg/helpers"
	"github.com/todocards/api/pkg/response"
	"github.com/todocards/api/pkg/validation"
)

type UserHandler struct {
	Svc     *application.UserService
	JWT     *helpers.JWTManager
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewUserHandler(svc *application.UserService, jwt *helpers.JWTManager, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *UserHandler {
	return &UserHandler{Svc: svc, JWT: jwt, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type updateAvatarRequest struct {
	Avatar string `json:"avatar" binding:"required,url"`
}

func profileView(u *entity.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"email":      u.Email,
		"name":       u.Name,
		"avatar":     u.AvatarURL,
		"lists":      u.Lists,
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}
}

// Register POST /api/register
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}
	u, pair, err := h.Svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrEmailTaken) {
			resp := response.Error[any](c, http.StatusConflict, "email already registered", nil)
			c.JSON(resp.Status, resp)
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).Error("registration failed")
		}
		resp := response.Error[any](c, http.StatusInternalServerError, "error creating user", nil)
		c.JSON(resp.Status, resp)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	resp := response.Success(c, http.StatusCreated, gin.H{
		"user":  profileView(u),
		"token": pair.AccessToken,
	}, "user created successfully", nil)
	c.JSON(resp.Status, resp)
}

// Login POST /api/login
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}
	u, pair, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		resp := response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
		c.JSON(resp.Status, resp)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	resp := response.Success(c, http.StatusOK, gin.H{
		"email": u.Email,
		"token": pair.AccessToken,
	}, "login successful", gin.H{"access_expires_at": pair.AccessTokenExpiry, "refresh_expires_at": pair.RefreshTokenExpiry})
	c.JSON(resp.Status, resp)
}

// VerifyToken GET /api/verify-token
//
// Pure credential check for the frontend session bootstrap; it never touches
// storage.
func (h *UserHandler) VerifyToken(c *gin.Context) {
	claims, err := h.JWT.ParseAccessToken(bearerOrCookie(c))
	if err != nil {
		resp := response.Error[any](c, http.StatusUnauthorized, "invalid token", gin.H{"valid": false})
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, gin.H{"valid": true, "userId": claims.UserID}, "token valid", nil)
	c.JSON(resp.Status, resp)
}

func bearerOrCookie(c *gin.Context) string {
	const prefix = "Bearer "
	if h := c.GetHeader("Authorization"); len(h) > len(prefix) && h[:len(prefix)] == prefix {
		return h[len(prefix):]
	}
	tok, _ := c.Cookie("access_token")
	return tok
}

// Refresh POST /api/refresh
func (h *UserHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie("refresh_token")
	if err != nil || refresh == "" {
		resp := response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil)
		c.JSON(resp.Status, resp)
		return
	}
	pair, _, err := h.Svc.Refresh(c.Request.Context(), refresh)
	if err != nil {
		resp := response.Error[any](c, http.StatusUnauthorized, "invalid refresh token", nil)
		c.JSON(resp.Status, resp)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	resp := response.Success[any](c, http.StatusOK, gin.H{"refreshed": true}, "token refreshed", gin.H{"access_expires_at": pair.AccessTokenExpiry, "refresh_expires_at": pair.RefreshTokenExpiry})
	c.JSON(resp.Status, resp)
}

// Logout POST /api/logout
func (h *UserHandler) Logout(c *gin.Context) {
	h.Svc.Logout(c.Request.Context(), c.GetString("userID"))
	h.Cookies.Clear(c)
	resp := response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
	c.JSON(resp.Status, resp)
}

// Account GET /api/account
func (h *UserHandler) Account(c *gin.Context) {
	u, err := h.Svc.GetProfile(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		resp := response.Error[any](c, http.StatusNotFound, "user not found", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, profileView(u), "user data retrieved successfully", nil)
	c.JSON(resp.Status, resp)
}

// UpdateAvatar PUT /api/account/avatar
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	var req updateAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "avatar url is required", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}
	u, err := h.Svc.UpdateAvatar(c.Request.Context(), c.GetString("userID"), req.Avatar)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			resp := response.Error[any](c, http.StatusNotFound, "user not found", nil)
			c.JSON(resp.Status, resp)
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).Error("avatar update failed")
		}
		resp := response.Error[any](c, http.StatusInternalServerError, "failed to update avatar", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, profileView(u), "avatar updated successfully", nil)
	c.JSON(resp.Status, resp)
}

// UploadAvatar POST /api/account/avatar/upload (multipart form, field "avatar")
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	fh, err := c.FormFile("avatar")
	if err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "avatar file is required", nil)
		c.JSON(resp.Status, resp)
		return
	}
	f, err := fh.Open()
	if err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "cannot read avatar file", nil)
		c.JSON(resp.Status, resp)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadAvatar(c.Request.Context(), c.GetString("userID"), f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("avatar upload failed")
		}
		resp := response.Error[any](c, http.StatusInternalServerError, "failed to upload avatar", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, gin.H{"avatar": url}, "avatar uploaded successfully", nil)
	c.JSON(resp.Status, resp)
}

// Search GET /api/users/search?q=&size=
func (h *UserHandler) Search(c *gin.Context) {
	q := c.Query("q")
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.SearchUsers(c.Request.Context(), q, size)
	if err != nil {
		resp := response.Error[any](c, http.StatusInternalServerError, "search failed", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, hits, "search results", gin.H{"count": len(hits)})
	c.JSON(resp.Status, resp)
}
