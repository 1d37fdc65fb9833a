package handler

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/yourspace/yourspace-api/internal/config"
	"github.com/yourspace/yourspace-api/internal/model"
	"github.com/yourspace/yourspace-api/internal/repository"
)

// ProfileHandler serves the profile, avatar and notification endpoints.
type ProfileHandler struct {
	Cfg           config.Config
	Profiles      *repository.ProfileRepo
	Notifications *repository.NotificationRepo
}

func NewProfileHandler(cfg config.Config, p *repository.ProfileRepo, n *repository.NotificationRepo) *ProfileHandler {
	return &ProfileHandler{Cfg: cfg, Profiles: p, Notifications: n}
}

type updateProfileReq struct {
	FullName string  `json:"full_name" validate:"omitempty,max=120"`
	Phone    *string `json:"phone" validate:"omitempty,max=32"`
}

type updateSettingsReq struct {
	Theme                string `json:"theme" validate:"omitempty,oneof=light dark"`
	NotificationsEnabled *bool  `json:"notifications_enabled"`
}

// Get returns the authenticated user's profile. First-time users get a
// default profile instead of 404.
func (h *ProfileHandler) Get(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Profiles.GetByUserID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, p)
}

// Update saves the user's display fields. Omitted fields keep their
// current values.
func (h *ProfileHandler) Update(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Profiles.GetByUserID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if req.FullName != "" {
		p.FullName = strings.TrimSpace(req.FullName)
	}
	if req.Phone != nil {
		p.Phone = req.Phone
	}
	if err := h.Profiles.Upsert(ctx, &p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save failed"})
	}
	return c.JSON(http.StatusOK, p)
}

// UpdateSettings saves the user's UI preferences (theme, notification
// toggle) without touching the display fields.
func (h *ProfileHandler) UpdateSettings(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req updateSettingsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Profiles.GetByUserID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if req.Theme != "" {
		p.Theme = req.Theme
	}
	if req.NotificationsEnabled != nil {
		p.NotificationsEnabled = *req.NotificationsEnabled
	}
	if err := h.Profiles.Upsert(ctx, &p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save failed"})
	}
	return c.JSON(http.StatusOK, p)
}

// UploadAvatar accepts a multipart image under the "avatar" field, stores
// it under the configured upload directory with a random filename, and
// records its public URL on the profile. Files are served back by the
// static /uploads route.
func (h *ProfileHandler) UploadAvatar(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	fh, err := c.FormFile("avatar")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "avatar file required"})
	}
	if fh.Size > 5<<20 {
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "avatar too large"})
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp":
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unsupported image type"})
	}

	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "read upload failed"})
	}
	defer src.Close()

	if err := os.MkdirAll(h.Cfg.UploadDir, 0o755); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store upload failed"})
	}
	name := uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(h.Cfg.UploadDir, name))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store upload failed"})
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store upload failed"})
	}

	url := "/uploads/" + name
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Profiles.SetAvatar(ctx, uid, url); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"avatar_url": url})
}

// ListNotifications returns the user's most recent notifications.
func (h *ProfileHandler) ListNotifications(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Notifications.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if items == nil {
		items = []model.Notification{}
	}
	return c.JSON(http.StatusOK, echo.Map{"notifications": items})
}

// MarkNotificationRead flags one notification as read.
func (h *ProfileHandler) MarkNotificationRead(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid notification id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Notifications.MarkRead(ctx, uid, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
