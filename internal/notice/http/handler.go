package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/roomdesk/conference-booking-backend/internal/notice"
	"github.com/roomdesk/conference-booking-backend/internal/pkg/response"
)

type Handler struct {
	service notice.Service
}

func NewHandler(service notice.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListNoticesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	req.Normalize()

	filter := notice.Filter{
		RoomID:   req.RoomID,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if req.ActiveOnly {
		now := time.Now().UTC()
		filter.ActiveAt = &now
	}

	notices, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list notices"})
		return
	}

	items := make([]NoticeResponse, len(notices))
	for i, n := range notices {
		items[i] = NewNoticeResponse(n)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateNoticeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	n, err := h.service.Create(c.Request.Context(), notice.CreateRequest{
		Title:    body.Title,
		Body:     body.Body,
		RoomID:   body.RoomID,
		StartsAt: body.StartsAt,
		EndsAt:   body.EndsAt,
	})
	if err != nil {
		switch {
		case errors.Is(err, notice.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, notice.ErrTitleRequired),
			errors.Is(err, notice.ErrBodyRequired),
			errors.Is(err, notice.ErrInvalidWindow):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create notice"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewNoticeResponse(n))
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateNoticeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	n, err := h.service.Update(c.Request.Context(), id, notice.UpdateRequest{
		Title:    body.Title,
		Body:     body.Body,
		StartsAt: body.StartsAt,
		EndsAt:   body.EndsAt,
	})
	if err != nil {
		switch {
		case errors.Is(err, notice.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "notice not found"})
		case errors.Is(err, notice.ErrTitleRequired),
			errors.Is(err, notice.ErrBodyRequired),
			errors.Is(err, notice.ErrInvalidWindow):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update notice"})
		}
		return
	}

	c.JSON(http.StatusOK, NewNoticeResponse(n))
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, notice.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "notice not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete notice"})
		return
	}

	c.Status(http.StatusNoContent)
}
