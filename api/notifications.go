package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/Domenick1991/travelbooking/internal/notification"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type NotificationHandler struct {
	service notification.NotificationUseCase
	log     *logrus.Logger
}

func NewNotificationHandler(service notification.NotificationUseCase, log *logrus.Logger) *NotificationHandler {
	return &NotificationHandler{service: service, log: log}
}

func (h *NotificationHandler) Register(router *gin.RouterGroup) {
	router.GET("/notifications", h.list)
	router.PATCH("/notifications/:id/read", h.markRead)
}

type notificationResponse struct {
	ID        int64  `json:"id"`
	Message   string `json:"message"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"createdAt"`
}

func toNotificationResponse(n domain.Notification) notificationResponse {
	return notificationResponse{
		ID:        n.ID,
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
}

func (h *NotificationHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context(), identity(c).UserID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	out := make([]notificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, toNotificationResponse(n))
	}
	c.JSON(http.StatusOK, out)
}

func (h *NotificationHandler) markRead(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	n, err := h.service.MarkRead(c.Request.Context(), identity(c).UserID, id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toNotificationResponse(*n))
}
