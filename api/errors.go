package api

import (
	"net/http"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func statusOf(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindInvalidRequest:
		return http.StatusBadRequest
	case domain.KindRoomUnavailable, domain.KindFlightUnavailable, domain.KindAlreadyConfirmed, domain.KindInvalidState:
		return http.StatusConflict
	case domain.KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func problem(err error) (int, errorResponse) {
	kind := domain.KindOf(err)
	return statusOf(kind), errorResponse{Error: domain.MessageOf(err), Kind: string(kind)}
}

// writeError renders err with its kind's status. Causes are logged, never returned.
func writeError(c *gin.Context, log *logrus.Logger, err error) {
	status, body := problem(err)
	if status >= http.StatusInternalServerError && log != nil {
		log.WithError(err).WithField("request_id", c.GetString(requestIDKey)).Error("request failed")
	}
	c.AbortWithStatusJSON(status, body)
}

func badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: message, Kind: string(domain.KindInvalidRequest)})
}
