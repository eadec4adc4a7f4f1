package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/kubev2v/docsql/api/v1"
	"github.com/kubev2v/docsql/internal/models"
	srvErrors "github.com/kubev2v/docsql/pkg/errors"
	"github.com/kubev2v/docsql/pkg/schema"
)

// QueryService is the part of services.QueryService the handlers need.
type QueryService interface {
	Tables() []schema.Table
	Translate(q models.Query) (string, error)
	Find(ctx context.Context, q models.Query) (models.ResultSet, error)
}

type Handler struct {
	querySrv QueryService
}

var _ v1.ServerInterface = (*Handler)(nil)

func New(querySrv QueryService) *Handler {
	return &Handler{
		querySrv: querySrv,
	}
}

// writeError maps service errors to status codes.
func writeError(c *gin.Context, logger string, msg string, err error) {
	switch {
	case srvErrors.IsResourceNotFoundError(err):
		c.JSON(http.StatusNotFound, v1.Error{Error: err.Error()})
	case srvErrors.IsQueryError(err):
		c.JSON(http.StatusBadRequest, v1.Error{Error: err.Error()})
	default:
		zap.S().Named(logger).Errorw(msg, "error", err)
		c.JSON(http.StatusInternalServerError, v1.Error{Error: msg})
	}
}
