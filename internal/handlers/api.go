package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/switchyard-io/switchyard/internal/database"
	"github.com/switchyard-io/switchyard/internal/models"
	"github.com/switchyard-io/switchyard/internal/util"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var tracer trace.Tracer

func init() {
	tracer = otel.Tracer("github.com/switchyard-io/switchyard/internal/handlers")
}

// API holds the inventory handlers. The store handle is injected, never a
// package-level singleton, so tests can run against isolated databases.
type API struct {
	logger      *zap.SugaredLogger
	db          *gorm.DB
	transaction database.TransactionFunc
	dialect     database.Dialect
	jwtSecret   []byte
}

func NewAPI(
	parent context.Context,
	logger *zap.SugaredLogger,
	db *gorm.DB,
	jwtSecret string,
) (*API, error) {
	_, span := tracer.Start(parent, "NewAPI")
	defer span.End()

	transactionFunc, dialect, err := database.GetTransactionFunc(db)
	if err != nil {
		return nil, err
	}

	return &API{
		logger:      logger,
		db:          db,
		transaction: transactionFunc,
		dialect:     dialect,
		jwtSecret:   []byte(jwtSecret),
	}, nil
}

func (api *API) Logger(ctx context.Context) *zap.SugaredLogger {
	return util.WithTrace(ctx, api.logger)
}

func (api *API) SendInternalServerError(c *gin.Context, err error) {
	api.Logger(c.Request.Context()).Errorf("request failed: %s", err)
	c.JSON(http.StatusInternalServerError, models.NewApiError(err))
}

// sendError maps an ApiResponseError surfaced out of a transaction closure
// onto the response; anything else is an internal error.
func (api *API) sendError(c *gin.Context, err error) {
	var apiResponseError *ApiResponseError
	if errors.As(err, &apiResponseError) {
		c.JSON(apiResponseError.Status, apiResponseError.Body)
		return
	}
	api.SendInternalServerError(c, err)
}

// uintParam parses a numeric path parameter, answering 400 itself when the
// value is not a positive integer.
func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || v == 0 {
		c.JSON(http.StatusBadRequest, models.NewBadPathParameterError(name))
		return 0, false
	}
	return uint(v), true
}
