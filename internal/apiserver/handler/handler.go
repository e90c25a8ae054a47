package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/amoylab/rentboard/internal/apiserver/cache"
	"github.com/amoylab/rentboard/internal/apiserver/database"
	"github.com/amoylab/rentboard/internal/apiserver/middleware"
	"github.com/amoylab/rentboard/internal/auth/jwt"
	"github.com/amoylab/rentboard/internal/common/config"
	"github.com/amoylab/rentboard/internal/i18n"
	"github.com/amoylab/rentboard/internal/storage"
	"github.com/amoylab/rentboard/pkg/metrics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Handler serves the marketplace API
type Handler struct {
	db         database.Database
	jwtService *jwt.Service
	cache      cache.ListingCache
	images     storage.ImageStorage
	metrics    *metrics.Metrics
	logger     *zap.Logger
	upload     config.UploadConfig
	bcryptCost int
	now        func() time.Time
}

// Option configures optional collaborators of a Handler
type Option func(*Handler)

// WithCache sets the single-listing cache
func WithCache(c cache.ListingCache) Option {
	return func(h *Handler) {
		if c != nil {
			h.cache = c
		}
	}
}

// WithImageStorage sets where uploaded images are written and the upload limits
func WithImageStorage(s storage.ImageStorage, cfg config.UploadConfig) Option {
	return func(h *Handler) {
		h.images = s
		if cfg.MaxFiles > 0 {
			h.upload.MaxFiles = cfg.MaxFiles
		}
		if cfg.MaxFileSize > 0 {
			h.upload.MaxFileSize = cfg.MaxFileSize
		}
	}
}

// WithMetrics sets the domain counters
func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Handler) {
		h.metrics = m
	}
}

// New creates a Handler
func New(db database.Database, jwtService *jwt.Service, logger *zap.Logger, opts ...Option) *Handler {
	h := &Handler{
		db:         db,
		jwtService: jwtService,
		cache:      cache.Noop{},
		logger:     logger,
		upload:     config.UploadConfig{MaxFiles: 6, MaxFileSize: 2 << 20},
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// identity resolves the caller's user ID. It responds and returns false when
// the token subject is not a usable identifier.
func (h *Handler) identity(c *gin.Context) (database.ID, bool) {
	claims, ok := middleware.IdentityFrom(c)
	if !ok {
		i18n.RespondWithError(c, i18n.ErrUnauthorized)
		return "", false
	}
	id, err := database.ParseID(claims.UserID)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrInvalidToken)
		return "", false
	}
	return id, true
}

// pathID parses the :id path parameter, responding 400 when malformed
func pathID(c *gin.Context) (database.ID, bool) {
	id, err := database.ParseID(c.Param("id"))
	if err != nil {
		i18n.Error(i18n.ErrInvalidID).WithParam("field", "id").Send(c)
		return "", false
	}
	return id, true
}

// bindJSON decodes the request body into v, responding 400 on malformed input
func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		i18n.Error(i18n.ErrInvalidPayload).WithParam("reason", "malformed JSON body").Send(c)
		return false
	}
	return true
}

// fail writes the response for an error returned by validation or the store
func (h *Handler) fail(c *gin.Context, err error) {
	var partial *database.PartialWriteError
	var coded *i18n.ErrorWithCode
	switch {
	case errors.As(err, &partial):
		h.metrics.PartialWrite()
		h.logger.Error("coupled write left a listing behind",
			zap.String("listing_id", partial.ListingID.String()),
			zap.Error(partial.Err))
		msg := i18n.TranslateError(c, i18n.ErrPartialWrite.WithParam("listingId", partial.ListingID.String()))
		c.AbortWithStatusJSON(http.StatusMultiStatus, gin.H{
			"success":   false,
			"message":   msg,
			"listingId": partial.ListingID,
		})
	case errors.As(err, &coded):
		i18n.RespondWithError(c, coded)
	default:
		h.logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer)
	}
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
