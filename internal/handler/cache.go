package handler

import (
	"net/http"

	"github.com/daycarehub/backend/internal/constants"
	"github.com/daycarehub/backend/internal/service"
	ctxutil "github.com/daycarehub/backend/pkg/context"
	"github.com/daycarehub/backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

type CacheHandler struct {
	cacheService *service.CacheService
}

func NewCacheHandler(cacheService *service.CacheService) *CacheHandler {
	return &CacheHandler{cacheService: cacheService}
}

// InvalidateSearches drops cached search results, used after bulk
// listing imports.
func (h *CacheHandler) InvalidateSearches(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "InvalidateSearches")

	deleted, err := h.cacheService.InvalidateSearches(ctx)
	if err != nil {
		logger.ErrorWithContext(ctx, "Search cache invalidation failed").
			Err(err).
			Log()
		c.JSON(http.StatusInternalServerError, constants.BuildErrorResponse(constants.MsgInternalServer, nil))
		return
	}

	logger.InfoWithContext(ctx, "Search cache invalidated").
		Int("deleted_keys", deleted).
		Log()

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(gin.H{"deletedKeys": deleted}, constants.MsgSuccess))
}

// InvalidateMetadata drops cached filter vocabularies.
func (h *CacheHandler) InvalidateMetadata(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "InvalidateMetadata")

	deleted, err := h.cacheService.InvalidateMetadata(ctx)
	if err != nil {
		logger.ErrorWithContext(ctx, "Metadata cache invalidation failed").
			Err(err).
			Log()
		c.JSON(http.StatusInternalServerError, constants.BuildErrorResponse(constants.MsgInternalServer, nil))
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(gin.H{"deletedKeys": deleted}, constants.MsgSuccess))
}

// Clear drops every cache entry this service owns.
func (h *CacheHandler) Clear(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Clear")

	deleted, err := h.cacheService.Clear(ctx)
	if err != nil {
		logger.ErrorWithContext(ctx, "Cache clear failed").
			Err(err).
			Log()
		c.JSON(http.StatusInternalServerError, constants.BuildErrorResponse(constants.MsgInternalServer, nil))
		return
	}

	logger.InfoWithContext(ctx, "Cache cleared").
		Int("deleted_keys", deleted).
		Log()

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(gin.H{"deletedKeys": deleted}, constants.MsgSuccess))
}

// Stats exposes cache statistics.
func (h *CacheHandler) Stats(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Stats")

	stats, err := h.cacheService.Stats(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, constants.BuildErrorResponse(constants.MsgInternalServer, nil))
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(stats, constants.MsgSuccess))
}
