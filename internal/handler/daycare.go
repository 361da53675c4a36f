package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/daycarehub/backend/internal/constants"
	apperrors "github.com/daycarehub/backend/internal/errors"
	"github.com/daycarehub/backend/internal/repository"
	"github.com/daycarehub/backend/internal/service"
	ctxutil "github.com/daycarehub/backend/pkg/context"
	"github.com/daycarehub/backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

type DaycareHandler struct {
	daycareService *service.DaycareService
}

func NewDaycareHandler(daycareService *service.DaycareService) *DaycareHandler {
	return &DaycareHandler{daycareService: daycareService}
}

// parsePrice ignores values that are not valid non-negative numbers.
func parsePrice(raw string) *float64 {
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value < 0 {
		return nil
	}
	return &value
}

// parseList splits a comma separated parameter, dropping empty parts.
func parseList(raw string) []string {
	if raw == "" {
		return nil
	}
	var values []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}
	return values
}

func parseBool(raw string) bool {
	value, err := strconv.ParseBool(raw)
	return err == nil && value
}

// parseSearchFilters builds filters from query parameters. Malformed
// values are ignored rather than rejected so a stale or hand-edited
// URL still returns results.
func parseSearchFilters(c *gin.Context) repository.SearchFilters {
	pagination := constants.ParsePaginationParams(c.Query("page"), c.Query("limit"))

	availability := strings.ToLower(strings.TrimSpace(c.Query("availability")))
	if availability != "yes" && availability != "no" {
		availability = ""
	}

	return repository.SearchFilters{
		Query:        strings.TrimSpace(c.Query("q")),
		Location:     strings.TrimSpace(c.Query("location")),
		Region:       strings.TrimSpace(c.Query("region")),
		Ward:         strings.TrimSpace(c.Query("ward")),
		DaycareType:  strings.TrimSpace(c.Query("daycareType")),
		PriceMin:     parsePrice(c.Query("priceMin")),
		PriceMax:     parsePrice(c.Query("priceMax")),
		AgeRange:     parseList(c.Query("ageRange")),
		Availability: availability,
		ProgramAge:   parseList(c.Query("programAge")),
		Features:     parseList(c.Query("features")),
		CWELCC:       parseBool(c.Query("cwelcc")),
		Subsidy:      parseBool(c.Query("subsidy")),
		Page:         pagination.Page,
		Limit:        pagination.Limit,
	}
}

// Search runs a filtered directory search and returns a paginated
// envelope.
func (h *DaycareHandler) Search(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Search")

	filters := parseSearchFilters(c)

	logger.InfoWithContext(ctx, "Daycare search request").
		String("query", filters.Query).
		String("location", filters.Location).
		String("region", filters.Region).
		Int("page", filters.Page).
		Int("limit", filters.Limit).
		Log()

	result, err := h.daycareService.Search(ctx, filters)
	if err != nil {
		logger.ErrorWithContext(ctx, "Daycare search failed").
			Err(err).
			Log()
		c.JSON(apperrors.StatusOf(err), constants.BuildErrorResponse(constants.MsgInternalServer, nil))
		return
	}

	c.JSON(http.StatusOK, constants.BuildListResponse(
		result.Daycares, result.TotalCount, result.CurrentPage, result.Limit))
}

// GetByID returns one listing.
func (h *DaycareHandler) GetByID(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GetByID")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid daycare ID", nil))
		return
	}

	daycare, err := h.daycareService.GetByID(ctx, uint(id))
	if err != nil {
		status := apperrors.StatusOf(err)
		message := constants.MsgInternalServer
		if status == http.StatusNotFound {
			message = constants.MsgNotFound
		}
		logger.WarnWithContext(ctx, "Failed to fetch daycare").
			Uint("daycare_id", uint(id)).
			Err(err).
			Log()
		c.JSON(status, constants.BuildErrorResponse(message, nil))
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(daycare, constants.MsgSuccess))
}

func (h *DaycareHandler) respondStrings(c *gin.Context, values []string, err error) {
	if err != nil {
		c.JSON(apperrors.StatusOf(err), constants.BuildErrorResponse(constants.MsgInternalServer, nil))
		return
	}
	if values == nil {
		values = []string{}
	}
	c.JSON(http.StatusOK, constants.BuildSuccessResponse(values, constants.MsgSuccess))
}

// GetLocations lists distinct cities.
func (h *DaycareHandler) GetLocations(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GetLocations")
	values, err := h.daycareService.GetLocations(ctx)
	h.respondStrings(c, values, err)
}

// GetRegions lists distinct regions.
func (h *DaycareHandler) GetRegions(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GetRegions")
	values, err := h.daycareService.GetRegions(ctx)
	h.respondStrings(c, values, err)
}

// GetCitiesByRegion lists the cities within one region.
func (h *DaycareHandler) GetCitiesByRegion(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GetCitiesByRegion")

	region := strings.TrimSpace(c.Query("region"))
	if region == "" {
		region = strings.TrimSpace(c.Param("region"))
	}
	if region == "" {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Region is required", nil))
		return
	}

	values, err := h.daycareService.GetCitiesByRegion(ctx, region)
	h.respondStrings(c, values, err)
}

// GetProgramAges lists distinct program age labels.
func (h *DaycareHandler) GetProgramAges(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GetProgramAges")
	values, err := h.daycareService.GetProgramAges(ctx)
	h.respondStrings(c, values, err)
}

// GetTypes lists distinct daycare types, optionally narrowed by
// region and city.
func (h *DaycareHandler) GetTypes(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GetTypes")
	values, err := h.daycareService.GetTypes(ctx, strings.TrimSpace(c.Query("region")), strings.TrimSpace(c.Query("city")))
	h.respondStrings(c, values, err)
}

// GetStats returns directory wide aggregates.
func (h *DaycareHandler) GetStats(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GetStats")

	stats, err := h.daycareService.GetStats(ctx)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to compute directory stats").
			Err(err).
			Log()
		c.JSON(apperrors.StatusOf(err), constants.BuildErrorResponse(constants.MsgInternalServer, nil))
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(stats, constants.MsgSuccess))
}
