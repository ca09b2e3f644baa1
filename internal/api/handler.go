package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/openmrkt/nftpulse/internal/domain/dto"
	"github.com/openmrkt/nftpulse/internal/domain/models"
	"github.com/openmrkt/nftpulse/internal/service"
	"github.com/openmrkt/nftpulse/internal/storage"
)

// Handler provides HTTP handlers for the collection statistics endpoints.
//
// Responsibilities:
//   - Validate incoming query/body parameters (period enums, sort keys,
//     pagination numbers).
//   - Delegate to the stat service for data access.
//   - Translate domain models into response DTOs with appropriate status codes.
type Handler struct {
	svc service.StatService
}

// NewHandler constructs a new Handler instance.
func NewHandler(svc service.StatService) *Handler {
	return &Handler{svc: svc}
}

// parsePeriod validates an optional period parameter. An empty value yields
// (nil, true); an unknown value yields (nil, false).
func parsePeriod(raw string) (*models.Period, bool) {
	if raw == "" {
		return nil, true
	}
	p, ok := models.ParsePeriod(strings.ToUpper(strings.TrimSpace(raw)))
	if !ok {
		return nil, false
	}
	return &p, true
}

// GetTopCollections handles POST /api/v1/stat/top requests.
//
// GetTopCollections godoc
// @Summary      Get top collections
// @Description  Returns up to 10 collections ordered by volume for the requested period window
// @Tags         stat
// @Accept       json
// @Produce      json
// @Param        filter  body      dto.TopCollectionsRequest  false  "Period filter"
// @Success      200     {array}   dto.StatResponse           "Success"
// @Failure      400     {object}  dto.ErrorResponse          "Bad Request"
// @Failure      500     {object}  dto.ErrorResponse          "Internal Error"
// @Router       /api/v1/stat/top [post]
func (h *Handler) GetTopCollections(c *gin.Context) {
	var req dto.TopCollectionsRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request body", err))
			return
		}
	}

	period, ok := parsePeriod(req.Period)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid period: "+req.Period, nil))
		return
	}

	out, err := h.svc.GetTopCollections(c.Request.Context(), period)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to fetch top collections", err))
		return
	}
	c.JSON(http.StatusOK, dto.NewStatResponses(out))
}

// GetNotableCollections handles GET /api/v1/stat/notable requests.
//
// GetNotableCollections godoc
// @Summary      Get notable collections
// @Description  Returns the top 3 collections by floor price among freshly updated stats
// @Tags         stat
// @Produce      json
// @Success      200  {array}   dto.StatResponse   "Success"
// @Failure      500  {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/stat/notable [get]
func (h *Handler) GetNotableCollections(c *gin.Context) {
	out, err := h.svc.GetNotableCollections(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to fetch notable collections", err))
		return
	}
	c.JSON(http.StatusOK, dto.NewStatResponses(out))
}

// GetFeaturedProjects handles GET /api/v1/stat/feature requests.
//
// GetFeaturedProjects godoc
// @Summary      Get featured projects
// @Description  Returns the freshest stat of every feature-flagged collection
// @Tags         stat
// @Produce      json
// @Success      200  {array}   dto.StatResponse   "Success"
// @Failure      500  {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/stat/feature [get]
func (h *Handler) GetFeaturedProjects(c *gin.Context) {
	out, err := h.svc.GetFeaturedProjects(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to fetch featured projects", err))
		return
	}
	c.JSON(http.StatusOK, dto.NewStatResponses(out))
}

// GetStatByCollectionID handles GET /api/v1/stat/:collectionId requests.
//
// GetStatByCollectionID godoc
// @Summary      Get stat by collection id
// @Description  Returns one stat row with collection detail, optionally filtered by period
// @Tags         stat
// @Produce      json
// @Param        collectionId  path      string  true   "Collection id"
// @Param        period        query     string  false  "Period filter"  Enums(HOUR, SIX_HOURS, DAY, WEEK, ALL)
// @Success      200           {object}  dto.StatResponse   "Success"
// @Failure      400           {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404           {object}  dto.ErrorResponse  "Not Found"
// @Failure      500           {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/stat/{collectionId} [get]
func (h *Handler) GetStatByCollectionID(c *gin.Context) {
	collectionID := strings.TrimSpace(c.Param("collectionId"))
	if collectionID == "" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("collectionId is required", nil))
		return
	}

	period, ok := parsePeriod(c.Query("period"))
	if !ok {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid period: "+c.Query("period"), nil))
		return
	}

	out, err := h.svc.GetStatByCollectionID(c.Request.Context(), collectionID, period)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to fetch stat", err))
		return
	}
	if out == nil {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("no stats found", nil))
		return
	}
	c.JSON(http.StatusOK, dto.NewStatResponse(*out))
}

// GetCollections handles GET /api/v1/stat requests.
//
// GetCollections godoc
// @Summary      Get collection stats
// @Description  Returns a filtered, sorted, paginated list of collection stats
// @Tags         stat
// @Produce      json
// @Param        sortBy         query     string  false  "Sort key"  Enums(VOLUME, LIQUIDITY, FLOOR, SALES, ITEMS, LISTED, OWNERS)
// @Param        sortAscending  query     string  false  "asc or desc (default desc)"
// @Param        contains       query     string  false  "Name substring filter"
// @Param        period         query     string  false  "Period filter"  Enums(HOUR, SIX_HOURS, DAY, WEEK, ALL)
// @Param        limit          query     int     false  "Page size"
// @Param        offset         query     int     false  "Page offset multiplier"
// @Param        startId        query     int     false  "Pagination anchor"
// @Success      200            {array}   dto.StatResponse   "Success"
// @Failure      400            {object}  dto.ErrorResponse  "Bad Request"
// @Failure      500            {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/stat [get]
func (h *Handler) GetCollections(c *gin.Context) {
	// ─── Validate filter params ───────────────────────────────
	period, ok := parsePeriod(c.Query("period"))
	if !ok {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid period: "+c.Query("period"), nil))
		return
	}

	q := storage.ListStatsQuery{
		SortBy:    storage.StatsSortBy(strings.ToUpper(c.Query("sortBy"))),
		Ascending: strings.EqualFold(c.Query("sortAscending"), "asc"),
		Contains:  strings.TrimSpace(c.Query("contains")),
		Period:    period,
	}

	// ─── Parse pagination params ──────────────────────────────
	var err error
	if q.Limit, err = parseIntParam(c, "limit", 20); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid limit", err))
		return
	}
	if q.Offset, err = parseIntParam(c, "offset", 1); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid offset", err))
		return
	}
	if q.StartID, err = parseIntParam(c, "startId", 0); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid startId", err))
		return
	}

	// ─── Query service (with request context) ─────────────────
	out, err := h.svc.GetCollections(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to fetch collection stats", err))
		return
	}
	c.JSON(http.StatusOK, dto.NewStatResponses(out))
}

// parseIntParam reads a non-negative integer query parameter with a default.
func parseIntParam(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		if err == nil {
			err = strconv.ErrRange
		}
		return 0, err
	}
	return v, nil
}
