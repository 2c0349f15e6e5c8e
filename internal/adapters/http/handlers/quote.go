package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atelier-studio/atelier-service/internal/adapters/http/dto"
	"github.com/atelier-studio/atelier-service/internal/adapters/http/middleware"
	"github.com/atelier-studio/atelier-service/internal/app"
	"github.com/atelier-studio/atelier-service/internal/ports"
)

// QuoteHandler handles quote submission, listing and previews.
type QuoteHandler struct {
	service *app.QuoteService
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(service *app.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		service: service,
	}
}

// SubmitQuote handles POST /api/v1/quotes
// The declared total must match what the calculator computes.
//
// @Summary Submit a quote
// @Tags quotes
// @Accept json
// @Produce json
// @Security SessionToken
// @Param body body dto.SubmitQuoteRequest true "Quote"
// @Success 201 {object} dto.SubmitQuoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/v1/quotes [post]
func (h *QuoteHandler) SubmitQuote(c *gin.Context) {
	var req dto.SubmitQuoteRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithBindError(c, err)
		return
	}

	created, err := h.service.SubmitQuote(c.Request.Context(), req.ToSubmission(middleware.GetUserID(c)))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToSubmitQuoteResponse(created))
}

// ListQuotes handles GET /api/v1/quotes
// Returns the caller's quotes newest first.
//
// @Summary List quotes
// @Tags quotes
// @Produce json
// @Security SessionToken
// @Param cursor query string false "Cursor from a previous page"
// @Param limit query int false "Page size (1-100)"
// @Success 200 {object} dto.Page[dto.QuoteResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/v1/quotes [get]
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	var req dto.PageRequest
	if err := dto.BindQueryAndValidate(c, &req); err != nil {
		dto.RespondWithBindError(c, err)
		return
	}

	after, err := req.Position()
	if err != nil {
		dto.RespondWithErrorCode(c, dto.ErrorCodeBadRequest, "cursor is invalid")
		return
	}

	limit := req.PageSize()
	page := ports.QueryPage{After: after.CreatedAt, AfterID: after.ID, Limit: limit + 1}

	quotes, err := h.service.ListQuotes(c.Request.Context(), middleware.GetUserID(c), page)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	items := make([]dto.QuoteResponse, len(quotes))
	for i := range quotes {
		items[i] = dto.ToQuoteResponse(&quotes[i])
	}

	c.JSON(http.StatusOK, dto.NewPage(items, limit, dto.QuotePosition))
}

// GetQuote handles GET /api/v1/quotes/:id
//
// @Summary Get a quote with its items
// @Tags quotes
// @Produce json
// @Security SessionToken
// @Param id path string true "Quote ID"
// @Success 200 {object} dto.QuoteResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/quotes/{id} [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	quote, err := h.service.GetQuote(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToQuoteResponse(quote))
}

// Preview handles POST /api/v1/quotes/preview
// Prices a selection without storing anything.
//
// @Summary Price a selection
// @Tags quotes
// @Accept json
// @Produce json
// @Security SessionToken
// @Param body body dto.PreviewRequest true "Selection"
// @Success 200 {object} dto.PreviewResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/quotes/preview [post]
func (h *QuoteHandler) Preview(c *gin.Context) {
	var req dto.PreviewRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithBindError(c, err)
		return
	}

	preview, err := h.service.Preview(c.Request.Context(), req.AgeCategory, req.ToPreviewLines())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPreviewResponse(preview))
}

// RegisterQuoteRoutes registers quote routes on the given router group.
func (h *QuoteHandler) RegisterQuoteRoutes(rg *gin.RouterGroup) {
	quotes := rg.Group("/quotes")
	quotes.POST("", h.SubmitQuote)
	quotes.GET("", h.ListQuotes)
	quotes.POST("/preview", h.Preview)
	quotes.GET("/:id", h.GetQuote)
}
