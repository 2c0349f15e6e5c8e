package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atelier-studio/atelier-service/internal/adapters/http/dto"
	"github.com/atelier-studio/atelier-service/internal/adapters/http/middleware"
	"github.com/atelier-studio/atelier-service/internal/app"
)

// DraftHandler exposes the editable phase of a quote.
type DraftHandler struct {
	service *app.QuoteDraftService
}

// NewDraftHandler creates a new draft handler.
func NewDraftHandler(service *app.QuoteDraftService) *DraftHandler {
	return &DraftHandler{service: service}
}

// Create handles POST /api/v1/quote-drafts
//
// @Summary Open an empty draft
// @Tags drafts
// @Produce json
// @Security SessionToken
// @Success 201 {object} dto.DraftResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/v1/quote-drafts [post]
func (h *DraftHandler) Create(c *gin.Context) {
	view, err := h.service.Create(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Header("Location", c.FullPath()+"/"+view.ID)
	c.JSON(http.StatusCreated, dto.ToDraftResponse(view))
}

// Get handles GET /api/v1/quote-drafts/:id
//
// @Summary Get a draft with its totals
// @Tags drafts
// @Produce json
// @Security SessionToken
// @Param id path string true "Draft ID"
// @Success 200 {object} dto.DraftResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/quote-drafts/{id} [get]
func (h *DraftHandler) Get(c *gin.Context) {
	view, err := h.service.Get(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	h.respond(c, view, err)
}

// SetAgeCategory handles PUT /api/v1/quote-drafts/:id/age-category
//
// @Summary Choose the age category
// @Tags drafts
// @Accept json
// @Produce json
// @Security SessionToken
// @Param id path string true "Draft ID"
// @Param body body dto.SetAgeCategoryRequest true "Age category"
// @Success 200 {object} dto.DraftResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/quote-drafts/{id}/age-category [put]
func (h *DraftHandler) SetAgeCategory(c *gin.Context) {
	var req dto.SetAgeCategoryRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithBindError(c, err)
		return
	}

	view, err := h.service.SetAgeCategory(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), req.AgeCategory)
	h.respond(c, view, err)
}

// AddItem handles POST /api/v1/quote-drafts/:id/items
//
// @Summary Add a catalog item
// @Tags drafts
// @Accept json
// @Produce json
// @Security SessionToken
// @Param id path string true "Draft ID"
// @Param body body dto.AddItemRequest true "Catalog item"
// @Success 201 {object} dto.AddItemResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/quote-drafts/{id}/items [post]
func (h *DraftHandler) AddItem(c *gin.Context) {
	var req dto.AddItemRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithBindError(c, err)
		return
	}

	line, view, err := h.service.AddItem(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), req.Category, req.Name)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AddItemResponse{
		Line:  dto.ToQuoteLine(line),
		Draft: dto.ToDraftResponse(view),
	})
}

// SetQuantity handles PATCH /api/v1/quote-drafts/:id/items/:lineId
// Unknown lines leave the draft unchanged.
//
// @Summary Change a line's quantity
// @Tags drafts
// @Accept json
// @Produce json
// @Security SessionToken
// @Param id path string true "Draft ID"
// @Param lineId path string true "Line ID"
// @Param body body dto.SetQuantityRequest true "Quantity"
// @Success 200 {object} dto.DraftResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/quote-drafts/{id}/items/{lineId} [patch]
func (h *DraftHandler) SetQuantity(c *gin.Context) {
	var req dto.SetQuantityRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithBindError(c, err)
		return
	}

	view, err := h.service.SetQuantity(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), c.Param("lineId"), req.Quantity)
	h.respond(c, view, err)
}

// RemoveItem handles DELETE /api/v1/quote-drafts/:id/items/:lineId
//
// @Summary Remove a line
// @Tags drafts
// @Produce json
// @Security SessionToken
// @Param id path string true "Draft ID"
// @Param lineId path string true "Line ID"
// @Success 200 {object} dto.DraftResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/quote-drafts/{id}/items/{lineId} [delete]
func (h *DraftHandler) RemoveItem(c *gin.Context) {
	view, err := h.service.RemoveItem(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), c.Param("lineId"))
	h.respond(c, view, err)
}

// Discard handles DELETE /api/v1/quote-drafts/:id
//
// @Summary Discard a draft
// @Tags drafts
// @Security SessionToken
// @Param id path string true "Draft ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/v1/quote-drafts/{id} [delete]
func (h *DraftHandler) Discard(c *gin.Context) {
	if err := h.service.Discard(c.Request.Context(), middleware.GetUserID(c), c.Param("id")); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Submit handles POST /api/v1/quote-drafts/:id/submit
// A failed submission keeps the draft editable.
//
// @Summary Submit a draft as a quote
// @Tags drafts
// @Accept json
// @Produce json
// @Security SessionToken
// @Param id path string true "Draft ID"
// @Param body body dto.SubmitDraftRequest true "Client and service"
// @Success 201 {object} dto.SubmitQuoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/v1/quote-drafts/{id}/submit [post]
func (h *DraftHandler) Submit(c *gin.Context) {
	var req dto.SubmitDraftRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithBindError(c, err)
		return
	}

	created, err := h.service.Submit(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), req.ToDraftSubmission())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToSubmitQuoteResponse(created))
}

func (h *DraftHandler) respond(c *gin.Context, view *app.DraftView, err error) {
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDraftResponse(view))
}

// RegisterDraftRoutes registers draft routes on the given router group.
func (h *DraftHandler) RegisterDraftRoutes(rg *gin.RouterGroup) {
	drafts := rg.Group("/quote-drafts")
	drafts.POST("", h.Create)
	drafts.GET("/:id", h.Get)
	drafts.DELETE("/:id", h.Discard)
	drafts.PUT("/:id/age-category", h.SetAgeCategory)
	drafts.POST("/:id/items", h.AddItem)
	drafts.PATCH("/:id/items/:lineId", h.SetQuantity)
	drafts.DELETE("/:id/items/:lineId", h.RemoveItem)
	drafts.POST("/:id/submit", h.Submit)
}
