package dto

import (
	"time"

	"github.com/atelier-studio/atelier-service/internal/app"
	"github.com/atelier-studio/atelier-service/internal/domain"
)

// DraftResponse is a priced snapshot of a draft.
type DraftResponse struct {
	ID          string              `json:"id"`
	AgeCategory string              `json:"ageCategory"`
	Lines       []QuoteLineResponse `json:"lines"`
	Breakdown   BreakdownResponse   `json:"breakdown"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// AddItemResponse is the draft after an add, plus the new line.
type AddItemResponse struct {
	Line  QuoteLineResponse `json:"line"`
	Draft DraftResponse     `json:"draft"`
}

// SetAgeCategoryRequest selects the age tier. An empty code clears it.
type SetAgeCategoryRequest struct {
	AgeCategory string `json:"ageCategory"`
}

// AddItemRequest picks a catalog item by category and name.
type AddItemRequest struct {
	Category string `json:"category" validate:"required"`
	Name     string `json:"name" validate:"required"`
}

// SetQuantityRequest changes a line's quantity. Values below one become one.
type SetQuantityRequest struct {
	Quantity int `json:"quantity" validate:"lte=10000"`
}

// SubmitDraftRequest carries what a draft lacks to become a quote.
type SubmitDraftRequest struct {
	Client      ClientRequest `json:"client" validate:"required"`
	ServiceType string        `json:"serviceType" validate:"required,servicetype"`
	Description string        `json:"description" validate:"max=2000"`
}

// ToDraftSubmission converts the request.
func (r *SubmitDraftRequest) ToDraftSubmission() app.DraftSubmission {
	return app.DraftSubmission{
		Client:      r.Client.toIdentity(),
		ServiceType: domain.ServiceType(r.ServiceType),
		Description: r.Description,
	}
}

// ToDraftResponse converts a draft view.
func ToDraftResponse(v *app.DraftView) DraftResponse {
	return DraftResponse{
		ID:          v.ID,
		AgeCategory: v.AgeCategory,
		Lines:       ToQuoteLines(v.Lines),
		Breakdown:   ToBreakdown(v.Breakdown),
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}
