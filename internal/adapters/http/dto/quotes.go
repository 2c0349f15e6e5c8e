package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/atelier-studio/atelier-service/internal/app"
	"github.com/atelier-studio/atelier-service/internal/domain"
)

// ClientRequest identifies the customer a quote is for.
type ClientRequest struct {
	Name  string `json:"name" validate:"required,notempty,max=200"`
	Email string `json:"email" validate:"required,email,max=254"`
	Phone string `json:"phone" validate:"omitempty,max=40"`
}

// LineRequest is one priced line as the quote screen shows it.
type LineRequest struct {
	Category  string          `json:"category" validate:"required"`
	Name      string          `json:"name" validate:"required"`
	Quantity  int             `json:"quantity" validate:"gte=1,lte=10000"`
	UnitPrice decimal.Decimal `json:"unitPrice" validate:"money"`
	Total     decimal.Decimal `json:"total" validate:"money"`
}

// SubmitQuoteRequest is a complete quote handed over for storage.
type SubmitQuoteRequest struct {
	Client      ClientRequest   `json:"client" validate:"required"`
	AgeCategory string          `json:"ageCategory" validate:"required"`
	ServiceType string          `json:"serviceType" validate:"required,servicetype"`
	Description string          `json:"description" validate:"max=2000"`
	Lines       []LineRequest   `json:"lines" validate:"dive"`
	TotalValue  decimal.Decimal `json:"totalValue" validate:"money"`
}

// ToSubmission converts the request for the given user.
func (r *SubmitQuoteRequest) ToSubmission(userID string) domain.QuoteSubmission {
	lines := make([]domain.SubmittedLine, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = domain.SubmittedLine{
			Category:  l.Category,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Total:     l.Total,
		}
	}

	return domain.QuoteSubmission{
		UserID:      userID,
		Client:      r.Client.toIdentity(),
		AgeCategory: r.AgeCategory,
		ServiceType: domain.ServiceType(r.ServiceType),
		Description: r.Description,
		Lines:       lines,
		TotalValue:  r.TotalValue,
	}
}

func (r ClientRequest) toIdentity() domain.ClientIdentity {
	return domain.ClientIdentity{Name: r.Name, Email: r.Email, Phone: r.Phone}
}

// SubmitQuoteResponse is the success result of a submission.
type SubmitQuoteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	QuoteID string `json:"quoteId"`
	Total   Money  `json:"total"`
}

// ToSubmitQuoteResponse converts a stored quote.
func ToSubmitQuoteResponse(created *domain.QuoteCreated) SubmitQuoteResponse {
	return SubmitQuoteResponse{
		Success: true,
		Message: created.Message,
		QuoteID: created.QuoteID,
		Total:   NewMoney(created.Total),
	}
}

// QuoteItemResponse is a stored quote line.
type QuoteItemResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice Money  `json:"unitPrice"`
	Total     Money  `json:"total"`
}

// QuoteResponse is a stored quote.
type QuoteResponse struct {
	ID          string              `json:"id"`
	ClientID    string              `json:"clientId"`
	ClientName  string              `json:"clientName"`
	ClientEmail string              `json:"clientEmail,omitempty"`
	Status      string              `json:"status"`
	TotalValue  Money               `json:"totalValue"`
	Description string              `json:"description,omitempty"`
	ServiceType string              `json:"serviceType,omitempty"`
	AgeCategory string              `json:"ageCategory,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
	Items       []QuoteItemResponse `json:"items,omitempty"`
}

// ToQuoteResponse converts a stored quote and any loaded items.
func ToQuoteResponse(q *domain.Quote) QuoteResponse {
	var items []QuoteItemResponse
	if len(q.Items) > 0 {
		items = make([]QuoteItemResponse, len(q.Items))
		for i, it := range q.Items {
			items[i] = QuoteItemResponse{
				ID:        it.ID,
				Name:      it.Name,
				Quantity:  it.Quantity,
				UnitPrice: NewMoney(it.UnitPrice),
				Total:     NewMoney(it.Total),
			}
		}
	}

	return QuoteResponse{
		ID:          q.ID,
		ClientID:    q.ClientID,
		ClientName:  q.ClientName,
		ClientEmail: q.ClientEmail,
		Status:      q.Status,
		TotalValue:  NewMoney(q.TotalValue),
		Description: q.Description,
		ServiceType: string(q.ServiceType),
		AgeCategory: q.AgeCategory,
		CreatedAt:   q.CreatedAt,
		UpdatedAt:   q.UpdatedAt,
		Items:       items,
	}
}

// QuotePosition is the keyset just after q.
func QuotePosition(q QuoteResponse) Keyset {
	return Keyset{CreatedAt: q.CreatedAt, ID: q.ID}
}

// PreviewLineRequest is a catalog selection to price.
type PreviewLineRequest struct {
	Category string `json:"category" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity"`
}

// PreviewRequest replays selections into a throwaway working quote.
type PreviewRequest struct {
	AgeCategory string               `json:"ageCategory"`
	Items       []PreviewLineRequest `json:"items" validate:"max=200,dive"`
}

// ToPreviewLines converts the request lines.
func (r *PreviewRequest) ToPreviewLines() []app.PreviewLine {
	out := make([]app.PreviewLine, len(r.Items))
	for i, l := range r.Items {
		out[i] = app.PreviewLine{Category: l.Category, Name: l.Name, Quantity: l.Quantity}
	}

	return out
}

// QuoteLineResponse is a working-quote line with its computed total.
type QuoteLineResponse struct {
	ID        string `json:"id"`
	Category  string `json:"category"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice Money  `json:"unitPrice"`
	Total     Money  `json:"total"`
}

// BreakdownResponse is every figure the quote screen shows.
type BreakdownResponse struct {
	BasePrice  Money `json:"basePrice"`
	ItemsTotal Money `json:"itemsTotal"`
	Subtotal   Money `json:"subtotal"`
	Total      Money `json:"total"`
}

// PreviewResponse is a priced working quote.
type PreviewResponse struct {
	AgeCategory string              `json:"ageCategory"`
	Lines       []QuoteLineResponse `json:"lines"`
	Breakdown   BreakdownResponse   `json:"breakdown"`
}

// ToQuoteLines converts working-quote lines.
func ToQuoteLines(lines []domain.QuoteLine) []QuoteLineResponse {
	out := make([]QuoteLineResponse, len(lines))
	for i, l := range lines {
		out[i] = ToQuoteLine(l)
	}

	return out
}

// ToQuoteLine converts one working-quote line.
func ToQuoteLine(l domain.QuoteLine) QuoteLineResponse {
	return QuoteLineResponse{
		ID:        l.ID,
		Category:  l.Category,
		Name:      l.Name,
		Quantity:  l.Quantity,
		UnitPrice: NewMoney(l.UnitPrice),
		Total:     NewMoney(l.Total),
	}
}

// ToBreakdown converts calculator figures.
func ToBreakdown(b domain.Breakdown) BreakdownResponse {
	return BreakdownResponse{
		BasePrice:  NewMoney(b.BasePrice),
		ItemsTotal: NewMoney(b.ItemsTotal),
		Subtotal:   NewMoney(b.Subtotal),
		Total:      NewMoney(b.Total),
	}
}

// ToPreviewResponse converts a preview.
func ToPreviewResponse(p *app.QuotePreview) PreviewResponse {
	return PreviewResponse{
		AgeCategory: p.AgeCategory,
		Lines:       ToQuoteLines(p.Lines),
		Breakdown:   ToBreakdown(p.Breakdown),
	}
}
