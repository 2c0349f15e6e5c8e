package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote and order statuses as the studio writes them.
const (
	StatusPending         = "Pendente"
	StatusApproved        = "Aprovado"
	StatusInProduction    = "Em produção"
	StatusAwaitingFitting = "Aguardando prova"
	StatusFinished        = "Finalizado"
)

// MaxLineQuantity is the largest quantity a quote line may carry.
const MaxLineQuantity = 10_000

// MaxAmount is the largest value a stored money column (numeric(12,2)) holds.
var MaxAmount = decimal.RequireFromString("9999999999.99")

// ActiveOrderStatuses are the order statuses counted as work in progress.
func ActiveOrderStatuses() []string {
	return []string{StatusInProduction, StatusAwaitingFitting}
}

// User is an account owning clients, quotes and orders.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	PasswordSalt string
	CreatedAt    time.Time
}

// Client is a customer of the studio, unique per user by email.
type Client struct {
	ID        string
	UserID    string
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
}

// Quote is a submitted quote.
type Quote struct {
	ID          string
	UserID      string
	ClientID    string
	ClientName  string
	ClientEmail string
	Status      string
	TotalValue  decimal.Decimal
	Description string
	ServiceType ServiceType
	AgeCategory string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Items       []QuoteItem
}

// QuoteItem is a persisted quote line.
type QuoteItem struct {
	ID        string
	QuoteID   string
	ProductID string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}

// Order is a confirmed piece of work with a due date.
type Order struct {
	ID          string
	UserID      string
	ClientID    string
	ClientName  string
	ProductID   string
	ProductName string
	Status      string
	DueDate     time.Time
	Value       decimal.Decimal
	Priority    string
	AgeCategory string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ClientIdentity identifies the customer a quote is for.
type ClientIdentity struct {
	Name  string
	Email string
	Phone string
}

// SubmittedLine is a line as handed to the submission boundary.
type SubmittedLine struct {
	Category  string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}

// QuoteSubmission is everything needed to persist a quote.
type QuoteSubmission struct {
	UserID      string
	Client      ClientIdentity
	AgeCategory string
	ServiceType ServiceType
	Description string
	Lines       []SubmittedLine
	TotalValue  decimal.Decimal
}

// SubmissionFromWorkingQuote freezes a working quote into a submission,
// using total as the declared value.
func SubmissionFromWorkingQuote(
	userID string,
	client ClientIdentity,
	serviceType ServiceType,
	description string,
	q *WorkingQuote,
	total decimal.Decimal,
) QuoteSubmission {
	lines := make([]SubmittedLine, 0, q.Len())
	for _, l := range q.Lines() {
		lines = append(lines, SubmittedLine{
			Category:  l.Category,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Total:     l.Total,
		})
	}

	return QuoteSubmission{
		UserID:      userID,
		Client:      client,
		AgeCategory: q.AgeCategory(),
		ServiceType: serviceType,
		Description: description,
		Lines:       lines,
		TotalValue:  total,
	}
}

// QuoteCreated is the outcome of a successful submission.
type QuoteCreated struct {
	QuoteID  string
	ClientID string
	Total    decimal.Decimal
	Message  string
}

// Session binds an opaque token to a user.
type Session struct {
	Token     string
	UserID    string
	Email     string
	ExpiresAt time.Time
}
