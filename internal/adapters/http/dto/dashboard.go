package dto

import (
	"time"

	"github.com/atelier-studio/atelier-service/internal/domain"
)

// OrderResponse is an order card on the home screen.
type OrderResponse struct {
	ID          string    `json:"id"`
	ClientName  string    `json:"clientName"`
	ProductName string    `json:"productName"`
	Status      string    `json:"status"`
	Tone        string    `json:"tone"`
	DueDate     time.Time `json:"dueDate"`
	Value       Money     `json:"value"`
	Priority    string    `json:"priority"`
	AgeCategory string    `json:"ageCategory,omitempty"`
}

// QuickStatResponse is a headline figure.
type QuickStatResponse struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Icon  string `json:"icon"`
}

// HomeResponse is the home screen.
type HomeResponse struct {
	RecentOrders []OrderResponse     `json:"recentOrders"`
	QuickStats   []QuickStatResponse `json:"quickStats"`
}

// RecentQuoteResponse is a row of the dashboard quote table.
type RecentQuoteResponse struct {
	ID      string `json:"id"`
	Client  string `json:"client"`
	Service string `json:"service"`
	Value   string `json:"value"`
	Status  string `json:"status"`
	Tone    string `json:"tone"`
	Date    string `json:"date"`
}

// AgendaEntryResponse is an order due today.
type AgendaEntryResponse struct {
	ID      string `json:"id"`
	Client  string `json:"client"`
	Service string `json:"service"`
	Time    string `json:"time"`
}

// DashboardResponse is the dashboard screen.
type DashboardResponse struct {
	RecentQuotes []RecentQuoteResponse `json:"recentQuotes"`
	Agenda       []AgendaEntryResponse `json:"agenda"`
}

// ToHomeResponse converts the home summary.
func ToHomeResponse(h *domain.HomeSummary) HomeResponse {
	orders := make([]OrderResponse, len(h.RecentOrders))
	for i, o := range h.RecentOrders {
		orders[i] = OrderResponse{
			ID:          o.ID,
			ClientName:  orDefault(o.ClientName, domain.FallbackClientName),
			ProductName: orDefault(o.ProductName, domain.FallbackServiceName),
			Status:      o.Status,
			Tone:        string(domain.ToneForStatus(o.Status)),
			DueDate:     o.DueDate,
			Value:       NewMoney(o.Value),
			Priority:    o.Priority,
			AgeCategory: o.AgeCategory,
		}
	}

	stats := make([]QuickStatResponse, len(h.QuickStats))
	for i, s := range h.QuickStats {
		stats[i] = QuickStatResponse{Label: s.Label, Value: s.Value, Icon: string(s.Icon)}
	}

	return HomeResponse{RecentOrders: orders, QuickStats: stats}
}

// ToDashboardResponse converts the dashboard summary.
func ToDashboardResponse(d *domain.DashboardSummary) DashboardResponse {
	quotes := make([]RecentQuoteResponse, len(d.RecentQuotes))
	for i, q := range d.RecentQuotes {
		quotes[i] = RecentQuoteResponse{
			ID:      q.ID,
			Client:  q.Client,
			Service: q.Service,
			Value:   q.Value,
			Status:  q.Status,
			Tone:    string(q.Tone),
			Date:    q.Date,
		}
	}

	agenda := make([]AgendaEntryResponse, len(d.Agenda))
	for i, a := range d.Agenda {
		agenda[i] = AgendaEntryResponse{ID: a.ID, Client: a.Client, Service: a.Service, Time: a.Time}
	}

	return DashboardResponse{RecentQuotes: quotes, Agenda: agenda}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}

	return s
}
