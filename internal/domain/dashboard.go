package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Icon is a presentation tag for a quick stat. Unknown names resolve to IconSparkles.
type Icon string

// Known icons.
const (
	IconTrendingUp Icon = "TrendingUp"
	IconScissors   Icon = "Scissors"
	IconHeart      Icon = "Heart"
	IconSparkles   Icon = "Sparkles"
)

// ParseIcon resolves a stored icon name, falling back to IconSparkles.
func ParseIcon(name string) Icon {
	switch Icon(name) {
	case IconTrendingUp, IconScissors, IconHeart, IconSparkles:
		return Icon(name)
	default:
		return IconSparkles
	}
}

// StatusTone is the badge colour family for a status.
type StatusTone string

// Badge tones.
const (
	ToneWarning StatusTone = "warning"
	ToneSuccess StatusTone = "success"
	ToneInfo    StatusTone = "info"
	ToneAccent  StatusTone = "accent"
	ToneNeutral StatusTone = "neutral"
)

// ToneForStatus maps a quote or order status to its badge tone.
func ToneForStatus(status string) StatusTone {
	switch status {
	case StatusPending:
		return ToneWarning
	case StatusApproved:
		return ToneSuccess
	case StatusInProduction, "Em Produção", StatusAwaitingFitting:
		return ToneInfo
	case StatusFinished:
		return ToneAccent
	default:
		return ToneNeutral
	}
}

// Dashboard labels and placeholders.
const (
	StatMonthlyRevenue = "Receita do Mês"
	StatActiveOrders   = "Pedidos Ativos"
	StatHappyClients   = "Clientes Felizes"

	FallbackClientName  = "N/A"
	FallbackQuoteTitle  = "Orçamento Personalizado"
	FallbackServiceName = "Serviço Personalizado"
)

// QuickStat is one headline figure on the home screen.
type QuickStat struct {
	Label string
	Value string
	Icon  Icon
}

// HomeSummary is the home screen: recent orders and quick stats.
type HomeSummary struct {
	RecentOrders []Order
	QuickStats   []QuickStat
}

// RecentQuote is a display row for the dashboard's quote table.
type RecentQuote struct {
	ID      string
	Client  string
	Service string
	Value   string
	Amount  decimal.Decimal
	Status  string
	Tone    StatusTone
	Date    string
	Created time.Time
}

// AgendaEntry is an order due today.
type AgendaEntry struct {
	ID      string
	Client  string
	Service string
	Time    string
}

// DashboardSummary is the dashboard screen.
type DashboardSummary struct {
	RecentQuotes []RecentQuote
	Agenda       []AgendaEntry
}

// FormatDateBR renders a date as dd/mm/yyyy.
func FormatDateBR(t time.Time) string {
	return t.Format("02/01/2006")
}

// FormatTimeBR renders a time of day as HH:MM.
func FormatTimeBR(t time.Time) string {
	return t.Format("15:04")
}
