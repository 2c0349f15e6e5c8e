package acl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/atelier-studio/atelier-service/internal/adapters/clients"
	"github.com/atelier-studio/atelier-service/internal/domain"
	"github.com/atelier-studio/atelier-service/internal/platform/logging"
	"github.com/atelier-studio/atelier-service/internal/ports"
)

// BaserowServiceName names the Baserow integration in errors, logs and health checks.
const BaserowServiceName = "baserow"

// TokenAuth returns a clients.Config AuthFunc for a Baserow database token.
func TokenAuth(token string) func(*http.Request) {
	return func(req *http.Request) {
		req.Header.Set("Authorization", "Token "+token)
	}
}

// BaserowClientConfig configures a BaserowClient.
type BaserowClientConfig struct {
	// Client must have BaseURL pointing at the API root
	// (e.g. "https://api.baserow.io/api") and AuthFunc set to TokenAuth.
	Client *clients.Client
	Logger *slog.Logger
}

// BaserowClient implements ports.TableStore against the Baserow REST API.
type BaserowClient struct {
	BaseAdapter
	logger *slog.Logger
}

var (
	_ ports.TableStore    = (*BaserowClient)(nil)
	_ ports.HealthChecker = (*BaserowClient)(nil)
)

// NewBaserowClient creates the adapter. Panics if Client is nil.
func NewBaserowClient(cfg BaserowClientConfig) *BaserowClient {
	if cfg.Client == nil {
		panic("BaserowClient: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &BaserowClient{
		BaseAdapter: NewBaseAdapter(cfg.Client, BaserowServiceName),
		logger:      logger,
	}
}

// baserowRow is a row as Baserow returns it: user fields plus "id" and "order".
type baserowRow map[string]any

type baserowRowList struct {
	Count   int          `json:"count"`
	Next    *string      `json:"next"`
	Results []baserowRow `json:"results"`
}

func rowsPath(tableID string) string {
	return "/database/rows/table/" + url.PathEscape(tableID) + "/?user_field_names=true"
}

// translateRow drops Baserow's ordering key, which is an internal sort
// position and not row data.
func translateRow(ext *baserowRow) (ports.TableRow, error) {
	if *ext == nil {
		return nil, domain.NewValidationError("row", "empty row in response")
	}

	row := make(ports.TableRow, len(*ext))
	for k, v := range *ext {
		if k == "order" {
			continue
		}

		row[k] = v
	}

	return row, nil
}

// ListRows returns the first page of rows of a table.
func (c *BaserowClient) ListRows(ctx context.Context, tableID string) ([]ports.TableRow, error) {
	if err := ValidateRequired(tableID, "tableId"); err != nil {
		return nil, err
	}

	c.logger.Log(ctx, logging.LevelTrace, "listing rows", slog.String("table_id", tableID))

	body, err := c.Get(ctx, rowsPath(tableID), "list rows", tableID)
	if err != nil {
		return nil, err
	}

	list, err := DecodeResponse[baserowRowList](body)
	if err != nil {
		return nil, domain.NewUnavailableError(c.ServiceName(), err.Error())
	}

	if list.Next != nil {
		c.logger.DebugContext(ctx, "table has more rows than one page",
			slog.String("table_id", tableID),
			slog.Int("count", list.Count))
	}

	return TranslateSlice(list.Results, translateRow)
}

// CreateRow inserts a row and returns it as stored.
func (c *BaserowClient) CreateRow(ctx context.Context, tableID string, row ports.TableRow) (ports.TableRow, error) {
	if err := ValidateRequired(tableID, "tableId"); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(row)
	if err != nil {
		return nil, domain.NewValidationError("row", err.Error())
	}

	c.logger.Log(ctx, logging.LevelTrace, "creating row",
		slog.String("table_id", tableID),
		slog.Int("fields", len(row)))

	body, err := c.Post(ctx, rowsPath(tableID), bytes.NewReader(payload), "create row", tableID)
	if err != nil {
		return nil, err
	}

	created, err := DecodeResponse[baserowRow](body)
	if err != nil {
		return nil, domain.NewUnavailableError(c.ServiceName(), err.Error())
	}

	return translateRow(created)
}

// Name implements ports.HealthChecker.
func (c *BaserowClient) Name() string {
	return BaserowServiceName
}

// Check implements ports.HealthChecker using Baserow's health endpoint.
func (c *BaserowClient) Check(ctx context.Context) error {
	resp, err := c.Client().Get(ctx, "/_health/")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("baserow returned status %d", resp.StatusCode)
	}

	return nil
}
