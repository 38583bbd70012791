package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hudada-hub/duanju-admin-sub001/internal/apperrors"
	"github.com/hudada-hub/duanju-admin-sub001/internal/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type TransferRequest struct {
	Reference   string
	Amount      decimal.Decimal
	AccountType string
	AccountInfo string
}

type TransferResult struct {
	OrderID      string          `json:"order_id"`
	Status       TradeStatus     `json:"status"`
	Fee          decimal.Decimal `json:"fee"`
	ActualAmount decimal.Decimal `json:"actual_amount"`
}

type ClientInterface interface {
	Transfer(ctx context.Context, req TransferRequest) (*TransferResult, error)
	QueryTransfer(ctx context.Context, reference string) (*TransferResult, error)
}

type Client struct {
	baseURL    string
	appID      string
	httpClient *http.Client
}

func NewClient(baseURL, appID string) *Client {
	return &Client{
		baseURL:    baseURL,
		appID:      appID,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Transfer submits a disbursement to the gateway. A 4xx answer is a business
// rejection and comes back as ErrGatewayRejected; transport errors and 5xx
// answers are returned as-is so the caller can treat them as transient.
func (c *Client) Transfer(ctx context.Context, req TransferRequest) (*TransferResult, error) {
	form := url.Values{}
	form.Set("app_id", c.appID)
	form.Set("out_biz_no", req.Reference)
	form.Set("amount", req.Amount.String())
	form.Set("account_type", req.AccountType)
	form.Set("account_info", req.AccountInfo)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/transfer", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest && resp.StatusCode < http.StatusInternalServerError {
		return nil, fmt.Errorf("%w: status %d", apperrors.ErrGatewayRejected, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected gateway status: %d", resp.StatusCode)
	}

	var result TransferResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	if result.OrderID == "" {
		return nil, fmt.Errorf("%w: empty order id", apperrors.ErrGatewayRejected)
	}

	return &result, nil
}

// QueryTransfer asks the gateway for the ground-truth state of a transfer.
// A 204 means the gateway is still processing and yields (nil, nil).
func (c *Client) QueryTransfer(ctx context.Context, reference string) (*TransferResult, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/api/transfer?out_biz_no=%s", c.baseURL, url.QueryEscape(reference)), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp.Body)

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected gateway status: %d", resp.StatusCode)
	}

	var result TransferResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return &result, nil
}

func closeBody(body io.ReadCloser) {
	if err := body.Close(); err != nil {
		logger.Log.Error("failed to close gateway response body", zap.Error(err))
	}
}
