package monei

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/paymentrails/monei-sync/internal/domain"
	"github.com/paymentrails/monei-sync/internal/ports"
)

// KeyFunc resolves the API key for one request. Backing the client with a
// settings lookup means a rotated key takes effect immediately, without a
// client rebuild.
type KeyFunc func(ctx context.Context) (string, error)

type ClientConfig struct {
	Endpoint   string
	UserAgent  string
	KeyFunc    KeyFunc
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client executes GraphQL documents against the MONEI API and implements
// ports.MoneiAPI. Failures map onto the domain sentinels: network faults
// become ErrTransport, credential rejections ErrAuth, and GraphQL error
// payloads ErrRemote with the remote message preserved.
type Client struct {
	endpoint   string
	userAgent  string
	keyFn      KeyFunc
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(cfg ClientConfig) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "MONEI/OrderSync/1.0.0"
	}
	return &Client{
		endpoint:   strings.TrimRight(cfg.Endpoint, "/"),
		userAgent:  userAgent,
		keyFn:      cfg.KeyFunc,
		httpClient: httpClient,
		logger:     logger.With("module", "monei", "layer", "adapter"),
	}
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code"`
	} `json:"extensions"`
}

type graphqlResponse struct {
	Data   map[string]any `json:"data"`
	Errors []graphqlError `json:"errors"`
}

func (c *Client) execute(ctx context.Context, document string, variables map[string]any) (map[string]any, error) {
	key, err := c.keyFn(ctx)
	if err != nil {
		return nil, err
	}
	if key == "" {
		return nil, fmt.Errorf("%w: no api key configured", domain.ErrAuth)
	}

	body, err := json.Marshal(graphqlRequest{Query: document, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("encode graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+key)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: remote rejected credentials (status %d)", domain.ErrAuth, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: status=%d body=%s", domain.ErrRemote, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var decoded graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrRemote, err)
	}
	if len(decoded.Errors) > 0 {
		first := decoded.Errors[0]
		if isAuthCode(first) {
			return nil, fmt.Errorf("%w: %s", domain.ErrAuth, first.Message)
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrRemote, first.Message)
	}
	return decoded.Data, nil
}

func isAuthCode(gqlErr graphqlError) bool {
	switch gqlErr.Extensions.Code {
	case "UNAUTHENTICATED", "FORBIDDEN":
		return true
	}
	return strings.Contains(strings.ToLower(gqlErr.Message), "unauthorized")
}

func (c *Client) AccountAPIKey(ctx context.Context) (string, error) {
	data, err := c.execute(ctx, accountQuery, nil)
	if err != nil {
		return "", err
	}
	account, ok := data["account"].(map[string]any)
	if !ok {
		return "", fmt.Errorf("%w: account query returned no account", domain.ErrRemote)
	}
	key, _ := account["apiKey"].(string)
	return key, nil
}

func (c *Client) ListStores(ctx context.Context) (map[string]string, error) {
	data, err := c.execute(ctx, storesQuery, nil)
	if err != nil {
		return nil, err
	}

	stores := make(map[string]string)
	container, _ := data["stores"].(map[string]any)
	items, _ := container["items"].([]any)
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		id, _ := entry["id"].(string)
		name, _ := entry["name"].(string)
		if id != "" {
			stores[id] = name
		}
	}
	return stores, nil
}

func (c *Client) ListCharges(ctx context.Context, filter ports.ChargeListFilter) (ports.ChargePage, error) {
	variables := map[string]any{
		"size": filter.Size,
		"from": filter.From,
	}
	if filter.CreatedFrom != nil || filter.CreatedTo != nil {
		var bounds []int64
		if filter.CreatedFrom != nil {
			bounds = append(bounds, filter.CreatedFrom.Unix())
		}
		if filter.CreatedTo != nil {
			bounds = append(bounds, filter.CreatedTo.Unix())
		}
		variables["filter"] = map[string]any{
			"createdAt": map[string]any{"range": bounds},
		}
	}

	data, err := c.execute(ctx, chargesQuery, variables)
	if err != nil {
		return ports.ChargePage{}, err
	}

	container, ok := data["charges"].(map[string]any)
	if !ok {
		return ports.ChargePage{}, fmt.Errorf("%w: charges query returned no result set", domain.ErrRemote)
	}

	page := ports.ChargePage{}
	if total, ok := container["total"].(float64); ok {
		page.Total = int(total)
	}
	items, _ := container["items"].([]any)
	page.Items = make([]ports.RawCharge, 0, len(items))
	for _, item := range items {
		if raw, ok := item.(map[string]any); ok {
			page.Items = append(page.Items, raw)
		}
	}
	return page, nil
}

func (c *Client) GetCharge(ctx context.Context, id string) (ports.RawCharge, error) {
	data, err := c.execute(ctx, chargeQuery, map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	raw, ok := data["charge"].(map[string]any)
	if !ok || raw == nil {
		return nil, fmt.Errorf("%w: charge %s", domain.ErrNotFound, id)
	}
	return raw, nil
}

func (c *Client) ListPaymentMethods(ctx context.Context) ([]domain.PaymentMethodOption, error) {
	data, err := c.execute(ctx, paymentMethodsQuery, nil)
	if err != nil {
		return nil, err
	}

	items, _ := data["availablePaymentMethods"].([]any)
	options := make([]domain.PaymentMethodOption, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		code, _ := entry["paymentMethod"].(string)
		if code == "" {
			continue
		}
		configured, _ := entry["configured"].(bool)
		enabled, _ := entry["enabled"].(bool)
		options = append(options, domain.PaymentMethodOption{
			Code:       code,
			Configured: configured,
			Enabled:    enabled,
		})
	}
	return options, nil
}

func (c *Client) CapturePayment(ctx context.Context, paymentID string, amountMinor int64) (ports.RawCharge, error) {
	input := map[string]any{"paymentId": paymentID}
	if amountMinor > 0 {
		input["amount"] = amountMinor
	}
	return c.mutate(ctx, capturePaymentMutation, "capturePayment", input)
}

func (c *Client) RefundPayment(ctx context.Context, paymentID string, amountMinor int64, reason string) (ports.RawCharge, error) {
	input := map[string]any{
		"paymentId": paymentID,
		"amount":    amountMinor,
	}
	if reason != "" {
		input["refundReason"] = reason
	}
	return c.mutate(ctx, refundPaymentMutation, "refundPayment", input)
}

func (c *Client) CancelPayment(ctx context.Context, paymentID string, reason string) (ports.RawCharge, error) {
	input := map[string]any{"paymentId": paymentID}
	if reason != "" {
		input["cancellationReason"] = reason
	}
	return c.mutate(ctx, cancelPaymentMutation, "cancelPayment", input)
}

func (c *Client) CreatePayment(ctx context.Context, in ports.CreatePaymentInput) (ports.RawCharge, error) {
	input := map[string]any{
		"amount":   in.AmountMinor,
		"currency": in.Currency,
	}
	if in.OrderID != "" {
		input["orderId"] = in.OrderID
	}
	if in.Description != "" {
		input["description"] = in.Description
	}
	if in.ExpireAt != nil {
		input["expireAt"] = in.ExpireAt.Unix()
	}
	if len(in.AllowedMethods) > 0 {
		input["allowedPaymentMethods"] = in.AllowedMethods
	}
	if in.TransactionType != "" {
		input["transactionType"] = in.TransactionType
	}
	if customer := customerInput(in); len(customer) > 0 {
		input["customer"] = customer
	}
	if details := contactInput(in.Billing); details != nil {
		input["billingDetails"] = details
	}
	if details := contactInput(in.Shipping); details != nil {
		input["shippingDetails"] = details
	}
	return c.mutate(ctx, createPaymentMutation, "createPayment", input)
}

func (c *Client) SendPaymentLink(ctx context.Context, in ports.SendLinkInput) error {
	input := map[string]any{
		"paymentId": in.PaymentID,
		"channel":   in.Channel,
		"language":  in.Language,
	}
	if in.Email != "" {
		input["customerEmail"] = in.Email
	}
	if in.Phone != "" {
		input["customerPhone"] = in.Phone
	}
	_, err := c.mutate(ctx, sendPaymentLinkMutation, "sendPaymentLink", input)
	return err
}

// mutate executes a mutation and unwraps its single root field.
func (c *Client) mutate(ctx context.Context, document, rootField string, input map[string]any) (ports.RawCharge, error) {
	data, err := c.execute(ctx, document, map[string]any{"input": input})
	if err != nil {
		return nil, err
	}
	raw, ok := data[rootField].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s returned no payload", domain.ErrRemote, rootField)
	}
	return raw, nil
}

func customerInput(in ports.CreatePaymentInput) map[string]any {
	customer := map[string]any{}
	if in.CustomerName != "" {
		customer["name"] = in.CustomerName
	}
	if in.CustomerEmail != "" {
		customer["email"] = in.CustomerEmail
	}
	if in.CustomerPhone != "" {
		customer["phone"] = in.CustomerPhone
	}
	return customer
}

func contactInput(details *domain.ContactDetails) map[string]any {
	if details == nil {
		return nil
	}
	out := map[string]any{}
	if details.Name != "" {
		out["name"] = details.Name
	}
	if details.Email != "" {
		out["email"] = details.Email
	}
	if details.Phone != "" {
		out["phone"] = details.Phone
	}
	if details.Company != "" {
		out["company"] = details.Company
	}
	if details.TaxID != "" {
		out["taxId"] = details.TaxID
	}
	address := map[string]any{}
	if details.Street != "" {
		address["line1"] = details.Street
	}
	if details.Street2 != "" {
		address["line2"] = details.Street2
	}
	if details.City != "" {
		address["city"] = details.City
	}
	if details.State != "" {
		address["state"] = details.State
	}
	if details.Zip != "" {
		address["zip"] = details.Zip
	}
	if details.Country != "" {
		address["country"] = details.Country
	}
	if len(address) > 0 {
		out["address"] = address
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
