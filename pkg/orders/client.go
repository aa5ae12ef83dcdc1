package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the external order-creation backend. One synchronous call
// per submission; no automatic retry.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// Item is one cart line in the submission payload.
type Item struct {
	DishID     uint                    `json:"dish_id"`
	Name       string                  `json:"name"`
	Quantity   int                     `json:"quantity"`
	UnitPrice  float64                 `json:"unit_price"`
	TotalPrice float64                 `json:"total_price"`
	Selections map[uint][]ItemOption   `json:"selections,omitempty"`
}

type ItemOption struct {
	OptionID uint    `json:"option_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
}

// Payload is the field-exact order document expected by the backend.
type Payload struct {
	Slug              string   `json:"slug"`
	OrderCode         string   `json:"order_code"`
	CustomerName      string   `json:"customer_name"`
	CustomerPhone     string   `json:"customer_phone"`
	CustomerEmail     string   `json:"customer_email"`
	DeliveryMethod    string   `json:"delivery_method"` // "delivery" | "pickup"
	Address           string   `json:"address"`
	AddressStreet     string   `json:"address_street"`
	AddressNumber     string   `json:"address_number"`
	AddressComplement string   `json:"address_complement"`
	Neighborhood      string   `json:"neighborhood"`
	PaymentMethod     string   `json:"payment_method"`
	NeedsChange       bool     `json:"needs_change"`
	ChangeAmount      *float64 `json:"change_amount"`
	Items             []Item   `json:"items"`
	Subtotal          float64  `json:"subtotal"`
	DeliveryFee       float64  `json:"delivery_fee"`
	Discount          float64  `json:"discount"`
	Total             float64  `json:"total"`
	Status            string   `json:"status"`
}

type CreateOrderResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		OrderID string `json:"order_id"`
	} `json:"data"`
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// CreateOrder posts the payload to the backend and returns the recorded
// order identifier.
func (c *Client) CreateOrder(ctx context.Context, payload *Payload) (*CreateOrderResponse, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order payload: %w", err)
	}

	url := fmt.Sprintf("%s/api/orders", c.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var response CreateOrderResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if resp.StatusCode >= 300 || !response.Success {
		if response.Message != "" {
			return nil, fmt.Errorf("order creation failed: %s", response.Message)
		}
		return nil, fmt.Errorf("order creation failed with status %d", resp.StatusCode)
	}

	return &response, nil
}
