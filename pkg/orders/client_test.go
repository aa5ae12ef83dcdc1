package orders

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPayload() *Payload {
	return &Payload{
		Slug:           "pizzaria-demo",
		OrderCode:      "PED-1736935200",
		CustomerName:   "João Souza",
		CustomerPhone:  "11912345678",
		DeliveryMethod: "delivery",
		PaymentMethod:  "pix",
		Items: []Item{
			{DishID: 1, Name: "Pizza Calabresa", Quantity: 1, UnitPrice: 42.90, TotalPrice: 42.90},
		},
		Subtotal:    42.90,
		DeliveryFee: 8.00,
		Total:       50.90,
		Status:      "new",
	}
}

func TestCreateOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/orders", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var got Payload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "pizzaria-demo", got.Slug)
		assert.Equal(t, "new", got.Status)
		require.Len(t, got.Items, 1)

		resp := CreateOrderResponse{Success: true}
		resp.Data.OrderID = "ord_123"
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	resp, err := client.CreateOrder(context.Background(), testPayload())

	require.NoError(t, err)
	assert.Equal(t, "ord_123", resp.Data.OrderID)
}

func TestCreateOrderBackendRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(CreateOrderResponse{Success: false, Message: "store closed"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.CreateOrder(context.Background(), testPayload())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "store closed")
}

func TestCreateOrderOmitsAuthHeaderWithoutToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(CreateOrderResponse{Success: true})
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.CreateOrder(context.Background(), testPayload())

	require.NoError(t, err)
}
