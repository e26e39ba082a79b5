package s4

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gzmilgar/JumboOCR/internal/adapters/clients"
	"github.com/gzmilgar/JumboOCR/internal/domain"
)

func testGateway(t *testing.T, handler http.HandlerFunc) *Gateway {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := clients.New(&clients.Config{
		BaseURL:     server.URL,
		ServiceName: "s4hana-test",
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	return NewGateway(GatewayConfig{
		Client: client,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func testPayload() *domain.SalesOrderPayload {
	return &domain.SalesOrderPayload{
		SalesOrderType: "1SDS",
		SoldToParty:    "C-1",
		Items: []domain.SalesOrderItem{
			{SalesOrderItem: "1", Material: "M-1", RequestedQuantity: "2", RequestedQuantityUnit: "EA"},
		},
	}
}

func TestGateway_CreateSalesOrder_Success(t *testing.T) {
	var received domain.SalesOrderPayload

	gateway := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, salesOrderPath, r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"d":{"SalesOrder":"SO-100"}}`))
	})

	orderNumber, err := gateway.CreateSalesOrder(context.Background(), testPayload())

	require.NoError(t, err)
	assert.Equal(t, "SO-100", orderNumber)
	assert.Equal(t, "C-1", received.SoldToParty)
	require.Len(t, received.Items, 1)
	assert.Equal(t, "1", received.Items[0].SalesOrderItem)
}

func TestGateway_CreateSalesOrder_ErrorEnvelope(t *testing.T) {
	gateway := testGateway(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":{"value":"Sold-to party 0000 not maintained"}}}`))
	})

	_, err := gateway.CreateSalesOrder(context.Background(), testPayload())

	require.Error(t, err)
	assert.True(t, domain.IsGateway(err))
	assert.Contains(t, err.Error(), "Sold-to party 0000 not maintained")
}

func TestGateway_CreateSalesOrder_MissingOrderNumberIsFailure(t *testing.T) {
	gateway := testGateway(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"d":{}}`))
	})

	_, err := gateway.CreateSalesOrder(context.Background(), testPayload())

	require.Error(t, err)
	assert.True(t, domain.IsGateway(err))
	assert.Contains(t, err.Error(), "no sales order number")
}

func TestGateway_CreateSalesOrder_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // connection refused from here on

	client, err := clients.New(&clients.Config{
		BaseURL:     server.URL,
		ServiceName: "s4hana-test",
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	gateway := NewGateway(GatewayConfig{Client: client})

	_, err = gateway.CreateSalesOrder(context.Background(), testPayload())

	require.Error(t, err)
	assert.True(t, domain.IsGateway(err))
}

func TestGateway_LookupProducts(t *testing.T) {
	gateway := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, productPath, r.URL.Path)

		filter := r.URL.Query().Get("$filter")
		assert.Equal(t,
			"ProductStandardID eq '111' or ProductStandardID eq '222' or ProductStandardID eq '333'",
			filter)

		_, _ = w.Write([]byte(`{"d":{"results":[
			{"Product":"P-1","ProductStandardID":"111"},
			{"Product":"P-2","ProductStandardID":"222"}
		]}}`))
	})

	products, err := gateway.LookupProducts(
		context.Background(), []string{"111", "222", "333"}, domain.LookupTypeEAN)

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"111": "P-1", "222": "P-2"}, products)
}

func TestGateway_LookupProducts_ModelUsesDescriptionField(t *testing.T) {
	gateway := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		filter := r.URL.Query().Get("$filter")
		assert.Equal(t, "ProductDescription eq 'X500'", filter)

		_, _ = w.Write([]byte(`{"d":{"results":[
			{"Product":"P-9","ProductDescription":"X500"}
		]}}`))
	})

	products, err := gateway.LookupProducts(
		context.Background(), []string{"X500"}, domain.LookupTypeModel)

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"X500": "P-9"}, products)
}

func TestGateway_LookupProducts_EscapesQuotes(t *testing.T) {
	gateway := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ProductStandardID eq 'a''b'", r.URL.Query().Get("$filter"))
		_, _ = w.Write([]byte(`{"d":{"results":[]}}`))
	})

	products, err := gateway.LookupProducts(
		context.Background(), []string{"a'b"}, domain.LookupTypeEAN)

	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestGateway_LookupProducts_ServerError(t *testing.T) {
	gateway := testGateway(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":{"message":{"value":"backend down"}}}`))
	})

	_, err := gateway.LookupProducts(context.Background(), []string{"111"}, domain.LookupTypeEAN)

	require.Error(t, err)
	assert.True(t, domain.IsGateway(err))
	assert.Contains(t, err.Error(), "backend down")
}

func TestGateway_Check(t *testing.T) {
	gateway := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, metadataPath, r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})

	assert.NoError(t, gateway.Check(context.Background()))
	assert.Equal(t, "s4hana", gateway.Name())
}
