package inventree

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, *Client) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/part/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Token secret", r.Header.Get("Authorization"))
		parts := []Part{
			{PK: 1, Name: "Oil Filter", PricingMin: 4.5},
			{PK: 2, Name: "filter", PricingMin: 2.0},
		}
		require.NoError(t, json.NewEncoder(w).Encode(parts))
	})
	mux.HandleFunc("/api/stock/", func(w http.ResponseWriter, r *http.Request) {
		var stock []map[string]any
		switch r.URL.Query().Get("part") {
		case "1":
			stock = []map[string]any{
				{"pk": 11, "quantity": 3.0, "location_name": "Chennai Depot", "purchase_price": "4.50"},
			}
		case "2":
			stock = []map[string]any{
				{"pk": 21, "quantity": 1.0, "location_detail": map[string]any{"name": "Delhi"}, "purchase_price": nil},
			}
		}
		require.NoError(t, json.NewEncoder(w).Encode(stock))
	})
	mux.HandleFunc("/api/order/so/", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.EqualValues(t, 1, payload["customer"])
		w.WriteHeader(http.StatusCreated)
		require.NoError(t, json.NewEncoder(w).Encode(SalesOrder{PK: 87, Reference: "SO-0087"}))
	})
	mux.HandleFunc("/api/order/so-line/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("/order/sales-order/87/export/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "csv", r.URL.Query().Get("format"))
		_, _ = w.Write([]byte("line,part,quantity\n1,Oil Filter,2\n"))
	})
	mux.HandleFunc("/api/company/5/", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(Company{PK: 5, Name: "Acme", Email: "parts@acme.example"}))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{BaseURL: srv.URL, Token: "secret"})
	require.NoError(t, err)
	return srv, client
}

func TestSearchPartExactBeforeSubstring(t *testing.T) {
	_, client := newTestServer(t)
	p, err := client.SearchPart(context.Background(), "filter")
	require.NoError(t, err)
	require.NotNil(t, p)
	// "filter" matches part 2 exactly even though part 1 contains it
	assert.Equal(t, 2, p.PK)

	p, err = client.SearchPart(context.Background(), "oil filter")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 1, p.PK)
}

func TestPickCandidatesLocationFilter(t *testing.T) {
	_, client := newTestServer(t)
	parts, err := client.SearchParts(context.Background(), "filter")
	require.NoError(t, err)
	require.Len(t, parts, 2)

	cands, err := client.PickCandidates(context.Background(), parts, "chennai")
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Equal(t, 1, cands[0].Part.PK)
	assert.Equal(t, 3.0, cands[0].Quantity())

	all, err := client.PickCandidates(context.Background(), parts, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	best := Cheapest(all)
	assert.Equal(t, 2, best.Part.PK)
}

func TestCreateOrderAndExport(t *testing.T) {
	_, client := newTestServer(t)
	so, err := client.CreateSalesOrder(context.Background(), "repair run", "2026-09-05")
	require.NoError(t, err)
	assert.Equal(t, 87, so.PK)

	require.NoError(t, client.AddLineItem(context.Background(), so.PK, 1, 2))

	csvBytes, err := client.OrderCSV(context.Background(), so.PK)
	require.NoError(t, err)
	assert.Contains(t, string(csvBytes), "Oil Filter")

	email, err := client.CompanyEmail(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "parts@acme.example", email)
}

func TestAPIErrorSurfacesStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"bad request"}`))
	}))
	t.Cleanup(srv.Close)
	client, err := NewClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = client.SearchParts(context.Background(), "x")
	require.Error(t, err)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Contains(t, apiErr.Body, "bad request")
}

func TestConfigValidation(t *testing.T) {
	_, err := NewClient(Config{})
	require.Error(t, err)
}
