package ynab

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/ynabsplit/internal/config"
	"github.com/cleared-dev/ynabsplit/internal/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := NewClient("test-token", WithBaseURL(server.URL+"/"), WithHTTPClient(server.Client()), WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	return c
}

func TestNewClient_MissingToken(t *testing.T) {
	_, err := NewClient("")
	assert.ErrorIs(t, err, config.ErrMissingToken)
}

func TestNewClient_Defaults(t *testing.T) {
	c, err := NewClient("tok")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.baseURL)
	assert.Equal(t, "tok", c.token)
}

func TestNewClient_Options(t *testing.T) {
	hc := &http.Client{}
	c, err := NewClient("tok", WithBaseURL("http://example.test/v1/"), WithHTTPClient(hc))
	require.NoError(t, err)
	assert.Equal(t, "http://example.test/v1", c.baseURL)
	assert.Same(t, hc, c.client)
}

func TestListBudgets(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/budgets", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"budgets":[
			{"id":"b1","name":"Household","last_modified_on":"2024-03-01T10:00:00+00:00",
			 "currency_format":{"iso_code":"USD","decimal_digits":2,"decimal_separator":".","symbol_first":true,"group_separator":",","currency_symbol":"$","display_symbol":true}},
			{"id":"b2","name":"Travel","last_modified_on":"2024-02-01T10:00:00+00:00","currency_format":null}
		]}}`))
	})

	budgets, err := c.ListBudgets(context.Background())
	require.NoError(t, err)
	require.Len(t, budgets, 2)

	assert.Equal(t, "b1", budgets[0].ID)
	assert.Equal(t, "Household", budgets[0].Name)
	require.NotNil(t, budgets[0].CurrencyFormat)
	assert.Equal(t, "USD", budgets[0].CurrencyFormat.ISOCode)
	assert.Equal(t, "$", budgets[0].CurrencyFormat.CurrencySymbol)
	assert.True(t, budgets[0].CurrencyFormat.SymbolFirst)
	assert.Nil(t, budgets[1].CurrencyFormat)
}

func TestListBudgets_Empty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"budgets":[]}}`))
	})

	budgets, err := c.ListBudgets(context.Background())
	require.NoError(t, err)
	assert.Empty(t, budgets)
}

func TestListAccounts(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/budgets/b1/accounts", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":{"accounts":[
			{"id":"a1","name":"Checking","type":"checking","balance":123450,"deleted":false,"closed":false},
			{"id":"a2","name":"Old","type":"savings","balance":0,"deleted":false,"closed":true}
		]}}`))
	})

	accts, err := c.ListAccounts(context.Background(), "b1")
	require.NoError(t, err)
	require.Len(t, accts, 2, "the client does not filter")

	assert.Equal(t, model.Account{ID: "a1", Name: "Checking", Type: "checking", Balance: 123450}, accts[0])
	assert.True(t, accts[1].Closed)
}

func TestCreateTransaction(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/budgets/b1/transactions", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		txn := body["transaction"]
		assert.Equal(t, "a1", txn["account_id"])
		assert.Equal(t, "Groceries+Coffee", txn["memo"])
		assert.InDelta(t, -36600, txn["amount"], 0)
		assert.Equal(t, "2024-01-05", txn["date"])
		assert.Equal(t, "uncleared", txn["cleared"])
		assert.Equal(t, false, txn["approved"])

		subs := txn["subtransactions"].([]any)
		require.Len(t, subs, 2)
		first := subs[0].(map[string]any)
		assert.Equal(t, "2024-01-01 - ", first["memo"])
		assert.InDelta(t, -4500, first["amount"], 0)
		assert.Contains(t, first, "category_id")
		assert.Nil(t, first["category_id"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"transaction_ids":["t1"],"server_knowledge":42,
			"transaction":{"id":"t1","subtransactions":[{"id":"s1"},{"id":"s2"}]}}}`))
	})

	txn := model.ParentTransaction{
		AccountID: "a1",
		Memo:      "Groceries+Coffee",
		Amount:    -36600,
		Date:      "2024-01-05",
		Cleared:   model.ClearedUncleared,
		Subtransactions: []model.Subtransaction{
			{Memo: "2024-01-01 - ", Amount: -4500},
			{Memo: "2024-01-02 - Weekly", Amount: -32100},
		},
	}
	receipt, err := c.CreateTransaction(context.Background(), "b1", txn)
	require.NoError(t, err)

	assert.Equal(t, Receipt{TransactionID: "t1", ServerKnowledge: 42, Subtransactions: 2}, receipt)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCreateTransaction_ErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"id":"400","name":"bad_request","detail":"amount does not match subtransactions"}}`))
	})

	_, err := c.CreateTransaction(context.Background(), "b1", model.ParentTransaction{AccountID: "a1"})
	require.Error(t, err)

	var rerr *RemoteError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, "create transaction", rerr.Op)
	assert.Equal(t, http.StatusBadRequest, rerr.StatusCode)
	assert.Equal(t, "400", rerr.ID)
	assert.Equal(t, "bad_request", rerr.Name)
	assert.Equal(t, "amount does not match subtransactions", rerr.Detail)
	assert.Equal(t, "create transaction: status 400 bad_request (400): amount does not match subtransactions", err.Error())
	assert.Equal(t, int32(1), calls.Load())
}

func TestRemoteError_Unauthorized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"id":"401","name":"unauthorized","detail":"Unauthorized"}}`))
	})

	_, err := c.ListBudgets(context.Background())
	var rerr *RemoteError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, http.StatusUnauthorized, rerr.StatusCode)
	assert.NotContains(t, err.Error(), "test-token")
}

func TestRemoteError_PlainBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.ListAccounts(context.Background(), "b1")
	var rerr *RemoteError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, http.StatusBadGateway, rerr.StatusCode)
	assert.Equal(t, "Bad Gateway", rerr.Detail)
}

func TestRemoteError_BadJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":`))
	})

	_, err := c.ListBudgets(context.Background())
	var rerr *RemoteError
	require.True(t, errors.As(err, &rerr))
	assert.Contains(t, err.Error(), "decoding response")
}

func TestRemoteError_Transport(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c, err := NewClient("tok", WithBaseURL(url))
	require.NoError(t, err)

	_, err = c.ListBudgets(context.Background())
	var rerr *RemoteError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, 0, rerr.StatusCode)
	assert.NotNil(t, rerr.Unwrap())
}

func TestMarshalTransaction_EmptySubtransactions(t *testing.T) {
	data, err := MarshalTransaction(model.ParentTransaction{AccountID: "a1", Date: "2024-01-05", Cleared: model.ClearedUncleared})
	require.NoError(t, err)
	assert.JSONEq(t, `{"transaction":{"account_id":"a1","memo":"","amount":0,"date":"2024-01-05","cleared":"uncleared","approved":false,"subtransactions":[]}}`, string(data))
}
