package ynab

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cleared-dev/ynabsplit/internal/config"
	"github.com/cleared-dev/ynabsplit/internal/model"
)

// DefaultBaseURL is the public YNAB API root.
const DefaultBaseURL = "https://api.ynab.com/v1"

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

// Client talks to the YNAB API with a personal access token.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
	log     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root, e.g. for a test server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.client = &http.Client{Timeout: d} }
}

// WithLogger sets the request logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log.With().Str("client", "ynab").Logger() }
}

// NewClient creates a client. An empty token is a configuration error.
func NewClient(token string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, config.ErrMissingToken
	}
	c := &Client{
		baseURL: DefaultBaseURL,
		token:   token,
		client:  &http.Client{Timeout: 30 * time.Second},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Receipt summarizes a created transaction.
type Receipt struct {
	TransactionID   string
	ServerKnowledge int64
	Subtransactions int
}

type budgetsResponse struct {
	Data struct {
		Budgets []model.Budget `json:"budgets"`
	} `json:"data"`
}

type accountsResponse struct {
	Data struct {
		Accounts []model.Account `json:"accounts"`
	} `json:"data"`
}

type createTransactionRequest struct {
	Transaction model.ParentTransaction `json:"transaction"`
}

type createTransactionResponse struct {
	Data struct {
		TransactionIDs  []string `json:"transaction_ids"`
		ServerKnowledge int64    `json:"server_knowledge"`
		Transaction     *struct {
			ID              string `json:"id"`
			Subtransactions []struct {
				ID string `json:"id"`
			} `json:"subtransactions"`
		} `json:"transaction"`
	} `json:"data"`
}

// ListBudgets returns the budgets visible to the token.
func (c *Client) ListBudgets(ctx context.Context) ([]model.Budget, error) {
	var resp budgetsResponse
	if err := c.do(ctx, "list budgets", http.MethodGet, "/budgets", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data.Budgets, nil
}

// ListAccounts returns every account of a budget, including closed and deleted ones.
func (c *Client) ListAccounts(ctx context.Context, budgetID string) ([]model.Account, error) {
	var resp accountsResponse
	path := "/budgets/" + url.PathEscape(budgetID) + "/accounts"
	if err := c.do(ctx, "list accounts", http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data.Accounts, nil
}

// CreateTransaction posts one split transaction. It is not idempotent and is never
// retried: a repeat after a failure may create a duplicate.
func (c *Client) CreateTransaction(ctx context.Context, budgetID string, txn model.ParentTransaction) (Receipt, error) {
	body, err := MarshalTransaction(txn)
	if err != nil {
		return Receipt{}, &RemoteError{Op: "create transaction", Err: err}
	}

	var resp createTransactionResponse
	path := "/budgets/" + url.PathEscape(budgetID) + "/transactions"
	if err := c.do(ctx, "create transaction", http.MethodPost, path, body, &resp); err != nil {
		return Receipt{}, err
	}

	r := Receipt{ServerKnowledge: resp.Data.ServerKnowledge}
	if t := resp.Data.Transaction; t != nil {
		r.TransactionID = t.ID
		r.Subtransactions = len(t.Subtransactions)
	} else if len(resp.Data.TransactionIDs) > 0 {
		r.TransactionID = resp.Data.TransactionIDs[0]
	}
	return r, nil
}

// MarshalTransaction returns the create-transaction request body.
func MarshalTransaction(txn model.ParentTransaction) ([]byte, error) {
	if txn.Subtransactions == nil {
		txn.Subtransactions = []model.Subtransaction{}
	}
	return json.Marshal(createTransactionRequest{Transaction: txn})
}

func (c *Client) do(ctx context.Context, op, method, path string, body []byte, out any) error {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return &RemoteError{Op: op, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("method", method).Str("path", path).Msg("Request failed")
		return &RemoteError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("Request done")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(op, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RemoteError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}

func decodeError(op string, resp *http.Response) error {
	rerr := &RemoteError{Op: op, StatusCode: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		rerr.Err = fmt.Errorf("reading error response: %w", err)
		return rerr
	}

	var er errorResponse
	if err := json.Unmarshal(data, &er); err == nil && er.Error.Name != "" {
		rerr.ID = er.Error.ID
		rerr.Name = er.Error.Name
		rerr.Detail = er.Error.Detail
		return rerr
	}
	rerr.Detail = strings.TrimSpace(string(data))
	if rerr.Detail == "" {
		rerr.Detail = http.StatusText(resp.StatusCode)
	}
	return rerr
}
