package ynab

import (
	"fmt"
	"strings"
)

// RemoteError reports a failed API call: a transport failure, a non-2xx status, or
// an undecodable response.
type RemoteError struct {
	Op         string // e.g. "list budgets"
	StatusCode int    // 0 when no response was received
	ID         string // YNAB error id, e.g. "404.2"
	Name       string // YNAB error name, e.g. "resource_not_found"
	Detail     string
	Err        error
}

func (e *RemoteError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
	}
	if e.Name != "" {
		fmt.Fprintf(&b, " %s", e.Name)
		if e.ID != "" {
			fmt.Fprintf(&b, " (%s)", e.ID)
		}
	}
	if e.Detail != "" {
		fmt.Fprintf(&b, ": %s", e.Detail)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *RemoteError) Unwrap() error { return e.Err }

// errorResponse is the body YNAB sends with non-2xx responses.
type errorResponse struct {
	Error struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Detail string `json:"detail"`
	} `json:"error"`
}
