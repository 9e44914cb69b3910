// SPDX-License-Identifier: GPL-3.0-only

package gateway

import (
	"fmt"
	"net/http"
	"net/url"
)

type Config struct {
	SendURL     string
	PurchaseURL string
	HTTPClient  *http.Client
}

type Client struct {
	SendURL     *url.URL
	PurchaseURL *url.URL
	HTTPClient  *http.Client
}

// SendRequest is the outbound SMS payload. Numbers carry no leading '+' and
// Countries is parallel to Numbers.
type SendRequest struct {
	Numbers   []string `json:"numbers"`
	Message   string   `json:"message"`
	Countries []string `json:"countries"`
}

type SendOutcome string

const (
	OutcomeDelivered SendOutcome = "delivered"
	OutcomePartial   SendOutcome = "partial"
	OutcomePending   SendOutcome = "pending"
)

type SendResult struct {
	Outcome       SendOutcome `json:"outcome"`
	FailedNumbers []string    `json:"failed_numbers,omitempty"`
	OrderIDs      []string    `json:"order_ids,omitempty"`
	Message       string      `json:"message,omitempty"`
}

type PurchaseRequest struct {
	Service    string `json:"service"`
	Country    string `json:"country"`
	IsoCountry string `json:"isoCountry"`
	Variant    string `json:"variant"`
}

type PurchaseResult struct {
	OrderID   string  `json:"orderId"`
	Number    string  `json:"number"`
	Price     float64 `json:"price"`
	PriceUnit string  `json:"priceUnit"`
	ExpiresAt string  `json:"expiresAt,omitempty"`
}

// UpstreamError is a non-2xx answer from a send or purchase endpoint.
// Code is the server's message or error string.
type UpstreamError struct {
	Status int
	Code   string
}

func (e *UpstreamError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("upstream request failed: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("upstream request failed: %d %s", e.Status, e.Code)
}

// sendResponse covers every success shape the send endpoint answers with.
type sendResponse struct {
	Success       *bool    `json:"success,omitempty"`
	FailedNumbers []string `json:"failedNumbers"`
	OrderIDs      []string `json:"orderIds"`
	MessageQueued bool     `json:"messageQueued"`
	Message       string   `json:"message"`
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}
