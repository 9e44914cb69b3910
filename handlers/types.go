// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"numdash-server/catalog"
	"numdash-server/commons/prefix"
	"numdash-server/gateway"
)

// swagger:model GenericResponse
type GenericResponse struct {
	// Message indicating the result of the operation
	Message string `json:"message"`
}

// swagger:model PaginationDetails
type PaginationDetails struct {
	// Current page number
	Page int `json:"page"`
	// Page size
	PageSize int `json:"page_size"`
	// Total number of items
	Total int64 `json:"total"`
	// Total number of pages
	TotalPages int `json:"total_pages"`
}

// swagger:model SignupRequest
type SignupRequest struct {
	// User's email address
	// required: true
	Email string `json:"email" example:"user@example.com"`
	// User's password
	// required: true
	Password string `json:"password" example:"MySecretPassword@123"`
	// Optional full name
	FullName *string `json:"full_name" example:"Jane Doe"`
}

// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"MySecretPassword@123"`
}

// swagger:model AuthResponse
type AuthResponse struct {
	// Session token, sent back as a Bearer token. Empty while MFA is pending.
	SessionToken string `json:"session_token,omitempty" example:"sample_session_token"`
	// Set when the login must be completed with a TOTP code
	MFARequired bool `json:"mfa_required,omitempty" example:"false"`
	// Challenge to answer on /v1/auth/mfa
	MFAToken string `json:"mfa_token,omitempty" example:"mfa_1a2b3c"`
	Message  string `json:"message" example:"Login successful"`
}

// swagger:model MFALoginRequest
type MFALoginRequest struct {
	// Challenge returned by the login
	MFAToken string `json:"mfa_token" example:"mfa_1a2b3c"`
	// Current code from the authenticator app
	Code string `json:"code" example:"123456"`
}

// swagger:model GetUserResponse
type GetUserResponse struct {
	AccountID  string  `json:"account_id" example:"acc_1234567890"`
	Email      string  `json:"email" example:"user@example.com"`
	FullName   *string `json:"full_name" example:"Jane Doe"`
	MFAEnabled bool    `json:"mfa_enabled" example:"true"`
	Message    string  `json:"message" example:"User retrieved successfully"`
}

// swagger:model MFAEnrollResponse
type MFAEnrollResponse struct {
	// Base32 secret for manual entry
	Secret string `json:"secret" example:"JBSWY3DPEHPK3PXP"`
	// otpauth:// URL for QR codes
	URL     string `json:"otpauth_url" example:"otpauth://totp/NumDash:user@example.com?secret=JBSWY3DPEHPK3PXP&issuer=NumDash"`
	Message string `json:"message" example:"Scan the code and confirm it to enable MFA"`
}

// swagger:model MFACodeRequest
type MFACodeRequest struct {
	Code string `json:"code" example:"123456"`
	// Required when disabling MFA
	Password string `json:"password,omitempty" example:"MySecretPassword@123"`
}

// swagger:model DeleteAccountRequest
type DeleteAccountRequest struct {
	// User's password
	// required: true
	Password string `json:"password" example:"MySecretPassword@123"`
}

// swagger:model ChangePasswordRequest
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" example:"MySecretPassword@123"`
	NewPassword     string `json:"new_password" example:"MyNewPassword@456"`
}

// swagger:model SessionDetails
type SessionDetails struct {
	ID         uint    `json:"id" example:"1"`
	IPAddress  *string `json:"ip_address" example:"192.0.2.10"`
	UserAgent  *string `json:"user_agent" example:"Mozilla/5.0"`
	LastUsedAt *string `json:"last_used_at" example:"2023-10-01T12:00:00Z"`
	CreatedAt  string  `json:"created_at" example:"2023-10-01T12:00:00Z"`
	IsCurrent  bool    `json:"is_current" example:"true"`
}

// swagger:model SessionListResponse
type SessionListResponse struct {
	Data       []SessionDetails  `json:"data"`
	Pagination PaginationDetails `json:"pagination"`
	Message    string            `json:"message" example:"Sessions retrieved successfully"`
}

// swagger:model NumbersRequest
type NumbersRequest struct {
	// Destination numbers as typed; any non-digit is ignored
	Numbers []string `json:"numbers" example:"+1 415 555 0123,447624123456"`
}

// swagger:model ValidateNumbersResponse
type ValidateNumbersResponse struct {
	Data []NumberVerdict `json:"data"`
	// Number of valid entries
	ValidCount int    `json:"valid_count" example:"1"`
	Message    string `json:"message" example:"Numbers validated"`
}

// swagger:model NumberVerdict
type NumberVerdict struct {
	prefix.Verdict
	// International rendering of the cleaned digits
	Formatted string `json:"formatted,omitempty" example:"+1 415-555-0123"`
}

// swagger:model QuoteResponse
type QuoteResponse struct {
	Data    QuoteDetails `json:"data"`
	Message string       `json:"message" example:"Price computed"`
}

// swagger:model QuoteDetails
type QuoteDetails struct {
	Numbers []NumberVerdict `json:"numbers"`
	// Total price of every valid, priced number
	Total     float64                `json:"total" example:"3.25"`
	PriceUnit string                 `json:"price_unit" example:"USD"`
	Countries []QuoteCountry         `json:"countries"`
	Priced    []prefix.PricedCountry `json:"priced"`
	// Valid numbers for which no price was available
	Unmatched []string `json:"unmatched,omitempty"`
	// Countries without a price document
	Unpriced []prefix.CountryCode `json:"unpriced,omitempty"`
}

// swagger:model QuoteCountry
type QuoteCountry struct {
	CountryCode     prefix.CountryCode `json:"country_code" example:"GB"`
	DisplayName     string             `json:"display_name" example:"United Kingdom"`
	Count           int                `json:"count" example:"2"`
	PricePerMessage float64            `json:"price_per_message" example:"1"`
	Subtotal        float64            `json:"subtotal" example:"2"`
}

// swagger:model SendSMSRequest
type SendSMSRequest struct {
	Numbers []string `json:"numbers" example:"+1 415 555 0123"`
	// Message body, 1 to 160 characters
	Message string `json:"message" example:"Your code is 1234"`
}

// swagger:model SendSMSResponse
type SendSMSResponse struct {
	TransactionID string              `json:"transaction_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Outcome       gateway.SendOutcome `json:"outcome" example:"partial"`
	Sent          []string            `json:"sent"`
	Countries     []string            `json:"countries"`
	// Numbers the send endpoint could not deliver
	FailedNumbers []string `json:"failed_numbers,omitempty"`
	// Entries to offer again to the user; empty unless the send partially failed
	Retry    []prefix.PendingNumber `json:"retry"`
	Skipped  []prefix.Verdict       `json:"skipped,omitempty"`
	OrderIDs []string               `json:"order_ids,omitempty"`
	Charged  float64                `json:"charged" example:"1.25"`
	Message  string                 `json:"message" example:"Some messages could not be delivered"`
}

// swagger:model CatalogResponse
type CatalogResponse struct {
	Variant catalog.Variant `json:"variant" example:"short"`
	Data    []catalog.Item  `json:"data"`
	Message string          `json:"message" example:"Catalog retrieved successfully"`
}

// swagger:model PurchaseRequest
type PurchaseRequest struct {
	// Catalog item id
	ItemID string `json:"item_id" example:"wa-us"`
}

// swagger:model PurchaseResponse
type PurchaseResponse struct {
	TransactionID string  `json:"transaction_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	OrderID       string  `json:"order_id" example:"ord_123"`
	Number        string  `json:"number" example:"14155550123"`
	Formatted     string  `json:"formatted" example:"+1 415-555-0123"`
	Price         float64 `json:"price" example:"0.8"`
	PriceUnit     string  `json:"price_unit" example:"USD"`
	ExpiresAt     string  `json:"expires_at,omitempty" example:"2023-10-01T12:00:00Z"`
	Message       string  `json:"message" example:"Number purchased successfully"`
}

// swagger:model TransactionDetails
type TransactionDetails struct {
	TID         string   `json:"tid" example:"550e8400-e29b-41d4-a716-446655440000"`
	Category    string   `json:"category" example:"SMS"`
	Status      string   `json:"status" example:"PARTIAL"`
	Amount      float64  `json:"amount" example:"1.25"`
	PriceUnit   string   `json:"price_unit" example:"USD"`
	Description *string  `json:"description"`
	Recipients  []string `json:"recipients,omitempty"`
	Countries   []string `json:"countries,omitempty"`
	Failed      []string `json:"failed,omitempty"`
	OrderID     *string  `json:"order_id,omitempty"`
	Variant     *string  `json:"variant,omitempty"`
	Service     *string  `json:"service,omitempty"`
	Number      *string  `json:"number,omitempty"`
	CreatedAt   string   `json:"created_at" example:"2023-10-01T12:00:00Z"`
}

// swagger:model TransactionListResponse
type TransactionListResponse struct {
	Data       []TransactionDetails `json:"data"`
	Pagination PaginationDetails    `json:"pagination"`
	Message    string               `json:"message" example:"Transactions retrieved successfully"`
}

// swagger:model TransactionSummaryResponse
type TransactionSummaryResponse struct {
	Data    TransactionSummaryData `json:"data"`
	Message string                 `json:"message" example:"Transaction summary retrieved successfully"`
}

// swagger:model TransactionSummaryData
type TransactionSummaryData struct {
	TotalCount     int64   `json:"total_count" example:"150"`
	TotalCompleted int64   `json:"total_completed" example:"120"`
	TotalPartial   int64   `json:"total_partial" example:"10"`
	TotalPending   int64   `json:"total_pending" example:"15"`
	TotalFailed    int64   `json:"total_failed" example:"5"`
	TotalSpent     float64 `json:"total_spent" example:"42.5"`
}
