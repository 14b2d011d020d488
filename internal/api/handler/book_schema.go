package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type priceRequest struct {
	CurrencyCode     string `json:"currency_code"       validate:"required,len=3"`
	AmountMinorUnits int64  `json:"amount_minor_units"  validate:"gte=0"`
}

type createBookRequest struct {
	Title       string       `json:"title"       validate:"required"`
	Description string       `json:"description"`
	Price       priceRequest `json:"price"       validate:"required"`
}

type updateBookRequest struct {
	Title       string       `json:"title"       validate:"required"`
	Description string       `json:"description"`
	Price       priceRequest `json:"price"       validate:"required"`
}

// --- Response types ---
// Intentionally separate from domain types so the JSON contract is not
// coupled to internal model changes.

type priceResponse struct {
	CurrencyCode     string `json:"currency_code"`
	AmountMinorUnits int64  `json:"amount_minor_units"`
}

type authorResponse struct {
	UserID    string `json:"user_id"`
	Pseudonym string `json:"pseudonym"`
}

type bookResponse struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Author      authorResponse `json:"author"`
	Price       priceResponse  `json:"price"`
	State       string         `json:"state"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type listBooksResponse struct {
	Data  []bookResponse `json:"data"`
	Total int            `json:"total"`
}
