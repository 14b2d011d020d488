package domain

import (
	"errors"
	"time"
)

// BookState represents the lifecycle state of a book.
type BookState string

const (
	StatePublished   BookState = "published"
	StateUnpublished BookState = "unpublished"
)

// validTransitions defines the allowed state machine transitions.
// Unpublishing is terminal: there is no way back to published.
var validTransitions = map[BookState][]BookState{
	StatePublished: {StateUnpublished},
}

var ErrBookNotFound = errors.New("book not found")
var ErrBookExists = errors.New("book already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidInput = errors.New("invalid input")
var ErrInvalidTransition = errors.New("invalid state transition")
var ErrForbidden = errors.New("access forbidden")
var ErrCoverNotFound = errors.New("cover not found")

// CanTransitionTo reports whether a transition from the current state to next is valid.
func (s BookState) CanTransitionTo(next BookState) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Price is a monetary amount expressed in integer minor units, so a book
// priced at EUR 5.00 carries {CurrencyCode: "EUR", AmountMinorUnits: 500}.
// Formatting is a presentation concern of the transport layer.
type Price struct {
	CurrencyCode     string `json:"currency_code" bson:"currency_code"`
	AmountMinorUnits int64  `json:"amount_minor_units" bson:"amount_minor_units"`
}

// AuthorRef is a back-reference from a book to the identity that created
// it. Deleting the identity does not cascade; the pseudonym is denormalized
// so listings never need a join.
type AuthorRef struct {
	UserID    string `json:"user_id" bson:"user_id"`
	Pseudonym string `json:"pseudonym" bson:"pseudonym"`
}

// Book is the core aggregate root.
type Book struct {
	ID          string    `json:"id" bson:"_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Author      AuthorRef `json:"author" bson:"author"`
	Price       Price     `json:"price" bson:"price"`
	State       BookState `json:"state" bson:"state"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// Unpublish applies the one-way soft delete. It fails with
// ErrInvalidTransition when the book is already unpublished.
func (b *Book) Unpublish(now time.Time) error {
	if !b.State.CanTransitionTo(StateUnpublished) {
		return ErrInvalidTransition
	}
	b.State = StateUnpublished
	b.UpdatedAt = now
	return nil
}

// Visible reports whether the book may be surfaced to callers.
func (b *Book) Visible() bool {
	return b.State == StatePublished
}
