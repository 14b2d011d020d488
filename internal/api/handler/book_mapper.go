package handler

import (
	"github.com/pageturn/bookshelf-api/internal/core/domain"
	"github.com/pageturn/bookshelf-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createBookRequest, authorUsername string) ports.CreateBookInput {
	return ports.CreateBookInput{
		AuthorUsername: authorUsername,
		Title:          req.Title,
		Description:    req.Description,
		Price: domain.Price{
			CurrencyCode:     req.Price.CurrencyCode,
			AmountMinorUnits: req.Price.AmountMinorUnits,
		},
	}
}

func toUpdateInput(req updateBookRequest, id string) ports.UpdateBookInput {
	return ports.UpdateBookInput{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Price: domain.Price{
			CurrencyCode:     req.Price.CurrencyCode,
			AmountMinorUnits: req.Price.AmountMinorUnits,
		},
	}
}

// --- Domain → HTTP response ---

func toBookResponse(b *domain.Book) bookResponse {
	return bookResponse{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		Author: authorResponse{
			UserID:    b.Author.UserID,
			Pseudonym: b.Author.Pseudonym,
		},
		Price: priceResponse{
			CurrencyCode:     b.Price.CurrencyCode,
			AmountMinorUnits: b.Price.AmountMinorUnits,
		},
		State:     string(b.State),
		CreatedAt: b.CreatedAt.UTC(),
		UpdatedAt: b.UpdatedAt.UTC(),
	}
}

func toListResponse(books []*domain.Book) listBooksResponse {
	items := make([]bookResponse, len(books))
	for i, b := range books {
		items[i] = toBookResponse(b)
	}
	return listBooksResponse{Data: items, Total: len(items)}
}
