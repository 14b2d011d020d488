package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/pageturn/bookshelf-api/internal/core/domain"
	"github.com/pageturn/bookshelf-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubBookRepo struct {
	books map[string]*domain.Book
}

func newStubBookRepo() *stubBookRepo {
	return &stubBookRepo{books: make(map[string]*domain.Book)}
}

func cloneBook(b *domain.Book) *domain.Book {
	clone := *b
	return &clone
}

func (r *stubBookRepo) Create(_ context.Context, book *domain.Book) error {
	if _, exists := r.books[book.ID]; exists {
		return domain.ErrBookExists
	}
	r.books[book.ID] = cloneBook(book)
	return nil
}

func (r *stubBookRepo) FindByID(_ context.Context, id string) (*domain.Book, error) {
	b, ok := r.books[id]
	if !ok || !b.Visible() {
		return nil, domain.ErrBookNotFound
	}
	return cloneBook(b), nil
}

// FindAll mirrors the real Mongo query: published only, search on title,
// sorted by title then id.
func (r *stubBookRepo) FindAll(_ context.Context, search domain.Search) ([]*domain.Book, error) {
	var matched []*domain.Book
	for _, b := range r.books {
		if !b.Visible() || !search.Matches(b.Title) {
			continue
		}
		matched = append(matched, cloneBook(b))
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Title != matched[j].Title {
			return matched[i].Title < matched[j].Title
		}
		return matched[i].ID < matched[j].ID
	})
	return matched, nil
}

func (r *stubBookRepo) Update(_ context.Context, id string, title, description string, price domain.Price) (*domain.Book, error) {
	b, ok := r.books[id]
	if !ok || !b.Visible() {
		return nil, domain.ErrBookNotFound
	}
	b.Title = title
	b.Description = description
	b.Price = price
	b.UpdatedAt = time.Now().UTC()
	return cloneBook(b), nil
}

func (r *stubBookRepo) Unpublish(_ context.Context, id string) (*domain.Book, error) {
	b, ok := r.books[id]
	if !ok || !b.Visible() {
		return nil, domain.ErrBookNotFound
	}
	b.State = domain.StateUnpublished
	b.UpdatedAt = time.Now().UTC()
	return cloneBook(b), nil
}

// recordingCache tracks cache traffic so tests can assert invalidation.
type recordingCache struct {
	entries     map[string]*domain.Book
	invalidated []string
}

func newRecordingCache() *recordingCache {
	return &recordingCache{entries: make(map[string]*domain.Book)}
}

func (c *recordingCache) Get(_ context.Context, id string) (*domain.Book, bool) {
	b, ok := c.entries[id]
	return b, ok
}

func (c *recordingCache) Set(_ context.Context, book *domain.Book) {
	c.entries[book.ID] = book
}

func (c *recordingCache) Invalidate(_ context.Context, id string) {
	delete(c.entries, id)
	c.invalidated = append(c.invalidated, id)
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

func eur(cents int64) domain.Price {
	return domain.Price{CurrencyCode: "EUR", AmountMinorUnits: cents}
}

func newBookFixture(t *testing.T) (*BookService, *stubBookRepo, *stubUserRepo) {
	t.Helper()
	books := newStubBookRepo()
	users := newStubUserRepo()
	users.users["alice"] = &domain.User{
		ID:              "user-alice",
		Username:        "alice",
		AuthorPseudonym: "A. Liddell",
		Roles:           []string{domain.RoleUser},
	}
	svc := NewBookService(books, users, nil, &seqIDGenerator{}, zerolog.Nop())
	return svc, books, users
}

func mustCreate(t *testing.T, svc *BookService, title string) *domain.Book {
	t.Helper()
	book, err := svc.Create(context.Background(), ports.CreateBookInput{
		AuthorUsername: "alice",
		Title:          title,
		Price:          eur(500),
	})
	if err != nil {
		t.Fatalf("create %q: %v", title, err)
	}
	return book
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestBookService_CreateGetRoundTrip(t *testing.T) {
	svc, _, _ := newBookFixture(t)

	created, err := svc.Create(context.Background(), ports.CreateBookInput{
		AuthorUsername: "alice",
		Title:          "Homo Sapiens",
		Description:    "a brief history",
		Price:          eur(500),
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.State != domain.StatePublished {
		t.Fatalf("new book must start published, got %s", created.State)
	}
	if created.Author.UserID != "user-alice" || created.Author.Pseudonym != "A. Liddell" {
		t.Fatalf("unexpected author ref: %+v", created.Author)
	}

	got, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Title != "Homo Sapiens" || got.Description != "a brief history" || got.Price != eur(500) {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
}

func TestBookService_Create_UnknownAuthor(t *testing.T) {
	svc, _, _ := newBookFixture(t)

	_, err := svc.Create(context.Background(), ports.CreateBookInput{
		AuthorUsername: "nobody",
		Title:          "Ghost Writing",
		Price:          eur(100),
	})
	if err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestBookService_Create_InvalidInput(t *testing.T) {
	svc, _, _ := newBookFixture(t)

	if _, err := svc.Create(context.Background(), ports.CreateBookInput{
		AuthorUsername: "alice",
		Title:          "   ",
		Price:          eur(100),
	}); err != domain.ErrInvalidInput {
		t.Fatalf("blank title: expected ErrInvalidInput, got %v", err)
	}

	if _, err := svc.Create(context.Background(), ports.CreateBookInput{
		AuthorUsername: "alice",
		Title:          "No Currency",
	}); err != domain.ErrInvalidInput {
		t.Fatalf("missing currency: expected ErrInvalidInput, got %v", err)
	}
}

func TestBookService_Delete_HidesBook(t *testing.T) {
	svc, _, _ := newBookFixture(t)
	book := mustCreate(t, svc, "X")

	deleted, err := svc.Delete(context.Background(), book.ID)
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if deleted.State != domain.StateUnpublished {
		t.Fatalf("expected unpublished confirmation, got %s", deleted.State)
	}

	if _, err := svc.Get(context.Background(), book.ID); err != domain.ErrBookNotFound {
		t.Fatalf("Get after delete: expected ErrBookNotFound, got %v", err)
	}

	books, err := svc.List(context.Background(), domain.NoSearch)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(books) != 0 {
		t.Fatalf("expected empty list after delete, got %d books", len(books))
	}
}

func TestBookService_Delete_NotIdempotent(t *testing.T) {
	svc, _, _ := newBookFixture(t)
	book := mustCreate(t, svc, "X")

	if _, err := svc.Delete(context.Background(), book.ID); err != nil {
		t.Fatalf("first delete failed: %v", err)
	}
	if _, err := svc.Delete(context.Background(), book.ID); err != domain.ErrBookNotFound {
		t.Fatalf("second delete: expected ErrBookNotFound, got %v", err)
	}
}

func TestBookService_Update_AfterDelete(t *testing.T) {
	svc, _, _ := newBookFixture(t)
	book := mustCreate(t, svc, "X")

	if _, err := svc.Delete(context.Background(), book.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	_, err := svc.Update(context.Background(), ports.UpdateBookInput{
		ID:    book.ID,
		Title: "Y",
		Price: eur(100),
	})
	if err != domain.ErrBookNotFound {
		t.Fatalf("update after delete: expected ErrBookNotFound, got %v", err)
	}
}

func TestBookService_Update_PreservesIdentity(t *testing.T) {
	svc, _, _ := newBookFixture(t)
	book := mustCreate(t, svc, "First Edition")

	updated, err := svc.Update(context.Background(), ports.UpdateBookInput{
		ID:          book.ID,
		Title:       "Second Edition",
		Description: "revised",
		Price:       eur(750),
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.ID != book.ID {
		t.Fatalf("update must preserve id")
	}
	if updated.Author != book.Author {
		t.Fatalf("update must preserve author")
	}
	if updated.State != domain.StatePublished {
		t.Fatalf("update must preserve state")
	}
	if updated.Title != "Second Edition" || updated.Price != eur(750) {
		t.Fatalf("mutable fields not applied: %+v", updated)
	}
}

func TestBookService_List_SearchSemantics(t *testing.T) {
	svc, _, _ := newBookFixture(t)
	mustCreate(t, svc, "Homo Sapiens")
	mustCreate(t, svc, "Animal Farm")

	search, err := domain.NewSearch("sap")
	if err != nil {
		t.Fatalf("NewSearch returned error: %v", err)
	}

	books, err := svc.List(context.Background(), search)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(books) != 1 || books[0].Title != "Homo Sapiens" {
		t.Fatalf("expected exactly [Homo Sapiens], got %+v", books)
	}
}

func TestBookService_List_OrderingAndTieBreak(t *testing.T) {
	svc, _, _ := newBookFixture(t)
	mustCreate(t, svc, "Zebra")       // id a-id
	mustCreate(t, svc, "Animal Farm") // id b-id
	mustCreate(t, svc, "Animal Farm") // id c-id

	books, err := svc.List(context.Background(), domain.NoSearch)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(books) != 3 {
		t.Fatalf("expected 3 books, got %d", len(books))
	}
	if books[0].Title != "Animal Farm" || books[1].Title != "Animal Farm" || books[2].Title != "Zebra" {
		t.Fatalf("titles out of order: %v, %v, %v", books[0].Title, books[1].Title, books[2].Title)
	}
	// Equal titles order by id ascending.
	if books[0].ID >= books[1].ID {
		t.Fatalf("tie-break violated: %s before %s", books[0].ID, books[1].ID)
	}
}

func TestBookService_Get_UsesCache(t *testing.T) {
	books := newStubBookRepo()
	users := newStubUserRepo()
	users.users["alice"] = &domain.User{ID: "user-alice", Username: "alice", AuthorPseudonym: "A. Liddell", Roles: []string{domain.RoleUser}}
	cache := newRecordingCache()
	svc := NewBookService(books, users, cache, &seqIDGenerator{}, zerolog.Nop())

	book := mustCreate(t, svc, "Cached")

	// First read populates the cache, second read hits it.
	if _, err := svc.Get(context.Background(), book.ID); err != nil {
		t.Fatalf("first Get failed: %v", err)
	}
	if _, ok := cache.entries[book.ID]; !ok {
		t.Fatalf("expected cache entry after first read")
	}

	// Remove from the repo: a cache hit must still serve the book.
	delete(books.books, book.ID)
	got, err := svc.Get(context.Background(), book.ID)
	if err != nil {
		t.Fatalf("cached Get failed: %v", err)
	}
	if got.ID != book.ID {
		t.Fatalf("unexpected cached book: %+v", got)
	}
}

func TestBookService_MutationsInvalidateCache(t *testing.T) {
	books := newStubBookRepo()
	users := newStubUserRepo()
	users.users["alice"] = &domain.User{ID: "user-alice", Username: "alice", AuthorPseudonym: "A. Liddell", Roles: []string{domain.RoleUser}}
	cache := newRecordingCache()
	svc := NewBookService(books, users, cache, &seqIDGenerator{}, zerolog.Nop())

	book := mustCreate(t, svc, "Volatile")

	if _, err := svc.Update(context.Background(), ports.UpdateBookInput{ID: book.ID, Title: "V2", Price: eur(100)}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if _, err := svc.Delete(context.Background(), book.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if len(cache.invalidated) != 2 {
		t.Fatalf("expected 2 invalidations, got %d", len(cache.invalidated))
	}
}
