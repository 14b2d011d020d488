package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pageturn/bookshelf-api/internal/core/domain"
)

const booksCollection = "books"

// BookRepository persists books in Mongo. Visibility is enforced in the
// queries themselves: every read and mutation filters on the published
// state, so an unpublished book behaves exactly like a missing one, and
// update/unpublish are single atomic filtered writes.
type BookRepository struct {
	coll *mongo.Collection
}

func NewBookRepository(db *mongo.Database) *BookRepository {
	return &BookRepository{coll: db.Collection(booksCollection)}
}

func (r *BookRepository) Create(ctx context.Context, book *domain.Book) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, book); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrBookExists
		}
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

func (r *BookRepository) FindByID(ctx context.Context, id string) (*domain.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var book domain.Book
	err := r.coll.FindOne(ctx, visibleByID(id)).Decode(&book)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookNotFound
		}
		return nil, fmt.Errorf("find book: %w", err)
	}
	return &book, nil
}

func (r *BookRepository) FindAll(ctx context.Context, search domain.Search) ([]*domain.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{"state": domain.StatePublished}
	if search.Active() {
		filter["title"] = primitive.Regex{
			Pattern: regexp.QuoteMeta(search.Term()),
			Options: "i",
		}
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "title", Value: 1},
		{Key: "_id", Value: 1},
	})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer cursor.Close(ctx)

	var books []*domain.Book
	if err := cursor.All(ctx, &books); err != nil {
		return nil, fmt.Errorf("decode books: %w", err)
	}
	return books, nil
}

func (r *BookRepository) Update(ctx context.Context, id string, title, description string, price domain.Price) (*domain.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"title":       title,
		"description": description,
		"price":       price,
		"updated_at":  time.Now().UTC(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var book domain.Book
	err := r.coll.FindOneAndUpdate(ctx, visibleByID(id), update, opts).Decode(&book)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookNotFound
		}
		return nil, fmt.Errorf("update book: %w", err)
	}
	return &book, nil
}

// Unpublish applies the one-way published → unpublished transition. The
// filter on the published state makes the write atomic: two concurrent
// deletes of the same book resolve to one winner, the loser sees not found.
func (r *BookRepository) Unpublish(ctx context.Context, id string) (*domain.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"state":      domain.StateUnpublished,
		"updated_at": time.Now().UTC(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var book domain.Book
	err := r.coll.FindOneAndUpdate(ctx, visibleByID(id), update, opts).Decode(&book)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookNotFound
		}
		return nil, fmt.Errorf("unpublish book: %w", err)
	}
	return &book, nil
}

// EnsureIndexes creates the indexes backing list sorting and state filtering.
func (r *BookRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "state", Value: 1}, {Key: "title", Value: 1}}},
		{Keys: bson.D{{Key: "author.user_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func visibleByID(id string) bson.M {
	return bson.M{"_id": id, "state": domain.StatePublished}
}
