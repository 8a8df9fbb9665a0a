package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/superlibrary/library-api/internal/core/domain"
)

const collectionBooks = "books"

// BookRepository persists books. All CRUD behaviour comes from the generic
// Repository, specialized with the book codec.
type BookRepository struct {
	*Repository[domain.CreateBook, domain.UpdateBook, domain.Book]
	col *mongo.Collection
}

func NewBookRepository(db *mongo.Database) *BookRepository {
	col := db.Collection(collectionBooks)
	return &BookRepository{
		Repository: NewRepository[domain.CreateBook, domain.UpdateBook, domain.Book](
			col, bookCodec{}, domain.ErrBookNotFound,
		),
		col: col,
	}
}

// EnsureIndexes creates the lookup indexes on the books collection. The
// title+author index backs the duplicate check but is not unique: the
// uniqueness rule lives in the service layer.
func (r *BookRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "title", Value: 1}, {Key: "author", Value: 1}}},
		{Keys: bson.D{{Key: "genre", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// bookDoc is the raw document shape of the books collection.
type bookDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Title         string             `bson:"title"`
	Author        string             `bson:"author"`
	PublishedYear time.Time          `bson:"published_year"`
	Genre         string             `bson:"genre"`
	TotalCopies   int                `bson:"total_copies"`
}

type bookCodec struct{}

func (bookCodec) CreateDoc(in domain.CreateBook) bson.M {
	return bson.M{
		"title":          in.Title,
		"author":         in.Author,
		"published_year": in.PublishedYear.UTC(),
		"genre":          in.Genre,
		"total_copies":   in.TotalCopies,
	}
}

func (bookCodec) UpdateDoc(in domain.UpdateBook) bson.M {
	set := bson.M{}
	if in.Title != nil {
		set["title"] = *in.Title
	}
	if in.Author != nil {
		set["author"] = *in.Author
	}
	if in.PublishedYear != nil {
		set["published_year"] = in.PublishedYear.UTC()
	}
	if in.Genre != nil {
		set["genre"] = *in.Genre
	}
	if in.TotalCopies != nil {
		set["total_copies"] = *in.TotalCopies
	}
	return set
}

func (bookCodec) Decode(raw bson.Raw) (*domain.Book, error) {
	var d bookDoc
	if err := bson.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decode book: %w", err)
	}
	return &domain.Book{
		ID:            d.ID.Hex(),
		Title:         d.Title,
		Author:        d.Author,
		PublishedYear: d.PublishedYear,
		Genre:         d.Genre,
		TotalCopies:   d.TotalCopies,
	}, nil
}
