package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/superlibrary/library-api/internal/core/domain"
	"github.com/superlibrary/library-api/internal/core/ports"
)

// Codec translates between an entity's model triple and the raw documents of
// its collection. UpdateDoc must include only the fields explicitly supplied
// in the patch: an omitted field is excluded, never set to a zero value.
type Codec[C any, U any, R any] interface {
	CreateDoc(in C) bson.M
	UpdateDoc(in U) bson.M
	Decode(raw bson.Raw) (*R, error)
}

// Repository implements document CRUD against one collection, specialized
// per entity by a Codec and a not-found sentinel. It holds only a collection
// handle and is cheap to construct.
type Repository[C any, U any, R any] struct {
	col      *mongo.Collection
	codec    Codec[C, U, R]
	notFound error
}

func NewRepository[C any, U any, R any](
	col *mongo.Collection,
	codec Codec[C, U, R],
	notFound error,
) *Repository[C, U, R] {
	return &Repository[C, U, R]{col: col, codec: codec, notFound: notFound}
}

// parseObjectID is the single conversion point between external string ids
// and the store's native ObjectID. Malformed input fails here as
// domain.ErrInvalidID, before any store round-trip.
func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", domain.ErrInvalidID, id)
	}
	return oid, nil
}

// Create inserts a new document and immediately re-reads it by the assigned
// id to build the read model. A missing re-read is a consistency fault
// (domain.ErrInconsistentRead), not a not-found.
func (r *Repository[C, U, R]) Create(ctx context.Context, in C) (*R, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, r.codec.CreateDoc(in))
	if err != nil {
		return nil, fmt.Errorf("insert: %w", err)
	}

	raw, err := r.col.FindOne(ctx, bson.M{"_id": res.InsertedID}).Raw()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInconsistentRead
		}
		return nil, fmt.Errorf("read back: %w", err)
	}
	return r.codec.Decode(raw)
}

func (r *Repository[C, U, R]) GetByID(ctx context.Context, id string) (*R, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.findByObjectID(ctx, oid)
}

// List applies exact-match filters with skip/limit pagination. Order is
// whatever the store returns.
func (r *Repository[C, U, R]) List(ctx context.Context, q ports.ListQuery) ([]*R, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	for field, value := range q.Filters {
		filter[field] = value
	}

	opts := options.Find().SetSkip(int64(q.Skip))
	if q.Limit > 0 {
		opts = opts.SetLimit(int64(q.Limit))
	}

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]*R, 0)
	for cur.Next(ctx) {
		m, err := r.codec.Decode(cur.Current)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("cursor: %w", err)
	}
	return out, nil
}

// Update applies a partial $set built from the explicitly supplied patch
// fields. An empty patch performs no write and reads back the current
// document instead.
func (r *Repository[C, U, R]) Update(ctx context.Context, id string, in U) (*R, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := r.codec.UpdateDoc(in)
	if len(set) == 0 {
		return r.findByObjectID(ctx, oid)
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("update: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, r.notFound
	}

	return r.findByObjectID(ctx, oid)
}

// Delete reports whether exactly one document was removed.
func (r *Repository[C, U, R]) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return false, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("delete: %w", err)
	}
	return res.DeletedCount == 1, nil
}

func (r *Repository[C, U, R]) findByObjectID(ctx context.Context, oid primitive.ObjectID) (*R, error) {
	raw, err := r.col.FindOne(ctx, bson.M{"_id": oid}).Raw()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, r.notFound
		}
		return nil, fmt.Errorf("find: %w", err)
	}
	return r.codec.Decode(raw)
}
