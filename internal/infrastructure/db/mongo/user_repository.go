package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/superlibrary/library-api/internal/core/domain"
)

const collectionUsers = "users"

// UserRepository persists users. CRUD comes from the generic Repository; the
// email lookup used by the uniqueness rule is the one extra operation.
type UserRepository struct {
	*Repository[domain.CreateUser, domain.UpdateUser, domain.User]
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	col := db.Collection(collectionUsers)
	return &UserRepository{
		Repository: NewRepository[domain.CreateUser, domain.UpdateUser, domain.User](
			col, userCodec{}, domain.ErrUserNotFound,
		),
		col: col,
	}
}

// FindByEmail retrieves a user by exact stored email. The service passes a
// normalized address; no case folding happens here.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	raw, err := r.col.FindOne(ctx, bson.M{"email": email}).Raw()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return userCodec{}.Decode(raw)
}

// EnsureIndexes creates the lookup indexes on the users collection. The
// email index is not unique: email uniqueness is enforced by the service
// layer, not the store.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}},
		{Keys: bson.D{{Key: "role", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// userDoc is the raw document shape of the users collection. The password
// hash lives only here; it never reaches a read model.
type userDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	FirstName      string             `bson:"first_name"`
	LastName       string             `bson:"last_name"`
	Email          string             `bson:"email"`
	Role           string             `bson:"role"`
	RegisteredDate time.Time          `bson:"registered_date"`
	PasswordHash   string             `bson:"password_hash"`
}

type userCodec struct{}

func (userCodec) CreateDoc(in domain.CreateUser) bson.M {
	return bson.M{
		"first_name":      in.FirstName,
		"last_name":       in.LastName,
		"email":           in.Email,
		"role":            in.Role,
		"registered_date": in.RegisteredDate.UTC(),
		"password_hash":   in.Password,
	}
}

func (userCodec) UpdateDoc(in domain.UpdateUser) bson.M {
	set := bson.M{}
	if in.FirstName != nil {
		set["first_name"] = *in.FirstName
	}
	if in.LastName != nil {
		set["last_name"] = *in.LastName
	}
	if in.Email != nil {
		set["email"] = *in.Email
	}
	if in.Role != nil {
		set["role"] = *in.Role
	}
	if in.Password != nil {
		set["password_hash"] = *in.Password
	}
	return set
}

func (userCodec) Decode(raw bson.Raw) (*domain.User, error) {
	var d userDoc
	if err := bson.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &domain.User{
		ID:             d.ID.Hex(),
		FirstName:      d.FirstName,
		LastName:       d.LastName,
		Email:          d.Email,
		Role:           d.Role,
		RegisteredDate: d.RegisteredDate,
	}, nil
}
