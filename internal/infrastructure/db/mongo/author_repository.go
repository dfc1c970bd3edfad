package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inkwell/blog-platform/internal/core/domain"
)

const collectionAuthors = "authors"

type AuthorRepository struct {
	col *mongo.Collection
}

func NewAuthorRepository(db *mongo.Database) *AuthorRepository {
	return &AuthorRepository{col: db.Collection(collectionAuthors)}
}

type mongoAuthor struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	FirstName      string             `bson:"first_name"`
	LastName       string             `bson:"last_name"`
	Email          string             `bson:"email"`
	Username       string             `bson:"username"`
	PasswordHash   string             `bson:"password_hash"`
	Bio            string             `bson:"bio,omitempty"`
	ProfilePicture string             `bson:"profile_picture"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

func (r *AuthorRepository) Create(ctx context.Context, author *domain.Author) (*domain.Author, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoAuthor{
		FirstName:      author.FirstName,
		LastName:       author.LastName,
		Email:          author.Email,
		Username:       author.Username,
		PasswordHash:   author.PasswordHash,
		Bio:            author.Bio,
		ProfilePicture: author.ProfilePicture,
		CreatedAt:      author.CreatedAt,
		UpdatedAt:      author.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAuthorExists
		}
		return nil, fmt.Errorf("insert author: %w", err)
	}

	created := *author
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *AuthorRepository) FindByID(ctx context.Context, id string) (*domain.Author, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAuthorNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ma mongoAuthor
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("find author: %w", err)
	}
	return ma.toDomain(), nil
}

func (r *AuthorRepository) FindByUsername(ctx context.Context, username string) (*domain.Author, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ma mongoAuthor
	if err := r.col.FindOne(ctx, bson.M{"username": username}).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("find author: %w", err)
	}
	return ma.toDomain(), nil
}

// Exists runs a single existence query over username OR email, mirroring the
// registration pre-check.
func (r *AuthorRepository) Exists(ctx context.Context, username, email string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"$or": bson.A{
		bson.M{"username": username},
		bson.M{"email": email},
	}}

	err := r.col.FindOne(ctx, filter, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, fmt.Errorf("author exists: %w", err)
	}
	return true, nil
}

// EnsureIndexes creates the unique indexes backing the username/email
// invariants.
func (r *AuthorRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (ma *mongoAuthor) toDomain() *domain.Author {
	return &domain.Author{
		ID:             ma.ID.Hex(),
		FirstName:      ma.FirstName,
		LastName:       ma.LastName,
		Email:          ma.Email,
		Username:       ma.Username,
		PasswordHash:   ma.PasswordHash,
		Bio:            ma.Bio,
		ProfilePicture: ma.ProfilePicture,
		CreatedAt:      ma.CreatedAt,
		UpdatedAt:      ma.UpdatedAt,
	}
}
