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
	"github.com/inkwell/blog-platform/internal/core/ports"
)

const collectionArticles = "articles"

type ArticleRepository struct {
	col *mongo.Collection
}

func NewArticleRepository(db *mongo.Database) *ArticleRepository {
	return &ArticleRepository{col: db.Collection(collectionArticles)}
}

type mongoArticle struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Title       string               `bson:"title"`
	Description string               `bson:"description"`
	Body        string               `bson:"body"`
	Tags        []string             `bson:"tags"`
	AuthorID    primitive.ObjectID   `bson:"author_id"`
	Status      domain.ArticleStatus `bson:"status"`
	ReadCount   int64                `bson:"read_count"`
	ReadingTime string               `bson:"reading_time"`
	CreatedAt   time.Time            `bson:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at"`
}

func (r *ArticleRepository) Create(ctx context.Context, a *domain.Article) (*domain.Article, error) {
	authorOID, err := primitive.ObjectIDFromHex(a.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("insert article: invalid author id: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoArticle{
		Title:       a.Title,
		Description: a.Description,
		Body:        a.Body,
		Tags:        a.Tags,
		AuthorID:    authorOID,
		Status:      a.Status,
		ReadCount:   a.ReadCount,
		ReadingTime: a.ReadingTime,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert article: %w", err)
	}

	created := *a
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *ArticleRepository) FindByID(ctx context.Context, id string) (*domain.Article, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// A malformed id behaves like a missing article: callers redirect.
		return nil, domain.ErrArticleNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ma mongoArticle
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, fmt.Errorf("find article: %w", err)
	}
	return ma.toDomain(), nil
}

func (r *ArticleRepository) Update(ctx context.Context, a *domain.Article) error {
	oid, err := primitive.ObjectIDFromHex(a.ID)
	if err != nil {
		return domain.ErrArticleNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"title":        a.Title,
		"description":  a.Description,
		"body":         a.Body,
		"tags":         a.Tags,
		"status":       a.Status,
		"reading_time": a.ReadingTime,
		"created_at":   a.CreatedAt,
		"updated_at":   a.UpdatedAt,
	}}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

// Delete removes the article by id. Unknown and malformed ids are not
// distinguished as errors; delete is idempotent.
func (r *ArticleRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}

// List returns one page sorted by created_at descending plus the total count
// matching the filter.
func (r *ArticleRepository) List(ctx context.Context, filter ports.ListArticlesFilter) ([]*domain.Article, int64, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.AuthorID != "" {
		oid, err := primitive.ObjectIDFromHex(filter.AuthorID)
		if err != nil {
			return nil, 0, domain.ErrAuthorNotFound
		}
		query["author_id"] = oid
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	skip := int64(filter.PerPage) * int64(filter.Page-1)
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(int64(filter.PerPage))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list articles: %w", err)
	}
	articles, err := decodeArticles(ctx, cur)
	if err != nil {
		return nil, 0, err
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count articles: %w", err)
	}
	return articles, total, nil
}

// Search substring-matches the sanitized term case-insensitively against
// title, description, body and tags. The caller is responsible for stripping
// regex metacharacters from the term.
func (r *ArticleRepository) Search(ctx context.Context, term string) ([]*domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pattern := primitive.Regex{Pattern: term, Options: "i"}
	query := bson.M{"$or": bson.A{
		bson.M{"title": pattern},
		bson.M{"description": pattern},
		bson.M{"body": pattern},
		bson.M{"tags": pattern},
	}}

	cur, err := r.col.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search articles: %w", err)
	}
	return decodeArticles(ctx, cur)
}

// IncrementReadCount adds one to the read count with a single atomic $inc.
func (r *ArticleRepository) IncrementReadCount(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrArticleNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"read_count": 1}})
	if err != nil {
		return fmt.Errorf("increment read count: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes serving the dashboard and public listings.
func (r *ArticleRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "author_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func decodeArticles(ctx context.Context, cur *mongo.Cursor) ([]*domain.Article, error) {
	defer cur.Close(ctx)

	var out []*domain.Article
	for cur.Next(ctx) {
		var ma mongoArticle
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode article: %w", err)
		}
		out = append(out, ma.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate articles: %w", err)
	}
	return out, nil
}

func (ma *mongoArticle) toDomain() *domain.Article {
	return &domain.Article{
		ID:          ma.ID.Hex(),
		Title:       ma.Title,
		Description: ma.Description,
		Body:        ma.Body,
		Tags:        ma.Tags,
		AuthorID:    ma.AuthorID.Hex(),
		Status:      ma.Status,
		ReadCount:   ma.ReadCount,
		ReadingTime: ma.ReadingTime,
		CreatedAt:   ma.CreatedAt,
		UpdatedAt:   ma.UpdatedAt,
	}
}
