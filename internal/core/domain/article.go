package domain

import (
	"errors"
	"time"
)

// ArticleStatus represents the lifecycle state of an article.
type ArticleStatus string

const (
	StatusDrafted   ArticleStatus = "Drafted"
	StatusPublished ArticleStatus = "Published"
)

var ErrArticleNotFound = errors.New("article not found")
var ErrAlreadyPublished = errors.New("article already published")
var ErrAuthorNotFound = errors.New("author not found")
var ErrAuthorExists = errors.New("author already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrMissingFields = errors.New("missing required fields")

// CanPublish reports whether the article may transition to Published.
// The only edge in the state machine is Drafted → Published.
func (s ArticleStatus) CanPublish() bool {
	return s == StatusDrafted
}

// Article is the core aggregate. CreatedAt is reset to the publish moment when
// the article goes live, so "created" orders articles by publication time.
type Article struct {
	ID          string        `json:"id" bson:"_id,omitempty"`
	Title       string        `json:"title" bson:"title"`
	Description string        `json:"description" bson:"description"`
	Body        string        `json:"body" bson:"body"`
	Tags        []string      `json:"tags" bson:"tags"`
	AuthorID    string        `json:"author_id" bson:"author_id"`
	Status      ArticleStatus `json:"status" bson:"status"`
	ReadCount   int64         `json:"read_count" bson:"read_count"`
	ReadingTime string        `json:"reading_time" bson:"reading_time"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" bson:"updated_at"`
}

// Publish flips a drafted article to Published and stamps both timestamps
// with the publish moment. Publishing an already-published article is a no-op
// reported as ErrAlreadyPublished.
func (a *Article) Publish(now time.Time) error {
	if !a.Status.CanPublish() {
		return ErrAlreadyPublished
	}
	a.Status = StatusPublished
	a.CreatedAt = now
	a.UpdatedAt = now
	return nil
}
