package domain

import (
	"testing"
	"time"
)

func TestArticle_Publish(t *testing.T) {
	created := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	publishedAt := time.Date(2026, 2, 1, 12, 30, 0, 0, time.UTC)

	a := &Article{Status: StatusDrafted, CreatedAt: created, UpdatedAt: created}

	if err := a.Publish(publishedAt); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if a.Status != StatusPublished {
		t.Fatalf("expected status %s, got %s", StatusPublished, a.Status)
	}
	if !a.CreatedAt.Equal(publishedAt) {
		t.Fatalf("expected createdAt reset to publish moment, got %v", a.CreatedAt)
	}
	if !a.UpdatedAt.Equal(a.CreatedAt) {
		t.Fatalf("expected updatedAt to match createdAt, got %v", a.UpdatedAt)
	}
}

func TestArticle_Publish_AlreadyPublished(t *testing.T) {
	publishedAt := time.Date(2026, 2, 1, 12, 30, 0, 0, time.UTC)
	a := &Article{Status: StatusPublished, CreatedAt: publishedAt, UpdatedAt: publishedAt}

	if err := a.Publish(publishedAt.Add(time.Hour)); err != ErrAlreadyPublished {
		t.Fatalf("expected ErrAlreadyPublished, got %v", err)
	}
	if !a.CreatedAt.Equal(publishedAt) {
		t.Fatalf("repeated publish must not touch createdAt, got %v", a.CreatedAt)
	}
}

func TestArticleStatus_CanPublish(t *testing.T) {
	if !StatusDrafted.CanPublish() {
		t.Fatalf("drafted article must be publishable")
	}
	if StatusPublished.CanPublish() {
		t.Fatalf("published article must not be publishable again")
	}
}
