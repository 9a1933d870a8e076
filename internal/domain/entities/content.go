package entities

import (
	"errors"
	"time"
)

// ContentStatus representa o estado editorial de um conteúdo
type ContentStatus string

const (
	StatusDraft     ContentStatus = "DRAFT"
	StatusPublished ContentStatus = "PUBLISHED"
	StatusArchived  ContentStatus = "ARCHIVED"
)

// IsValid verifica se o status é um dos valores conhecidos
func (s ContentStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// AuthorSummary é a projeção do autor embutida nas leituras de conteúdo
type AuthorSummary struct {
	ID    string
	Name  string
	Email string
}

// Content representa um conteúdo editorial
type Content struct {
	ID          string
	Title       string
	Slug        string
	Body        string
	Excerpt     string
	Status      ContentStatus
	AuthorID    string // imutável após a criação
	CategoryID  *string
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Author   *AuthorSummary
	Category *Category
}

// MarkPublished registra o instante da primeira publicação.
// PublishedAt é gravado exatamente uma vez e nunca sobrescrito.
func (c *Content) MarkPublished(now time.Time) {
	if c.PublishedAt == nil {
		c.PublishedAt = &now
	}
}

// Validate valida regras de negócio da entidade Content
func (c *Content) Validate() error {
	if c.Title == "" {
		return errors.New("title is required")
	}

	if c.Slug == "" {
		return errors.New("slug is required")
	}

	if c.Body == "" {
		return errors.New("body is required")
	}

	if !c.Status.IsValid() {
		return errors.New("invalid status")
	}

	if c.AuthorID == "" {
		return errors.New("author is required")
	}

	return nil
}
