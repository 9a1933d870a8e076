package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rafabene/contenthub-backend/internal/domain/entities"
	apperrors "github.com/rafabene/contenthub-backend/internal/domain/errors"
	"github.com/rafabene/contenthub-backend/internal/infrastructure/persistence/memory"
)

type contentFixture struct {
	ctx    context.Context
	store  *memory.Store
	svc    *ContentService
	admin  Actor
	editor Actor
	other  Actor
	viewer Actor
}

func setupContentService(t *testing.T) *contentFixture {
	t.Helper()

	store := memory.NewStore()
	svc := NewContentService(store.Contents, nopLogger{})

	return &contentFixture{
		ctx:    context.Background(),
		store:  store,
		svc:    svc,
		admin:  Actor{ID: "admin-1", Role: entities.RoleAdmin},
		editor: Actor{ID: "editor-1", Role: entities.RoleEditor},
		other:  Actor{ID: "editor-2", Role: entities.RoleEditor},
		viewer: Actor{ID: "viewer-1", Role: entities.RoleViewer},
	}
}

func (f *contentFixture) mustCreate(t *testing.T, actor Actor, slug string, status entities.ContentStatus) *entities.Content {
	t.Helper()

	content, err := f.svc.Create(f.ctx, CreateContentInput{
		Title:  "Title " + slug,
		Slug:   slug,
		Body:   "body",
		Status: status,
	}, actor)
	if err != nil {
		t.Fatalf("falha ao criar conteúdo %s: %v", slug, err)
	}
	return content
}

func TestContentService_Create(t *testing.T) {
	t.Run("viewer não pode criar", func(t *testing.T) {
		f := setupContentService(t)

		_, err := f.svc.Create(f.ctx, CreateContentInput{
			Title: "T", Slug: "t", Body: "b",
		}, f.viewer)
		if !errors.Is(err, apperrors.ErrForbidden) {
			t.Errorf("esperava ErrForbidden, obteve %v", err)
		}
	})

	t.Run("status default é DRAFT", func(t *testing.T) {
		f := setupContentService(t)

		content, err := f.svc.Create(f.ctx, CreateContentInput{
			Title: "T", Slug: "t", Body: "b",
		}, f.editor)
		if err != nil {
			t.Fatalf("esperava sucesso, obteve %v", err)
		}
		if content.Status != entities.StatusDraft {
			t.Errorf("esperava status DRAFT, obteve %s", content.Status)
		}
		if content.PublishedAt != nil {
			t.Error("rascunho não deveria ter publishedAt")
		}
		if content.AuthorID != f.editor.ID {
			t.Errorf("esperava autor %s, obteve %s", f.editor.ID, content.AuthorID)
		}
	})

	t.Run("criar já publicado carimba publishedAt", func(t *testing.T) {
		f := setupContentService(t)
		fixed := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
		f.svc.now = func() time.Time { return fixed }

		content := f.mustCreate(t, f.editor, "published", entities.StatusPublished)
		if content.PublishedAt == nil || !content.PublishedAt.Equal(fixed) {
			t.Errorf("esperava publishedAt=%v, obteve %v", fixed, content.PublishedAt)
		}
	})

	t.Run("slug duplicado é conflito", func(t *testing.T) {
		f := setupContentService(t)
		f.mustCreate(t, f.editor, "taken", entities.StatusDraft)

		_, err := f.svc.Create(f.ctx, CreateContentInput{
			Title: "T", Slug: "taken", Body: "b",
		}, f.admin)
		if !errors.Is(err, apperrors.ErrSlugAlreadyExists) {
			t.Errorf("esperava ErrSlugAlreadyExists, obteve %v", err)
		}
	})
}

func TestContentService_FindByID(t *testing.T) {
	f := setupContentService(t)
	draft := f.mustCreate(t, f.editor, "my-draft", entities.StatusDraft)
	published := f.mustCreate(t, f.editor, "public", entities.StatusPublished)

	t.Run("viewer não enxerga rascunho", func(t *testing.T) {
		_, err := f.svc.FindByID(f.ctx, draft.ID, f.viewer)
		if !errors.Is(err, apperrors.ErrForbidden) {
			t.Errorf("esperava ErrForbidden, obteve %v", err)
		}
	})

	t.Run("viewer enxerga publicado", func(t *testing.T) {
		got, err := f.svc.FindByID(f.ctx, published.ID, f.viewer)
		if err != nil {
			t.Fatalf("esperava sucesso, obteve %v", err)
		}
		if got.ID != published.ID {
			t.Errorf("esperava %s, obteve %s", published.ID, got.ID)
		}
	})

	t.Run("editor enxerga o próprio rascunho", func(t *testing.T) {
		if _, err := f.svc.FindByID(f.ctx, draft.ID, f.editor); err != nil {
			t.Errorf("esperava sucesso, obteve %v", err)
		}
	})

	t.Run("editor não enxerga rascunho de terceiro", func(t *testing.T) {
		_, err := f.svc.FindByID(f.ctx, draft.ID, f.other)
		if !errors.Is(err, apperrors.ErrForbidden) {
			t.Errorf("esperava ErrForbidden, obteve %v", err)
		}
	})

	t.Run("admin enxerga qualquer rascunho", func(t *testing.T) {
		if _, err := f.svc.FindByID(f.ctx, draft.ID, f.admin); err != nil {
			t.Errorf("esperava sucesso, obteve %v", err)
		}
	})

	t.Run("id inexistente é not found", func(t *testing.T) {
		_, err := f.svc.FindByID(f.ctx, "missing", f.admin)
		if !errors.Is(err, apperrors.ErrContentNotFound) {
			t.Errorf("esperava ErrContentNotFound, obteve %v", err)
		}
	})
}

func TestContentService_FindBySlug(t *testing.T) {
	f := setupContentService(t)
	draft := f.mustCreate(t, f.editor, "hidden-draft", entities.StatusDraft)

	t.Run("mesmas permissões da busca por id", func(t *testing.T) {
		if _, err := f.svc.FindBySlug(f.ctx, draft.Slug, f.viewer); !errors.Is(err, apperrors.ErrForbidden) {
			t.Errorf("esperava ErrForbidden para viewer, obteve %v", err)
		}
		if _, err := f.svc.FindBySlug(f.ctx, draft.Slug, f.editor); err != nil {
			t.Errorf("esperava sucesso para o autor, obteve %v", err)
		}
	})

	t.Run("slug inexistente é not found", func(t *testing.T) {
		_, err := f.svc.FindBySlug(f.ctx, "missing", f.admin)
		if !errors.Is(err, apperrors.ErrContentNotFound) {
			t.Errorf("esperava ErrContentNotFound, obteve %v", err)
		}
	})
}

func TestContentService_FindAll(t *testing.T) {
	f := setupContentService(t)
	f.mustCreate(t, f.editor, "editor-draft", entities.StatusDraft)
	f.mustCreate(t, f.editor, "editor-published", entities.StatusPublished)
	f.mustCreate(t, f.other, "other-draft", entities.StatusDraft)
	f.mustCreate(t, f.other, "other-published", entities.StatusPublished)
	f.mustCreate(t, f.other, "other-archived", entities.StatusArchived)

	slugs := func(page *ContentPage) map[string]bool {
		got := make(map[string]bool, len(page.Data))
		for _, c := range page.Data {
			got[c.Slug] = true
		}
		return got
	}

	t.Run("admin enxerga tudo", func(t *testing.T) {
		page, err := f.svc.FindAll(f.ctx, ContentQuery{}, f.admin)
		if err != nil {
			t.Fatalf("esperava sucesso, obteve %v", err)
		}
		if page.Total != 5 {
			t.Errorf("esperava total 5, obteve %d", page.Total)
		}
	})

	t.Run("viewer enxerga apenas publicado", func(t *testing.T) {
		page, err := f.svc.FindAll(f.ctx, ContentQuery{}, f.viewer)
		if err != nil {
			t.Fatalf("esperava sucesso, obteve %v", err)
		}
		if page.Total != 2 {
			t.Errorf("esperava total 2, obteve %d", page.Total)
		}
		got := slugs(page)
		if got["editor-draft"] || got["other-draft"] || got["other-archived"] {
			t.Errorf("listagem do viewer vazou não-publicado: %v", got)
		}
	})

	t.Run("filtro de status do viewer é substituído, não combinado", func(t *testing.T) {
		draft := entities.StatusDraft
		page, err := f.svc.FindAll(f.ctx, ContentQuery{Status: &draft}, f.viewer)
		if err != nil {
			t.Fatalf("esperava sucesso, obteve %v", err)
		}
		if page.Total != 2 {
			t.Errorf("esperava total 2, obteve %d", page.Total)
		}
		got := slugs(page)
		if !got["editor-published"] || !got["other-published"] {
			t.Errorf("esperava os publicados na listagem, obteve %v", got)
		}
		if got["editor-draft"] || got["other-draft"] {
			t.Errorf("pedido de DRAFT pelo viewer vazou rascunho: %v", got)
		}
	})

	t.Run("editor enxerga o próprio mais o publicado de terceiros", func(t *testing.T) {
		page, err := f.svc.FindAll(f.ctx, ContentQuery{}, f.editor)
		if err != nil {
			t.Fatalf("esperava sucesso, obteve %v", err)
		}
		got := slugs(page)
		for _, want := range []string{"editor-draft", "editor-published", "other-published"} {
			if !got[want] {
				t.Errorf("esperava %s na listagem do editor", want)
			}
		}
		if got["other-draft"] || got["other-archived"] {
			t.Errorf("listagem do editor vazou conteúdo de terceiro: %v", got)
		}
	})

	t.Run("editor com filtro DRAFT enxerga apenas os próprios rascunhos", func(t *testing.T) {
		draft := entities.StatusDraft
		page, err := f.svc.FindAll(f.ctx, ContentQuery{Status: &draft}, f.editor)
		if err != nil {
			t.Fatalf("esperava sucesso, obteve %v", err)
		}
		if page.Total != 1 {
			t.Fatalf("esperava total 1, obteve %d", page.Total)
		}
		if page.Data[0].Slug != "editor-draft" {
			t.Errorf("esperava editor-draft, obteve %s", page.Data[0].Slug)
		}
	})

	t.Run("paginação do mais recente para o mais antigo", func(t *testing.T) {
		page, err := f.svc.FindAll(f.ctx, ContentQuery{Page: 1, Limit: 2}, f.admin)
		if err != nil {
			t.Fatalf("esperava sucesso, obteve %v", err)
		}
		if len(page.Data) != 2 {
			t.Fatalf("esperava 2 itens, obteve %d", len(page.Data))
		}
		if page.Data[0].Slug != "other-archived" {
			t.Errorf("esperava o mais recente primeiro, obteve %s", page.Data[0].Slug)
		}
		if page.TotalPages != 3 {
			t.Errorf("esperava 3 páginas, obteve %d", page.TotalPages)
		}
	})

	t.Run("página e limite inválidos caem nos defaults", func(t *testing.T) {
		page, err := f.svc.FindAll(f.ctx, ContentQuery{Page: -1, Limit: 0}, f.admin)
		if err != nil {
			t.Fatalf("esperava sucesso, obteve %v", err)
		}
		if page.Page != 1 || page.Limit != 10 {
			t.Errorf("esperava page=1 limit=10, obteve page=%d limit=%d", page.Page, page.Limit)
		}
	})
}

func TestContentService_Update(t *testing.T) {
	strPtr := func(s string) *string { return &s }
	statusPtr := func(s entities.ContentStatus) *entities.ContentStatus { return &s }

	t.Run("editor não altera conteúdo de terceiro", func(t *testing.T) {
		f := setupContentService(t)
		content := f.mustCreate(t, f.editor, "mine", entities.StatusDraft)

		_, err := f.svc.Update(f.ctx, content.ID, UpdateContentInput{Title: strPtr("X")}, f.other)
		if !errors.Is(err, apperrors.ErrForbidden) {
			t.Errorf("esperava ErrForbidden, obteve %v", err)
		}
	})

	t.Run("admin altera conteúdo de qualquer autor", func(t *testing.T) {
		f := setupContentService(t)
		content := f.mustCreate(t, f.editor, "mine", entities.StatusDraft)

		updated, err := f.svc.Update(f.ctx, content.ID, UpdateContentInput{Title: strPtr("Novo")}, f.admin)
		if err != nil {
			t.Fatalf("esperava sucesso, obteve %v", err)
		}
		if updated.Title != "Novo" {
			t.Errorf("esperava título atualizado, obteve %s", updated.Title)
		}
		if updated.AuthorID != f.editor.ID {
			t.Error("autoria não pode mudar na atualização")
		}
	})

	t.Run("troca de slug para um já usado é conflito", func(t *testing.T) {
		f := setupContentService(t)
		f.mustCreate(t, f.editor, "taken", entities.StatusDraft)
		content := f.mustCreate(t, f.editor, "mine", entities.StatusDraft)

		_, err := f.svc.Update(f.ctx, content.ID, UpdateContentInput{Slug: strPtr("taken")}, f.editor)
		if !errors.Is(err, apperrors.ErrSlugAlreadyExists) {
			t.Errorf("esperava ErrSlugAlreadyExists, obteve %v", err)
		}
	})

	t.Run("publicar carimba publishedAt uma única vez", func(t *testing.T) {
		f := setupContentService(t)
		first := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
		f.svc.now = func() time.Time { return first }

		content := f.mustCreate(t, f.editor, "lifecycle", entities.StatusDraft)

		published, err := f.svc.Update(f.ctx, content.ID,
			UpdateContentInput{Status: statusPtr(entities.StatusPublished)}, f.editor)
		if err != nil {
			t.Fatalf("esperava sucesso, obteve %v", err)
		}
		if published.PublishedAt == nil || !published.PublishedAt.Equal(first) {
			t.Fatalf("esperava publishedAt=%v, obteve %v", first, published.PublishedAt)
		}

		// Arquivar e republicar mais tarde não altera o carimbo original
		f.svc.now = func() time.Time { return first.Add(48 * time.Hour) }

		_, err = f.svc.Update(f.ctx, content.ID,
			UpdateContentInput{Status: statusPtr(entities.StatusArchived)}, f.editor)
		if err != nil {
			t.Fatalf("esperava sucesso ao arquivar, obteve %v", err)
		}

		republished, err := f.svc.Update(f.ctx, content.ID,
			UpdateContentInput{Status: statusPtr(entities.StatusPublished)}, f.editor)
		if err != nil {
			t.Fatalf("esperava sucesso ao republicar, obteve %v", err)
		}
		if republished.PublishedAt == nil || !republished.PublishedAt.Equal(first) {
			t.Errorf("publishedAt foi sobrescrito: esperava %v, obteve %v", first, republished.PublishedAt)
		}
	})

	t.Run("id inexistente é not found", func(t *testing.T) {
		f := setupContentService(t)
		_, err := f.svc.Update(f.ctx, "missing", UpdateContentInput{Title: strPtr("X")}, f.admin)
		if !errors.Is(err, apperrors.ErrContentNotFound) {
			t.Errorf("esperava ErrContentNotFound, obteve %v", err)
		}
	})
}

func TestContentService_Delete(t *testing.T) {
	t.Run("viewer não deleta", func(t *testing.T) {
		f := setupContentService(t)
		content := f.mustCreate(t, f.editor, "mine", entities.StatusPublished)

		err := f.svc.Delete(f.ctx, content.ID, f.viewer)
		if !errors.Is(err, apperrors.ErrForbidden) {
			t.Errorf("esperava ErrForbidden, obteve %v", err)
		}
	})

	t.Run("editor deleta apenas o próprio", func(t *testing.T) {
		f := setupContentService(t)
		content := f.mustCreate(t, f.editor, "mine", entities.StatusDraft)

		if err := f.svc.Delete(f.ctx, content.ID, f.other); !errors.Is(err, apperrors.ErrForbidden) {
			t.Errorf("esperava ErrForbidden para terceiro, obteve %v", err)
		}
		if err := f.svc.Delete(f.ctx, content.ID, f.editor); err != nil {
			t.Errorf("esperava sucesso para o autor, obteve %v", err)
		}

		_, err := f.svc.FindByID(f.ctx, content.ID, f.admin)
		if !errors.Is(err, apperrors.ErrContentNotFound) {
			t.Errorf("esperava ErrContentNotFound após deleção, obteve %v", err)
		}
	})

	t.Run("id inexistente é not found", func(t *testing.T) {
		f := setupContentService(t)
		err := f.svc.Delete(f.ctx, "missing", f.admin)
		if !errors.Is(err, apperrors.ErrContentNotFound) {
			t.Errorf("esperava ErrContentNotFound, obteve %v", err)
		}
	})
}
