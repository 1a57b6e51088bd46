package core

import (
	"context"

	"jamaah/pkg/domain"
)

// ListArticles returns articles newest first.
func (s *Service) ListArticles(ctx context.Context) ([]domain.Article, error) {
	return run(ctx, s, "articles.list", func(ctx context.Context) ([]domain.Article, error) {
		return s.store.Articles().List(ctx)
	})
}

// GetArticle returns one article.
func (s *Service) GetArticle(ctx context.Context, id string) (domain.Article, error) {
	return run(ctx, s, "articles.get", func(ctx context.Context) (domain.Article, error) {
		return s.store.Articles().Get(ctx, id)
	})
}

// CreateArticle stores an article; status defaults to draft.
func (s *Service) CreateArticle(ctx context.Context, a domain.Article) (domain.Article, error) {
	if a.Status == "" {
		a.Status = domain.ArticleDraft
	}
	return run(ctx, s, "articles.create", func(ctx context.Context) (domain.Article, error) {
		return create(ctx, s, s.store.Articles(), a)
	})
}

// UpdateArticle merges patch into the article.
func (s *Service) UpdateArticle(ctx context.Context, id string, patch domain.ArticlePatch) (domain.Article, error) {
	return run(ctx, s, "articles.update", func(ctx context.Context) (domain.Article, error) {
		return update(ctx, s, s.store.Articles(), id, patch, patch.Apply)
	})
}

// DeleteArticle removes the article if present.
func (s *Service) DeleteArticle(ctx context.Context, id string) error {
	_, err := run(ctx, s, "articles.delete", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.store.Articles().Delete(ctx, id)
	})
	return err
}

// ToggleArticleStatus flips between draft and published.
func (s *Service) ToggleArticleStatus(ctx context.Context, id string) (domain.Article, error) {
	return run(ctx, s, "articles.toggle", func(ctx context.Context) (domain.Article, error) {
		return s.store.Articles().Update(ctx, id, setter(func(a *domain.Article) { a.Status = a.Status.Toggled() }))
	})
}
