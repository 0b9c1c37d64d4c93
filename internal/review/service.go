package review

import "context"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, rev *Review) error {
	return s.repo.Create(ctx, rev)
}

func (s *Service) ListAll(ctx context.Context) ([]Review, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) ListForBook(ctx context.Context, bookID int64) ([]Review, error) {
	return s.repo.ListForBook(ctx, bookID)
}
