package book

import "context"

// topRatedLimit caps the number of entries returned by TopRated.
const topRatedLimit = 5

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Book, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Book, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) CreateBatch(ctx context.Context, books []Book) error {
	return s.repo.CreateBatch(ctx, books)
}

func (s *Service) Update(ctx context.Context, id int64, patch Patch) error {
	return s.repo.Update(ctx, id, patch)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) TopRated(ctx context.Context) ([]RatedBook, error) {
	return s.repo.TopRated(ctx, topRatedLimit)
}
