package author

import "context"

// Lookup resolves an author name to an encyclopedia summary.
type Lookup interface {
	PageSummary(ctx context.Context, name string) (string, error)
}

// Summary is the proxied lookup result.
type Summary struct {
	Author  string `json:"author"`
	Summary string `json:"summary"`
}

type Service struct {
	lookup Lookup
}

func NewService(lookup Lookup) *Service {
	return &Service{lookup: lookup}
}

func (s *Service) Summary(ctx context.Context, name string) (Summary, error) {
	text, err := s.lookup.PageSummary(ctx, name)
	if err != nil {
		return Summary{}, err
	}
	return Summary{Author: name, Summary: text}, nil
}
