package reports

import "context"

type StoreAPI interface {
	ListJobRuns(ctx context.Context, filter JobRunFilter, limit, offset int) ([]JobRun, error)
	CountJobRuns(ctx context.Context, filter JobRunFilter) (int64, error)
	JobRunByID(ctx context.Context, runID string) (JobRun, error)
}

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

// JobRunPage is one page of job runs plus the unpaged total.
type JobRunPage struct {
	Runs  []JobRun `json:"runs"`
	Total int64    `json:"total"`
}

func (s *Service) JobRuns(ctx context.Context, filter JobRunFilter, limit, offset int) (JobRunPage, error) {
	if filter.StartedFrom != nil && filter.StartedTo != nil && filter.StartedTo.Before(*filter.StartedFrom) {
		return JobRunPage{}, ErrInvalidRange
	}
	total, err := s.Store.CountJobRuns(ctx, filter)
	if err != nil {
		return JobRunPage{}, err
	}
	runs, err := s.Store.ListJobRuns(ctx, filter, limit, offset)
	if err != nil {
		return JobRunPage{}, err
	}
	return JobRunPage{Runs: runs, Total: total}, nil
}

func (s *Service) JobRun(ctx context.Context, runID string) (JobRun, error) {
	return s.Store.JobRunByID(ctx, runID)
}
