package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/eusluer/bosphorus-fellas-api/internal/models"
	"github.com/eusluer/bosphorus-fellas-api/internal/repository"
)

// ContentService covers the two flat content types, sponsors and news.
type ContentService struct {
	sponsors repository.SponsorRepository
	news     repository.NewsRepository
	log      zerolog.Logger
}

func NewContentService(
	sponsors repository.SponsorRepository,
	news repository.NewsRepository,
	log zerolog.Logger,
) *ContentService {
	return &ContentService{
		sponsors: sponsors,
		news:     news,
		log:      log,
	}
}

func (s *ContentService) CreateSponsor(ctx context.Context, sponsor models.Sponsor) (int64, error) {
	id, err := s.sponsors.Create(ctx, sponsor)
	if err != nil {
		return 0, err
	}
	s.log.Info().Int64("sponsor_id", id).Msg("sponsor created")
	return id, nil
}

func (s *ContentService) UpdateSponsor(ctx context.Context, sponsor models.Sponsor) error {
	return s.sponsors.Update(ctx, sponsor)
}

func (s *ContentService) SponsorByID(ctx context.Context, id int64) (models.Sponsor, error) {
	return s.sponsors.FindByID(ctx, id)
}

func (s *ContentService) Sponsors(ctx context.Context) ([]models.Sponsor, error) {
	return s.sponsors.List(ctx)
}

func (s *ContentService) CreateNews(ctx context.Context, item models.News) (int64, error) {
	id, err := s.news.Create(ctx, item)
	if err != nil {
		return 0, err
	}
	s.log.Info().Int64("news_id", id).Msg("news created")
	return id, nil
}

func (s *ContentService) UpdateNews(ctx context.Context, item models.News) error {
	return s.news.Update(ctx, item)
}

func (s *ContentService) NewsByID(ctx context.Context, id int64) (models.News, error) {
	return s.news.FindByID(ctx, id)
}

func (s *ContentService) News(ctx context.Context) ([]models.News, error) {
	return s.news.List(ctx)
}
