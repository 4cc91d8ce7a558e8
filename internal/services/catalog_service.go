package services

import (
	"database/sql"

	"krishifarm/internal/domain"
	"krishifarm/internal/repos"
)

// latestFeedSize caps the /latestCrops convenience feed.
const latestFeedSize = 8

type CatalogService struct {
	Crops     *repos.CropRepo
	Interests *repos.InterestRepo
}

func NewCatalogService(crops *repos.CropRepo, interests *repos.InterestRepo) *CatalogService {
	return &CatalogService{Crops: crops, Interests: interests}
}

// Browse returns one page of listings matching the filter plus the total
// match count for pagination metadata.
func (s *CatalogService) Browse(f domain.CropFilter, page, limit int) (domain.CropPage, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 8
	}
	offset := (page - 1) * limit

	crops, err := s.Crops.Search(f, limit, offset)
	if err != nil {
		return domain.CropPage{}, err
	}
	total, err := s.Crops.Count(f)
	if err != nil {
		return domain.CropPage{}, err
	}
	crops, err = s.attachInterests(crops)
	if err != nil {
		return domain.CropPage{}, err
	}
	return domain.CropPage{Total: total, Page: page, Limit: limit, Crops: crops}, nil
}

// Latest is the unfiltered newest-first feed.
func (s *CatalogService) Latest() ([]domain.Crop, error) {
	crops, err := s.Crops.Latest(latestFeedSize)
	if err != nil {
		return nil, err
	}
	return s.attachInterests(crops)
}

func (s *CatalogService) Get(id string) (domain.Crop, error) {
	crop, err := s.Crops.Get(id)
	if err == sql.ErrNoRows {
		return domain.Crop{}, domain.ErrCropNotFound
	}
	if err != nil {
		return domain.Crop{}, err
	}
	crops, err := s.attachInterests([]domain.Crop{crop})
	if err != nil {
		return domain.Crop{}, err
	}
	return crops[0], nil
}

func (s *CatalogService) Categories() ([]string, error) {
	return s.Crops.Categories()
}

// attachInterests embeds each crop's interest sequence, loaded in one batch.
func (s *CatalogService) attachInterests(crops []domain.Crop) ([]domain.Crop, error) {
	ids := make([]string, len(crops))
	for i, c := range crops {
		ids[i] = c.ID
	}
	byCrop, err := s.Interests.ForCrops(ids)
	if err != nil {
		return nil, err
	}
	for i := range crops {
		if list := byCrop[crops[i].ID]; list != nil {
			crops[i].Interests = list
		} else {
			crops[i].Interests = []domain.Interest{}
		}
	}
	return crops, nil
}
