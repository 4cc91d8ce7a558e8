package services

import (
	"krishifarm/internal/domain"
	"krishifarm/internal/repos"

	"github.com/google/uuid"
)

type ListingService struct {
	Crops *repos.CropRepo
}

func NewListingService(crops *repos.CropRepo) *ListingService {
	return &ListingService{Crops: crops}
}

// ListingInput holds the validated fields for a new listing.
type ListingInput struct {
	Name         string
	Type         string
	PricePerUnit float64
	Unit         string
	Quantity     int
	Description  string
	Location     string
	Image        string
	OwnerName    string
	OwnerEmail   string
}

// Create stores a new listing and returns its generated id.
func (s *ListingService) Create(in ListingInput) (string, error) {
	id := uuid.NewString()
	err := s.Crops.Insert(domain.Crop{
		ID:           id,
		Name:         in.Name,
		Type:         in.Type,
		PricePerUnit: in.PricePerUnit,
		Unit:         in.Unit,
		Quantity:     in.Quantity,
		Description:  in.Description,
		Location:     in.Location,
		Image:        in.Image,
		Owner:        domain.Owner{Name: in.OwnerName, Email: in.OwnerEmail},
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// Update replaces the mutable listing fields and stamps updatedAt.
func (s *ListingService) Update(id string, in ListingInput) error {
	n, err := s.Crops.Update(id, repos.CropUpdate{
		Name:         in.Name,
		Type:         in.Type,
		PricePerUnit: in.PricePerUnit,
		Unit:         in.Unit,
		Quantity:     in.Quantity,
		Description:  in.Description,
		Location:     in.Location,
		Image:        in.Image,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrCropNotFound
	}
	return nil
}

// Delete removes a listing together with its embedded interests.
func (s *ListingService) Delete(id string) (int64, error) {
	n, err := s.Crops.Delete(id)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, domain.ErrCropNotFound
	}
	return n, nil
}

func (s *ListingService) ByOwner(email string) ([]domain.Crop, error) {
	return s.Crops.ByOwner(email)
}
