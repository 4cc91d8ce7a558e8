package services

import (
	"database/sql"
	"strings"

	"krishifarm/internal/domain"
	"krishifarm/internal/repos"

	"github.com/google/uuid"
)

type InterestService struct {
	Crops     *repos.CropRepo
	Interests *repos.InterestRepo
}

func NewInterestService(crops *repos.CropRepo, interests *repos.InterestRepo) *InterestService {
	return &InterestService{Crops: crops, Interests: interests}
}

// InterestInput holds the validated fields of a buyer's submission.
type InterestInput struct {
	UserEmail string
	UserName  string
	Quantity  int
	Message   string
}

// Submit appends a pending interest to the crop's sequence after the
// workflow guards: the crop must exist, owners cannot bid on their own
// listing, one interest per buyer per crop, and the request must fit the
// available stock.
func (s *InterestService) Submit(cropID string, in InterestInput) (domain.Interest, error) {
	crop, err := s.Crops.Get(cropID)
	if err == sql.ErrNoRows {
		return domain.Interest{}, domain.ErrCropNotFound
	}
	if err != nil {
		return domain.Interest{}, err
	}

	if strings.EqualFold(crop.Owner.Email, in.UserEmail) {
		return domain.Interest{}, domain.ErrSelfInterest
	}

	dup, err := s.Interests.Exists(cropID, in.UserEmail)
	if err != nil {
		return domain.Interest{}, err
	}
	if dup {
		return domain.Interest{}, domain.ErrDuplicateInterest
	}

	if in.Quantity > crop.Quantity {
		return domain.Interest{}, domain.ErrInsufficientQuantity
	}

	interest := domain.Interest{
		ID:        uuid.NewString(),
		CropID:    cropID,
		UserEmail: in.UserEmail,
		UserName:  in.UserName,
		Quantity:  in.Quantity,
		Message:   in.Message,
		Status:    domain.StatusPending,
	}
	if err := s.Interests.Append(interest); err != nil {
		return domain.Interest{}, err
	}
	return interest, nil
}

// Decide applies the owner's accept/reject decision. The transition is a
// one-way move out of pending; acceptance reserves the requested quantity
// in the same transaction.
func (s *InterestService) Decide(cropID, interestID, status string) error {
	if status != domain.StatusAccepted && status != domain.StatusRejected {
		return domain.ErrInvalidStatus
	}
	return s.Interests.Decide(cropID, interestID, status)
}

// MyInterests lists the buyer's own interest per crop, joined with the crop
// name and owner name.
func (s *InterestService) MyInterests(buyerEmail string) ([]domain.InterestView, error) {
	views, err := s.Interests.ViewsByBuyer(buyerEmail)
	if err != nil {
		return nil, err
	}
	if views == nil {
		views = []domain.InterestView{}
	}
	return views, nil
}
