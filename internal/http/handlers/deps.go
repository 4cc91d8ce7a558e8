package handlers

import (
	"krishifarm/internal/repos"
	"krishifarm/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	CropHandler     *CropHandler
	ListingHandler  *ListingHandler
	InterestHandler *InterestHandler
	UserHandler     *UserHandler
}

func NewDeps(db *sqlx.DB) *Deps {
	cropRepo := repos.NewCropRepo(db)
	interestRepo := repos.NewInterestRepo(db)
	userRepo := repos.NewUserRepo(db)

	catalogSvc := services.NewCatalogService(cropRepo, interestRepo)
	listingSvc := services.NewListingService(cropRepo)
	interestSvc := services.NewInterestService(cropRepo, interestRepo)

	return &Deps{
		CropHandler:     &CropHandler{Catalog: catalogSvc},
		ListingHandler:  &ListingHandler{Listings: listingSvc},
		InterestHandler: &InterestHandler{Interests: interestSvc},
		UserHandler:     &UserHandler{Users: userRepo},
	}
}
