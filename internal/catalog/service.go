package catalog

import (
	"fmt"
)

// ErrTourNotFound is returned when a tour id has no match in the catalog.
var ErrTourNotFound = fmt.Errorf("tour not found")

// TransferGroups is the display grouping the transport section uses.
type TransferGroups struct {
	Local      []TransferRoute `json:"local"`
	Connection []TransferRoute `json:"connection"`
}

// Service interface defines the contract for catalog browsing
type Service interface {
	ListTours(category string) ([]Tour, error)
	GetTour(id string) (Tour, error)
	ListTransfers() TransferGroups
}

type service struct {
	repo Repository
}

// NewService creates a new catalog service instance
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// ListTours returns the merged catalog, optionally filtered to one category.
func (s *service) ListTours(category string) ([]Tour, error) {
	if category == "" {
		return s.repo.AllTours(), nil
	}

	switch Category(category) {
	case CategoryAquatic, CategoryAdventure, CategoryWalking:
		return s.repo.ToursByCategory(Category(category)), nil
	default:
		return nil, fmt.Errorf("unknown tour category: %s", category)
	}
}

func (s *service) GetTour(id string) (Tour, error) {
	tour, found := s.repo.FindTourByID(id)
	if !found {
		return Tour{}, ErrTourNotFound
	}
	return tour, nil
}

// ListTransfers groups routes by type for display. Routes with an
// unexpected type tag land in the Connection group rather than vanishing.
func (s *service) ListTransfers() TransferGroups {
	var groups TransferGroups
	for _, transfer := range s.repo.AllTransfers() {
		if transfer.Type == TransferTypeLocal {
			groups.Local = append(groups.Local, transfer)
		} else {
			groups.Connection = append(groups.Connection, transfer)
		}
	}
	return groups
}
