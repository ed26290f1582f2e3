package catalog

// Repository provides lookups over the static catalogs. The data is loaded
// once at startup and never mutated, so everything here is read-only and
// safe for concurrent use.
type Repository interface {
	AllTours() []Tour
	ToursByCategory(category Category) []Tour
	FindTourByName(name string) (Tour, bool)
	FindTourByID(id string) (Tour, bool)

	AllTransfers() []TransferRoute
	FindTransferByRoute(route string) (TransferRoute, bool)
	FindTransferByID(id string) (TransferRoute, bool)
}

type repository struct {
	tours     []Tour
	transfers []TransferRoute
}

// NewRepository creates a repository over an already-merged tour list and
// a transfer list.
func NewRepository(tours []Tour, transfers []TransferRoute) Repository {
	return &repository{
		tours:     tours,
		transfers: transfers,
	}
}

// NewRepositoryFromFixtures loads the embedded catalog fixtures.
func NewRepositoryFromFixtures() (Repository, error) {
	tours, transfers, err := LoadFixtures()
	if err != nil {
		return nil, err
	}
	return NewRepository(tours, transfers), nil
}

func (r *repository) AllTours() []Tour {
	return r.tours
}

func (r *repository) ToursByCategory(category Category) []Tour {
	var result []Tour
	for _, tour := range r.tours {
		if tour.Category == category {
			result = append(result, tour)
		}
	}
	return result
}

// FindTourByName does an exact-match scan in merged catalog order, so the
// first occurrence wins if a name is ever duplicated across files.
func (r *repository) FindTourByName(name string) (Tour, bool) {
	for _, tour := range r.tours {
		if tour.Name == name {
			return tour, true
		}
	}
	return Tour{}, false
}

func (r *repository) FindTourByID(id string) (Tour, bool) {
	for _, tour := range r.tours {
		if tour.ID == id {
			return tour, true
		}
	}
	return Tour{}, false
}

func (r *repository) AllTransfers() []TransferRoute {
	return r.transfers
}

func (r *repository) FindTransferByRoute(route string) (TransferRoute, bool) {
	for _, transfer := range r.transfers {
		if transfer.Route == route {
			return transfer, true
		}
	}
	return TransferRoute{}, false
}

func (r *repository) FindTransferByID(id string) (TransferRoute, bool) {
	for _, transfer := range r.transfers {
		if transfer.ID == id {
			return transfer, true
		}
	}
	return TransferRoute{}, false
}
