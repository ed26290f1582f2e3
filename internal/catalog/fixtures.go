package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
)

//go:embed data/aquatic.json data/adventure.json data/hiking.json data/transfers.json
var fixtureFS embed.FS

// tourFixtures lists the tour catalog files in merge order. Lookups walk
// the merged catalog in exactly this order: aquatic, adventure, walking.
var tourFixtures = []struct {
	path     string
	category Category
}{
	{"data/aquatic.json", CategoryAquatic},
	{"data/adventure.json", CategoryAdventure},
	{"data/hiking.json", CategoryWalking},
}

const transferFixture = "data/transfers.json"

// LoadFixtures decodes the embedded catalog files into the merged tour
// list and the transfer list. Private tiers are resolved here, once, so
// the rest of the service never re-checks the "Not Applicable" sentinel.
func LoadFixtures() ([]Tour, []TransferRoute, error) {
	var tours []Tour
	for _, fixture := range tourFixtures {
		data, err := fixtureFS.ReadFile(fixture.path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read %s: %w", fixture.path, err)
		}

		var batch []Tour
		if err := json.Unmarshal(data, &batch); err != nil {
			return nil, nil, fmt.Errorf("failed to decode %s: %w", fixture.path, err)
		}

		for i := range batch {
			batch[i].Category = fixture.category
		}
		tours = append(tours, batch...)
	}

	data, err := fixtureFS.ReadFile(transferFixture)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", transferFixture, err)
	}

	var transfers []TransferRoute
	if err := json.Unmarshal(data, &transfers); err != nil {
		return nil, nil, fmt.Errorf("failed to decode %s: %w", transferFixture, err)
	}

	return tours, transfers, nil
}
