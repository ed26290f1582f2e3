// Validates the embedded tour and transfer catalogs. Run after editing any
// of the JSON files under internal/catalog/data to catch bad entries before
// they ship.
package main

import (
	"fmt"
	"os"

	"selvatours/internal/booking"
	"selvatours/internal/catalog"
)

func main() {
	tours, transfers, err := catalog.LoadFixtures()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load fixtures: %v\n", err)
		os.Exit(1)
	}

	var problems []string

	seenNames := make(map[string]string)
	seenIDs := make(map[string]string)
	for _, tour := range tours {
		if tour.ID == "" {
			problems = append(problems, fmt.Sprintf("tour %q has no id", tour.Name))
		} else if prev, ok := seenIDs[tour.ID]; ok {
			problems = append(problems, fmt.Sprintf("tour id %q used by both %q and %q", tour.ID, prev, tour.Name))
		} else {
			seenIDs[tour.ID] = tour.Name
		}

		if tour.Name == "" {
			problems = append(problems, fmt.Sprintf("tour %s has no name", tour.ID))
		} else if prev, ok := seenNames[tour.Name]; ok {
			problems = append(problems, fmt.Sprintf("tour name %q appears in both %s and %s", tour.Name, prev, tour.ID))
		} else {
			seenNames[tour.Name] = tour.ID
		}

		if tour.RegularPrice <= 0 {
			problems = append(problems, fmt.Sprintf("tour %q has non-positive regular price %.2f", tour.Name, tour.RegularPrice))
		}
		if tour.PrivateTier.Available && tour.PrivateTier.Price <= 0 {
			problems = append(problems, fmt.Sprintf("tour %q has non-positive private price %.2f", tour.Name, tour.PrivateTier.Price))
		}

		slots := tour.ScheduleSlots()
		if len(slots) == 0 {
			problems = append(problems, fmt.Sprintf("tour %q has an empty schedule", tour.Name))
		}
		for _, slot := range slots {
			if slot != "" && booking.ConvertToMinutes(slot) == 0 && slot != "12:00 AM" && slot != "0:00" && slot != "00:00" {
				problems = append(problems, fmt.Sprintf("tour %q has unparseable schedule slot %q", tour.Name, slot))
			}
		}
	}

	seenRouteIDs := make(map[string]string)
	for _, transfer := range transfers {
		if transfer.ID == "" {
			problems = append(problems, fmt.Sprintf("transfer %q has no id", transfer.Route))
		} else if prev, ok := seenRouteIDs[transfer.ID]; ok {
			problems = append(problems, fmt.Sprintf("transfer id %q used by both %q and %q", transfer.ID, prev, transfer.Route))
		} else {
			seenRouteIDs[transfer.ID] = transfer.Route
		}

		if transfer.Route == "" {
			problems = append(problems, fmt.Sprintf("transfer %s has no route", transfer.ID))
		}
		if transfer.Type != catalog.TransferTypeLocal && transfer.Type != catalog.TransferTypeConnection {
			problems = append(problems, fmt.Sprintf("transfer %q has unknown type %q", transfer.Route, transfer.Type))
		}
		if transfer.Prices.UpTo4 <= 0 || transfer.Prices.UpTo9 <= 0 || transfer.Prices.UpTo15 <= 0 {
			problems = append(problems, fmt.Sprintf("transfer %q has an incomplete price table", transfer.Route))
		}
		if transfer.Prices.UpTo4 > transfer.Prices.UpTo9 || transfer.Prices.UpTo9 > transfer.Prices.UpTo15 {
			problems = append(problems, fmt.Sprintf("transfer %q has a non-monotonic price table", transfer.Route))
		}
	}

	if len(problems) > 0 {
		fmt.Fprintf(os.Stderr, "❌ Catalog validation failed with %d problem(s):\n", len(problems))
		for _, p := range problems {
			fmt.Fprintf(os.Stderr, "  - %s\n", p)
		}
		os.Exit(1)
	}

	categories := make(map[catalog.Category]int)
	for _, tour := range tours {
		categories[tour.Category]++
	}

	fmt.Println("✅ Catalog fixtures are valid")
	fmt.Printf("   Tours: %d (aquatic %d, adventure %d, walking %d)\n",
		len(tours),
		categories[catalog.CategoryAquatic],
		categories[catalog.CategoryAdventure],
		categories[catalog.CategoryWalking],
	)
	fmt.Printf("   Transfers: %d\n", len(transfers))
}
