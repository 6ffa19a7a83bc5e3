package garagestatus

import (
	"time"

	"garagewatch-backend/lib/scrapers/sjsuparking"
)

// One garage's occupancy observation at one fetch instant. Readings are
// assembled once per run and never mutated afterwards.
type Reading struct {
	FetchedAt time.Time
	// the caption copied verbatim from the page, "" when it was absent
	LastUpdated string
	Garage      string
	// fill percentage in [0, 100], "Full" normalized to 100
	Status    int
	SourceUrl string
}

// Combines one run's fetch time, caption and parsed statuses into a
// batch of readings. Every reading in the batch shares the same
// FetchedAt, LastUpdated and SourceUrl; garages absent from the map
// contribute nothing. Pure, no network or storage access.
func AssembleReadings(fetchedAt time.Time, lastUpdated string, statuses map[string]int, sourceUrl string) []Reading {
	var readings []Reading
	for _, garage := range sjsuparking.Garages {
		status, ok := statuses[garage]
		if !ok {
			continue
		}
		readings = append(readings, Reading{
			FetchedAt:   fetchedAt,
			LastUpdated: lastUpdated,
			Garage:      garage,
			Status:      status,
			SourceUrl:   sourceUrl,
		})
	}
	return readings
}
