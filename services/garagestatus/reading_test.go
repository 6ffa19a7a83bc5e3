package garagestatus

import (
	"testing"
	"time"

	"garagewatch-backend/lib/scrapers/sjsuparking"

	"github.com/stretchr/testify/require"
)

func TestAssembleReadings(t *testing.T) {
	fetchedAt := time.Date(2024, 9, 3, 21, 45, 0, 0, time.UTC)
	statuses := map[string]int{
		"South Garage": 45,
		"North Garage": 100,
		"West Garage":  3,
	}

	readings := AssembleReadings(fetchedAt, "2024-09-03 2:45 PM", statuses, sjsuparking.SourceUrl)
	require.Len(t, readings, 3)

	// garages come out in display order, absent ones contribute nothing
	require.Equal(t, "South Garage", readings[0].Garage)
	require.Equal(t, "North Garage", readings[1].Garage)
	require.Equal(t, "West Garage", readings[2].Garage)

	for _, r := range readings {
		require.Equal(t, fetchedAt, r.FetchedAt)
		require.Equal(t, "2024-09-03 2:45 PM", r.LastUpdated)
		require.Equal(t, sjsuparking.SourceUrl, r.SourceUrl)
		require.Equal(t, statuses[r.Garage], r.Status)
	}
}

func TestAssembleReadingsEmpty(t *testing.T) {
	readings := AssembleReadings(time.Now().UTC(), "", map[string]int{}, sjsuparking.SourceUrl)
	require.Len(t, readings, 0)
}
