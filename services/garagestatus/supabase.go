package garagestatus

import (
	"context"
	"fmt"
	"strings"
	"time"

	"garagewatch-backend/lib/telemetry"
	"garagewatch-backend/lib/textutil"

	"github.com/go-resty/resty/v2"
)

type SupabaseConfig struct {
	Url string `json:"url"`
	Key string `json:"key"`
}

// Writes batches to a Supabase table through the PostgREST bulk insert
// endpoint. Any non-2xx response fails the whole batch; PostgREST does
// not perform partial inserts.
type SupabaseSink struct {
	http *resty.Client
}

func NewSupabaseSink(config SupabaseConfig) (*SupabaseSink, error) {
	if config.Url == "" || config.Key == "" {
		return nil, fmt.Errorf("%w: supabase url or key is missing", ErrSinkConfig)
	}

	client := resty.New()
	client.SetBaseURL(strings.TrimRight(config.Url, "/"))
	client.SetTimeout(time.Second * 10)
	client.SetHeader("apikey", config.Key)
	client.SetAuthToken(config.Key)
	client.SetHeader("Prefer", "return=minimal")
	telemetry.InstrumentResty(client, "garagestatus/supabase")

	return &SupabaseSink{http: client}, nil
}

type supabaseRow struct {
	FetchedAt   string  `json:"fetched_at"`
	LastUpdated *string `json:"last_updated"`
	Garage      string  `json:"garage"`
	Status      int     `json:"status"`
	SourceUrl   string  `json:"source_url"`
}

func (s *SupabaseSink) Write(ctx context.Context, readings []Reading) (int, error) {
	if len(readings) == 0 {
		return 0, nil
	}

	rows := make([]supabaseRow, len(readings))
	for i, r := range readings {
		var lastUpdated *string
		if r.LastUpdated != "" {
			lastUpdated = &readings[i].LastUpdated
		}
		rows[i] = supabaseRow{
			FetchedAt:   r.FetchedAt.UTC().Format(time.RFC3339),
			LastUpdated: lastUpdated,
			Garage:      r.Garage,
			Status:      r.Status,
			SourceUrl:   r.SourceUrl,
		}
	}

	res, err := s.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(rows).
		Post("/rest/v1/garage_status")
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSinkWrite, err)
	}
	if res.IsError() {
		return 0, fmt.Errorf(
			"%w: status %s: %s",
			ErrSinkWrite, res.Status(), textutil.Truncate(res.String(), maxErrorDetail),
		)
	}

	return len(readings), nil
}
