package garagestatus

import (
	"context"
	"time"

	"garagewatch-backend/lib/scrapers/sjsuparking"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/garagestatus")

// One scrape-and-store pipeline. A nil Sink skips persistence, which the
// CLIs use to keep running with a warning when credentials are absent.
type Service struct {
	Client *resty.Client
	Url    string
	Sink   Sink
}

type Result struct {
	FetchedAt   time.Time
	LastUpdated string
	Statuses    map[string]int
	Inserted    int
}

// Runs one invocation end to end: fetch, parse, assemble, persist, in
// strict sequence. On a sink failure the returned Result still carries
// the extracted statuses so callers can report them alongside the error.
func (s Service) Run(ctx context.Context) (Result, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	html, err := sjsuparking.Fetch(ctx, s.Client, s.Url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch source page")
		return Result{}, err
	}
	doc, err := sjsuparking.Parse(html)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse source page")
		return Result{}, err
	}

	fetchedAt := time.Now().UTC()
	result := Result{
		FetchedAt:   fetchedAt,
		LastUpdated: sjsuparking.LastUpdated(doc),
		Statuses:    sjsuparking.Statuses(ctx, doc),
	}
	span.SetAttributes(attribute.Int("statuses", len(result.Statuses)))

	if s.Sink == nil {
		return result, nil
	}

	readings := AssembleReadings(fetchedAt, result.LastUpdated, result.Statuses, s.Url)
	inserted, err := s.Sink.Write(ctx, readings)
	result.Inserted = inserted
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to write readings")
		return result, err
	}

	span.SetAttributes(attribute.Int("inserted", inserted))
	return result, nil
}
