// Package sjsuparking scrapes the SJSU parking garage status page.
//
// The page is not structured data: garage sections are located by their
// headings and statuses are pulled out of the surrounding text with
// bounded patterns, so a garage whose section is missing or malformed is
// simply absent from the output.
package sjsuparking

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"garagewatch-backend/lib/htmlutil"
	"garagewatch-backend/lib/telemetry"
	"garagewatch-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("scrapers/sjsuparking")

const SourceUrl = "https://sjsuparkingstatus.sjsu.edu/GarageStatusPlain"

// The closed set of garages the campus publishes, in display order.
// Statuses are never inferred for names outside this list.
var Garages = []string{
	"South Garage",
	"North Garage",
	"West Garage",
	"South Campus Garage",
}

var ErrFetch = errors.New("failed to fetch garage status page")

func NewClient() *resty.Client {
	client := resty.New()
	client.SetTimeout(time.Second * 10)
	// the upstream site serves a misconfigured certificate, the readings
	// on it are public either way
	client.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	telemetry.InstrumentResty(client, "scrapers/sjsuparking/http")
	return client
}

// Returns the raw page body. Network failures, timeouts and non-2xx
// responses all wrap ErrFetch; there are no retries.
func Fetch(ctx context.Context, client *resty.Client, url string) (string, error) {
	res, err := client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetch, err)
	}
	if res.IsError() {
		return "", fmt.Errorf(
			"%w: status %s: %s",
			ErrFetch, res.Status(), textutil.Truncate(res.String(), 256),
		)
	}
	return res.String(), nil
}

func Parse(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

var lastUpdatedRegex = regexp.MustCompile(`(?i)\bLast updated\b\s+(.+?)(?:\s+Refresh\b|$)`)

// Pulls the free-text "Last updated ..." caption out of the page, up to
// the Refresh control that follows it. Returns "" when no caption is
// recognizable; the caption's format is not guaranteed by the source so
// it is never parsed into a time.
func LastUpdated(doc *goquery.Document) string {
	root := doc.Get(0)
	if root == nil {
		return ""
	}
	text := htmlutil.FlattenText(root)

	groups := lastUpdatedRegex.FindStringSubmatch(text)
	if len(groups) < 2 {
		return ""
	}
	return textutil.CollapseWhitespace(groups[1])
}

// Maps each known garage to its fill percentage. Garages whose heading
// or status cannot be located are left out rather than reported as
// errors, the page legitimately drops sections from time to time.
func Statuses(ctx context.Context, doc *goquery.Document) map[string]int {
	ctx, span := tracer.Start(ctx, "Statuses")
	defer span.End()

	statuses := map[string]int{}
	for _, garage := range Garages {
		value, ok := garageStatus(doc, garage)
		if !ok {
			continue
		}
		statuses[garage] = value
		span.AddEvent("garage", trace.WithAttributes(
			attribute.String("name", garage),
			attribute.Int("status", value),
		))
	}

	span.SetAttributes(attribute.Int("parsed", len(statuses)))
	return statuses
}

func garageStatus(doc *goquery.Document, garage string) (int, bool) {
	var heading *goquery.Selection
	doc.Find("h2").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if strings.Contains(strings.TrimSpace(h.Text()), garage) {
			heading = h
			return false
		}
		return true
	})
	if heading == nil {
		return 0, false
	}

	parent := heading.Parent()
	if parent.Length() == 0 {
		return 0, false
	}

	groups := statusRegex(garage).FindStringSubmatch(parent.Text())
	if len(groups) < 2 {
		return 0, false
	}
	return normalizeStatus(groups[1])
}

// Matches the garage name followed by its status token within the
// enclosing section's text. An address fragment like "330 S 7th St" may
// sit between the two; the lazy quantifiers keep the match from running
// into another garage's section. The status token is either the word
// "Full" or a number with an optional percent sign; a bare number must
// end at whitespace so the digits of an ordinal street name ("7th St")
// never pass for a status.
func statusRegex(garage string) *regexp.Regexp {
	return regexp.MustCompile(
		`(?is)` + regexp.QuoteMeta(garage) +
			`.*?\s+(?:\d+\s+[SNWE].*?\s+)?(Full|\d+\s*%|\d+(?:\s|$))`,
	)
}

func normalizeStatus(token string) (int, bool) {
	if strings.Contains(strings.ToLower(token), "full") {
		return 100, true
	}
	digits := strings.TrimSpace(strings.ReplaceAll(token, "%", ""))
	value, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	// a percentage outside this range means the pattern latched onto
	// something that isn't a fill status, e.g. a street number
	if value < 0 || value > 100 {
		return 0, false
	}
	return value, true
}
