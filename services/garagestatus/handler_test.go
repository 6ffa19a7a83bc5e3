package garagestatus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"garagewatch-backend/lib/scrapers/sjsuparking"
	"garagewatch-backend/lib/sqlutil"

	"github.com/stretchr/testify/require"
)

func pageServer(t *testing.T, page string) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	t.Cleanup(server.Close)
	return server
}

func testHandler(t *testing.T, url string, sink Sink) Handler {
	return Handler{
		Secret: "s3cret",
		Service: Service{
			Client: sjsuparking.NewClient(),
			Url:    url,
			Sink:   sink,
		},
	}
}

func doRequest(handler Handler, method, target string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func okSink() Sink {
	return sinkFunc(func(ctx context.Context, readings []Reading) (int, error) {
		return len(readings), nil
	})
}

func TestHandlerMethodNotAllowed(t *testing.T) {
	server := pageServer(t, testPage)
	handler := testHandler(t, server.URL, okSink())

	rec := doRequest(handler, http.MethodPost, "/?token=s3cret", nil)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Equal(t, "GET, HEAD", rec.Header().Get("Allow"))
}

func TestHandlerUnauthorized(t *testing.T) {
	server := pageServer(t, testPage)
	handler := testHandler(t, server.URL, okSink())

	rec := doRequest(handler, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(handler, http.MethodGet, "/", map[string]string{
		"Authorization": "Bearer wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(handler, http.MethodGet, "/?token=wrong", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandlerMissingSecret(t *testing.T) {
	server := pageServer(t, testPage)
	handler := testHandler(t, server.URL, okSink())
	handler.Secret = ""

	rec := doRequest(handler, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "config", decodeBody(t, rec)["error"])
}

func TestHandlerMissingSink(t *testing.T) {
	fetches := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
	}))
	defer server.Close()

	handler := testHandler(t, server.URL, nil)
	rec := doRequest(handler, http.MethodGet, "/?token=s3cret", nil)

	// sink configuration is checked before the upstream is ever hit
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "config", decodeBody(t, rec)["error"])
	require.Equal(t, 0, fetches)
}

func TestHandlerSuccess(t *testing.T) {
	server := pageServer(t, testPage)
	path := filepath.Join(t.TempDir(), "garagestatus.db")
	sink, err := NewSqliteSink(sqlutil.Config{File: path})
	require.NoError(t, err)

	handler := testHandler(t, server.URL, sink)
	rec := doRequest(handler, http.MethodGet, "/", map[string]string{
		"Authorization": "Bearer s3cret",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	require.Equal(t, true, body["ok"])
	require.Equal(t, float64(2), body["inserted"])
	require.Equal(t, "2024-09-03 2:45 PM", body["lastUpdated"])
	require.Equal(t, map[string]any{
		"South Garage": float64(45),
		"North Garage": float64(100),
	}, body["statuses"])
	require.NotContains(t, body, "note")
}

func TestHandlerTokenQueryParam(t *testing.T) {
	server := pageServer(t, testPage)
	handler := testHandler(t, server.URL, okSink())

	rec := doRequest(handler, http.MethodGet, "/?token=s3cret", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHandlerZeroGaragesParsed(t *testing.T) {
	server := pageServer(t, `<html><body><p>maintenance</p></body></html>`)
	handler := testHandler(t, server.URL, okSink())

	rec := doRequest(handler, http.MethodGet, "/?token=s3cret", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	require.Equal(t, true, body["ok"])
	require.Equal(t, float64(0), body["inserted"])
	require.NotEmpty(t, body["note"])
}

func TestHandlerFetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down for maintenance", http.StatusBadGateway)
	}))
	defer server.Close()

	handler := testHandler(t, server.URL, okSink())
	rec := doRequest(handler, http.MethodGet, "/?token=s3cret", nil)

	require.Equal(t, http.StatusBadGateway, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, "fetch", body["error"])
	require.Contains(t, body["message"], "down for maintenance")
}

func TestHandlerSinkFailure(t *testing.T) {
	server := pageServer(t, testPage)
	handler := testHandler(t, server.URL, sinkFunc(func(ctx context.Context, readings []Reading) (int, error) {
		return 0, fmt.Errorf("%w: status 500: out of disk", ErrSinkWrite)
	}))

	rec := doRequest(handler, http.MethodGet, "/?token=s3cret", nil)
	require.Equal(t, http.StatusBadGateway, rec.Code)

	// the extracted statuses ride along with the error report
	body := decodeBody(t, rec)
	require.Equal(t, "sink", body["error"])
	require.Contains(t, body["message"], "out of disk")
	require.Equal(t, map[string]any{
		"South Garage": float64(45),
		"North Garage": float64(100),
	}, body["statuses"])
	require.NotEmpty(t, body["fetchedAt"])
}
