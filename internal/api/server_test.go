package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobocheung/Distributed-Web-Crawler/internal/fetch"
	"github.com/bobocheung/Distributed-Web-Crawler/internal/metrics"
)

func TestHealthz(t *testing.T) {
	t.Parallel()
	metrics.Init()

	srv := NewServer(&fetch.Ledger{}, nil)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestFailuresExposesLedger(t *testing.T) {
	t.Parallel()
	metrics.Init()

	ledger := &fetch.Ledger{}
	ledger.Append(fetch.Failure{URL: "http://down.example/rss", Reason: "http_error:500"})
	ledger.Append(fetch.Failure{URL: "http://empty.example/rss", Reason: fetch.ReasonNoEntries})

	srv := NewServer(ledger, nil)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/failures")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		Count    int             `json:"count"`
		Failures []fetch.Failure `json:"failures"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 2, body.Count)
	require.Len(t, body.Failures, 2)
	assert.Equal(t, "http_error:500", body.Failures[0].Reason)
}

func TestFailuresEmptyLedgerIsAnEmptyList(t *testing.T) {
	t.Parallel()
	metrics.Init()

	srv := NewServer(&fetch.Ledger{}, nil)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/failures")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		Count    int             `json:"count"`
		Failures []fetch.Failure `json:"failures"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 0, body.Count)
	assert.NotNil(t, body.Failures)
}

func TestMetricsEndpointServesPrometheus(t *testing.T) {
	t.Parallel()
	metrics.Init()

	srv := NewServer(&fetch.Ledger{}, nil)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
