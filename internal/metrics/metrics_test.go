package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestInit(t *testing.T) {
	// Reset collectors for testing purposes.
	feedFetchesTotal = nil
	articlesIngestedTot = nil
	tasksTotal = nil
	httpRequestsTotal = nil
	httpRequestDurationSeconds = nil

	// Call Init multiple times to test idempotency.
	Init()
	Init()

	if feedFetchesTotal == nil || articlesIngestedTot == nil ||
		tasksTotal == nil || httpRequestsTotal == nil {
		t.Fatal("Init() did not initialize metrics collectors")
	}

	// A simple check to see if a metric can be used.
	ObserveFeedFetch("success", 120*time.Millisecond)
	if val := testutil.ToFloat64(feedFetchesTotal.WithLabelValues("success")); val != 1 {
		t.Errorf("Expected feedFetchesTotal to be 1, got %f", val)
	}
}

func TestObserveIngestSkipsZeroBuckets(t *testing.T) {
	Init()

	before := testutil.ToFloat64(articlesIngestedTot.WithLabelValues("created"))
	ObserveIngest(3, 0)
	after := testutil.ToFloat64(articlesIngestedTot.WithLabelValues("created"))
	if after-before != 3 {
		t.Errorf("Expected created counter to grow by 3, got %f", after-before)
	}
}
