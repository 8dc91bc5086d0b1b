package discovery

// Recorder observes discovery outcomes. Engine calls it synchronously on
// every Discover*/DiscoverAll* call whose signature compiles; a nil
// Recorder is never installed —
// New defaults to noopRecorder, so callers that don't care about metrics
// pay nothing. internal/metrics.Prometheus implements this against
// github.com/prometheus/client_golang.
type Recorder interface {
	ObserveHit(sig Signature, score float64)
	ObserveMiss(sig Signature)
}

type noopRecorder struct{}

func (noopRecorder) ObserveHit(Signature, float64) {}
func (noopRecorder) ObserveMiss(Signature)          {}
