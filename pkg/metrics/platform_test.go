package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name, endpoint string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
		for _, m := range fam.GetMetric() {
			if labelValue(m, "endpoint") == endpoint {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func labelValue(m *dto.Metric, name string) string {
	for _, pair := range m.GetLabel() {
		if pair.GetName() == name {
			return pair.GetValue()
		}
	}
	return ""
}

func TestObserveCountsSuccessAndFailure(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPlatformMetrics(reg)

	m.Observe("/pricing/lookup", 20*time.Millisecond, nil)
	m.Observe("/pricing/lookup", 30*time.Millisecond, errors.New("boom"))
	m.Observe("/pricing/lookup", 40*time.Millisecond, nil)

	if got := counterValue(t, reg, "platform_request_success", "/pricing/lookup"); got != 2 {
		t.Fatalf("expected 2 successes, got %v", got)
	}
	if got := counterValue(t, reg, "platform_request_failure", "/pricing/lookup"); got != 1 {
		t.Fatalf("expected 1 failure, got %v", got)
	}
}

func TestObserveNilReceiverAndRegistry(t *testing.T) {
	var m *PlatformMetrics
	m.Observe("/geo/countries", time.Millisecond, nil)

	unregistered := NewPlatformMetrics(nil)
	unregistered.Observe("/geo/countries", time.Millisecond, nil)
}

func TestNormalizeLabel(t *testing.T) {
	if normalizeLabel("") != "unknown" {
		t.Fatal("expected empty endpoint to normalize to unknown")
	}
}
