package metrics

import (
	"fmt"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
)

func TestRegistryExportsCounterAndHistogram(t *testing.T) {
	reg := New("storefront-api-test")
	reg.ObserveRequest("GET", "/api/products", 200, 120*time.Millisecond)
	reg.ObserveRequest("GET", "/api/products", 200, 80*time.Millisecond)
	reg.ObserveRequest("POST", "/api/token", 401, 10*time.Millisecond)

	mfs, err := reg.Gather().Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "storefront_http_requests_total", "route", "/api/products"); err != nil {
		t.Fatalf("fetch requests_total: %v", err)
	} else if got != 2 {
		t.Fatalf("expected requests_total=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "storefront_http_requests_total", "status", "401"); err != nil {
		t.Fatalf("fetch requests_total 401: %v", err)
	} else if got != 1 {
		t.Fatalf("expected 401 count=1, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "storefront_http_request_duration_seconds", "route", "/api/products"); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
