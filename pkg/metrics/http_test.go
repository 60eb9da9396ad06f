package metrics

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
)

func TestHTTPMetricsExportsRequestSeries(t *testing.T) {
	m := NewHTTPMetrics()
	m.ObserveRequest(http.MethodGet, "/api/coffees", 200, 40*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/api/coffees", 200, 60*time.Millisecond)
	m.ObserveRequest(http.MethodPost, "", 404, 5*time.Millisecond)

	mfs, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	total, err := fetchCounterValue(mfs, "http_requests_total", map[string]string{
		"method": "GET", "route": "/api/coffees", "status": "200",
	})
	if err != nil {
		t.Fatalf("fetch total: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected 2 requests, got %f", total)
	}

	unmatched, err := fetchCounterValue(mfs, "http_requests_total", map[string]string{
		"method": "POST", "route": "unmatched", "status": "404",
	})
	if err != nil {
		t.Fatalf("fetch unmatched: %v", err)
	}
	if unmatched != 1 {
		t.Fatalf("expected 1 unmatched request, got %f", unmatched)
	}

	sum, err := fetchHistogramSum(mfs, "http_request_duration_seconds", map[string]string{
		"method": "GET", "route": "/api/coffees", "status": "200",
	})
	if err != nil {
		t.Fatalf("fetch duration: %v", err)
	}
	if sum <= 0 {
		t.Fatalf("expected positive duration sum, got %f", sum)
	}
}

func TestDomainCounters(t *testing.T) {
	m := NewHTTPMetrics()
	m.IncInquirySubmitted()
	m.IncInquirySubmitted()
	m.IncRegistration()

	mfs, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	inquiries, err := fetchCounterValue(mfs, "inquiries_submitted_total", nil)
	if err != nil {
		t.Fatalf("fetch inquiries: %v", err)
	}
	if inquiries != 2 {
		t.Fatalf("expected 2 inquiries, got %f", inquiries)
	}

	regs, err := fetchCounterValue(mfs, "buyer_registrations_total", nil)
	if err != nil {
		t.Fatalf("fetch registrations: %v", err)
	}
	if regs != 1 {
		t.Fatalf("expected 1 registration, got %f", regs)
	}
}

func TestHandlerServesTextFormat(t *testing.T) {
	m := NewHTTPMetrics()
	m.IncInquirySubmitted()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	m.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "inquiries_submitted_total 1") {
		t.Fatalf("expected inquiries counter in output, got:\n%s", rec.Body.String())
	}
}

func fetchCounterValue(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabels(metric.GetLabel(), labels) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing labels %v", name, labels)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabels(metric.GetLabel(), labels) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing labels %v", name, labels)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabels(pairs []*dto.LabelPair, want map[string]string) bool {
	for name, value := range want {
		found := false
		for _, pair := range pairs {
			if pair.GetName() == name && pair.GetValue() == value {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
