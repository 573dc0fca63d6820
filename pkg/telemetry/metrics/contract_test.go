package metrics

import (
	"testing"
	"time"

	"verity-hq/verity/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func testConfig() *config.MetricsConfig {
	return &config.MetricsConfig{
		Enabled:   true,
		Namespace: "test",
		Subsystem: "contracts",
	}
}

func TestNewContractMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	cm := NewContractMetrics(testConfig(), registry)
	if cm == nil {
		t.Fatal("Expected non-nil metrics")
	}
}

func TestContractMetrics_RecordParse(t *testing.T) {
	registry := prometheus.NewRegistry()
	cm := NewContractMetrics(testConfig(), registry)

	cm.RecordParse("contract", "ok", 2*time.Millisecond)
	cm.RecordParse("contract", "ok", 1*time.Millisecond)
	cm.RecordParse("rejected", "error", 500*time.Microsecond)

	got := testutil.ToFloat64(cm.filesParsedTotal.WithLabelValues("contract", "ok"))
	if got != 2 {
		t.Errorf("files_parsed_total{contract,ok} = %v, want 2", got)
	}
	got = testutil.ToFloat64(cm.filesParsedTotal.WithLabelValues("rejected", "error"))
	if got != 1 {
		t.Errorf("files_parsed_total{rejected,error} = %v, want 1", got)
	}
}

func TestContractMetrics_RecordDiagnostics(t *testing.T) {
	registry := prometheus.NewRegistry()
	cm := NewContractMetrics(testConfig(), registry)

	cm.RecordDiagnostics("error", 3)
	cm.RecordDiagnostics("warning", 1)
	cm.RecordDiagnostics("debug", 0)

	if got := testutil.ToFloat64(cm.diagnosticsTotal.WithLabelValues("error")); got != 3 {
		t.Errorf("diagnostics_total{error} = %v, want 3", got)
	}
	if got := testutil.ToFloat64(cm.diagnosticsTotal.WithLabelValues("warning")); got != 1 {
		t.Errorf("diagnostics_total{warning} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(cm.diagnosticsTotal.WithLabelValues("debug")); got != 0 {
		t.Errorf("diagnostics_total{debug} = %v, want 0", got)
	}
}

func TestContractMetrics_RecordValidation(t *testing.T) {
	registry := prometheus.NewRegistry()
	cm := NewContractMetrics(testConfig(), registry)

	cm.RecordValidation(3 * time.Millisecond)

	count := testutil.CollectAndCount(cm.validationDuration)
	if count != 1 {
		t.Errorf("validation_duration metric count = %d, want 1", count)
	}
}
