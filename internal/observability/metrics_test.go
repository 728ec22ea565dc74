package observability

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	logs "github.com/danmuck/datumctl/internal/logging"
	"github.com/danmuck/datumctl/internal/testutil/testlog"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	testlog.Start(t)
	RegisterMetrics()
	RegisterMetrics()

	RecordHTTPRequest("inspect", "POST", "/v1/inspect", 200, 12*time.Millisecond)
	logs.Logf("observability/metrics: registration idempotent and recording paths executed")
}

func TestRecordHeaderCheckCountsRules(t *testing.T) {
	before := testutil.ToFloat64(ruleFailures.WithLabelValues("metadata"))
	RecordHeaderCheck("test", ResultInvalid, "metadata")
	RecordHeaderCheck("test", ResultValid, "metadata")
	after := testutil.ToFloat64(ruleFailures.WithLabelValues("metadata"))
	if after-before != 1 {
		t.Fatalf("expected one rule failure recorded, delta=%v", after-before)
	}
	if v := testutil.ToFloat64(headerChecks.WithLabelValues("test", ResultValid)); v < 1 {
		t.Fatalf("expected valid check counted, got %v", v)
	}
}

func TestWriteTextfile(t *testing.T) {
	RecordHeaderCheck("scan", ResultUnsupported, "")
	path := filepath.Join(t.TempDir(), "datumctl.prom")
	if err := WriteTextfile(path); err != nil {
		t.Fatalf("write textfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	if !strings.Contains(string(data), `datumctl_header_checks_total{result="unsupported",source="scan"}`) {
		t.Fatalf("missing header check series:\n%s", data)
	}
}
