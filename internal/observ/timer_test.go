package observ

import (
	"strings"
	"testing"
)

func TestTimerReport(t *testing.T) {
	timer := NewTimer()
	load := timer.Begin("load")
	timer.End(load, "12 classes")
	check := timer.Begin("check")
	timer.End(check, "")
	timer.End(99, "ignored")

	report := timer.Report()
	if len(report.Phases) != 2 || report.Phases[0].Name != "load" || report.Phases[0].Note != "12 classes" {
		t.Fatalf("unexpected report %+v", report)
	}
	summary := timer.Summary()
	if !strings.Contains(summary, "// 12 classes") || !strings.Contains(summary, "total") {
		t.Fatalf("unexpected summary:\n%s", summary)
	}
	if len(NewTimer().Report().Phases) != 0 {
		t.Fatal("empty timer has no phases")
	}
}
