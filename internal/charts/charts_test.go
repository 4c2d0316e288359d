package charts

import (
	"strings"
	"testing"
)

func TestAreaRendersSeries(t *testing.T) {
	svg, err := Area(0, 0, []float64{1, 4, 2}, []string{"Mon", "Tue", "Wed"}, AreaOpts{Title: "Daily additions"})
	if err != nil {
		t.Fatalf("area: %v", err)
	}
	out := string(svg)
	if !strings.HasPrefix(out, "<svg") || !strings.HasSuffix(out, "</svg>") {
		t.Fatalf("expected a complete svg document")
	}
	if !strings.Contains(out, "Daily additions") {
		t.Fatalf("title missing from output")
	}
	for _, label := range []string{"Mon", "Tue", "Wed"} {
		if !strings.Contains(out, label) {
			t.Fatalf("label %q missing", label)
		}
	}
}

func TestAreaRejectsBadInput(t *testing.T) {
	if _, err := Area(720, 260, nil, nil, AreaOpts{}); err == nil {
		t.Fatalf("empty series must error")
	}
	if _, err := Area(720, 260, []float64{1, 2}, []string{"only one"}, AreaOpts{}); err == nil {
		t.Fatalf("mismatched labels must error")
	}
}

func TestAreaEscapesLabels(t *testing.T) {
	svg, err := Area(720, 260, []float64{1}, []string{`<script>`}, AreaOpts{})
	if err != nil {
		t.Fatalf("area: %v", err)
	}
	if strings.Contains(string(svg), "<script>") {
		t.Fatalf("labels must be escaped")
	}
}

func TestHBarsRendersRows(t *testing.T) {
	svg, err := HBars(720, []float64{12, 5}, []string{"Asha", "Ravi"}, HBarOpts{Title: "Per staff"})
	if err != nil {
		t.Fatalf("hbars: %v", err)
	}
	out := string(svg)
	if !strings.Contains(out, "Asha") || !strings.Contains(out, "Ravi") {
		t.Fatalf("row labels missing")
	}
	if !strings.Contains(out, "<rect") {
		t.Fatalf("expected bar rects")
	}
}

func TestHBarsRejectsMismatch(t *testing.T) {
	if _, err := HBars(720, []float64{1}, []string{"a", "b"}, HBarOpts{}); err == nil {
		t.Fatalf("mismatched labels must error")
	}
}
