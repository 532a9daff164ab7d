package openapi

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_EmbeddedDocument(t *testing.T) {
	doc, err := Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	var got []string
	for _, op := range doc.Operations() {
		got = append(got, op.Method+" "+op.Path+" "+op.ID)
	}
	want := []string{
		"GET /api/estimate estimate",
		"GET /api/table table",
		"GET /chart.svg chart",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("operations mismatch (-want +got):\n%s", diff)
	}
	if len(doc.Raw()) == 0 {
		t.Fatalf("expected raw document")
	}
}

func TestLoadFromData_Errors(t *testing.T) {
	ctx := context.Background()
	cases := map[string]string{
		"empty":    "",
		"no paths": "openapi: 3.0.3\ninfo: {title: x, version: '1'}\npaths: {}\n",
		"invalid":  "openapi: 3.0.3\npaths: {}\n",
	}
	for name, raw := range cases {
		if _, err := LoadFromData(ctx, []byte(raw)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestValidateJSON(t *testing.T) {
	doc, err := Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	valid := []string{
		`{"input":"0.15","query":0.15,"estimate":200,"formatted":"200","nearestIndex":0,"inRange":true}`,
		`{"input":"abc","query":null,"estimate":null,"formatted":"","nearestIndex":0,"inRange":false}`,
	}
	for _, body := range valid {
		if err := doc.ValidateJSON(http.MethodGet, "/api/estimate", http.StatusOK, []byte(body)); err != nil {
			t.Errorf("expected %s to validate: %v", body, err)
		}
	}

	invalid := []string{
		`{"input":"0.15","estimate":200}`,
		`{"input":"0.15","query":0.15,"estimate":"200","formatted":"200","nearestIndex":0,"inRange":true}`,
		`{"input":"0.15","query":0.15,"estimate":200,"formatted":"200","nearestIndex":-1,"inRange":true}`,
	}
	for _, body := range invalid {
		if err := doc.ValidateJSON(http.MethodGet, "/api/estimate", http.StatusOK, []byte(body)); err == nil {
			t.Errorf("expected %s to fail validation", body)
		}
	}

	table := `{"units":{"opticalDensity":"OD600"},"points":[[0.1,100],[0.2,300]]}`
	if err := doc.ValidateJSON(http.MethodGet, "/api/table", http.StatusOK, []byte(table)); err != nil {
		t.Errorf("expected table to validate: %v", err)
	}
	if err := doc.ValidateJSON(http.MethodGet, "/missing", http.StatusOK, []byte(table)); err == nil {
		t.Errorf("expected undocumented path to fail")
	}
}
