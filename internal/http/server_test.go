package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"despesas/internal/camara"
	"despesas/internal/core"
	"despesas/internal/services"
)

type fakeReporter struct {
	report *services.Report
	err    error
	calls  int
}

func (f *fakeReporter) BuildReport(ctx context.Context, name string) (*services.Report, error) {
	f.calls++
	return f.report, f.err
}

func sampleReport() *services.Report {
	return &services.Report{
		Deputy:  core.Deputy{ID: 204379, Name: "Maria do Rosário", Party: "PT", State: "RS"},
		Records: 137,
		Totals: []core.CategoryTotal{
			{Name: "Passagem Aérea", Amount: core.Money{Cents: 80000}},
			{Name: "Combustível", Amount: core.Money{Cents: 20000}},
		},
		Total: core.Money{Cents: 100000},
	}
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func TestIndexAndProbes(t *testing.T) {
	srv := NewServer(":0", &fakeReporter{report: sampleReport()})

	rr := get(t, srv, "/")
	if rr.Code != 200 {
		t.Fatalf("index status=%d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Analisador de Despesas") {
		t.Fatalf("index body missing heading")
	}

	for _, path := range []string{"/healthz", "/readyz"} {
		rr := get(t, srv, path)
		if rr.Code != 200 {
			t.Fatalf("%s status=%d", path, rr.Code)
		}
	}

	if rr := get(t, srv, "/nope"); rr.Code != http.StatusNotFound {
		t.Fatalf("unknown path status=%d", rr.Code)
	}
}

func TestReportPartialSuccess(t *testing.T) {
	srv := NewServer(":0", &fakeReporter{report: sampleReport()})

	rr := get(t, srv, "/ui/report?nome=Maria+do+Rosário")
	if rr.Code != 200 {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	body := rr.Body.String()
	for _, want := range []string{
		"Maria do Rosário (PT-RS)",
		"137 registros",
		"Passagem Aérea",
		"R$ 800,00",
		"R$ 1.000,00",
		"category-chart",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q:\n%s", want, body)
		}
	}
}

func TestReportPartialBlankQuery(t *testing.T) {
	reporter := &fakeReporter{report: sampleReport()}
	srv := NewServer(":0", reporter)

	rr := get(t, srv, "/ui/report?nome=")
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status=%d", rr.Code)
	}
	if reporter.calls != 0 {
		t.Fatalf("reporter called for blank query")
	}
}

func TestReportPartialMethodNotAllowed(t *testing.T) {
	srv := NewServer(":0", &fakeReporter{report: sampleReport()})
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ui/report?nome=x", nil)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status=%d", rr.Code)
	}
}

func TestReportPartialNotFound(t *testing.T) {
	srv := NewServer(":0", &fakeReporter{err: services.ErrDeputyNotFound})

	rr := get(t, srv, "/ui/report?nome=Ninguém")
	if rr.Code != 200 {
		t.Fatalf("status=%d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Nenhum deputado encontrado") {
		t.Fatalf("body missing not-found message: %s", rr.Body.String())
	}
}

func TestReportPartialFetchError(t *testing.T) {
	err := &camara.FetchError{Op: "despesas", Page: 3, Err: errors.New("timeout")}
	srv := NewServer(":0", &fakeReporter{err: err})

	rr := get(t, srv, "/ui/report?nome=Maria")
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status=%d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "página 3") {
		t.Fatalf("error does not name the page: %s", rr.Body.String())
	}
}

func TestReportPartialDataFormatError(t *testing.T) {
	err := &core.DataFormatError{Field: "valorLiquido", Value: "x", Err: core.ErrInvalidAmount}
	srv := NewServer(":0", &fakeReporter{err: err})

	rr := get(t, srv, "/ui/report?nome=Maria")
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status=%d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "inválidos") {
		t.Fatalf("body missing data error message: %s", rr.Body.String())
	}
}

func TestReportPartialWarningOnPartialFetch(t *testing.T) {
	rep := sampleReport()
	rep.FailedPage = 3
	rep.FetchWarning = "despesas: página 3: timeout"
	srv := NewServer(":0", &fakeReporter{report: rep})

	rr := get(t, srv, "/ui/report?nome=Maria")
	if rr.Code != 200 {
		t.Fatalf("status=%d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "parciais") {
		t.Fatalf("body missing partial warning: %s", rr.Body.String())
	}
}

func TestReportChart(t *testing.T) {
	srv := NewServer(":0", &fakeReporter{report: sampleReport()})

	rr := get(t, srv, "/api/report/chart?nome=Maria")
	if rr.Code != 200 {
		t.Fatalf("status=%d", rr.Code)
	}
	var points []struct {
		Label  string `json:"label"`
		Amount int64  `json:"amount"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&points); err != nil {
		t.Fatalf("decode chart payload: %v", err)
	}
	if len(points) != 2 || points[0].Label != "Passagem Aérea" || points[0].Amount != 80000 {
		t.Fatalf("unexpected points %+v", points)
	}
}

func TestReportChartNotFound(t *testing.T) {
	srv := NewServer(":0", &fakeReporter{err: services.ErrDeputyNotFound})
	rr := get(t, srv, "/api/report/chart?nome=x")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status=%d", rr.Code)
	}
}

func TestFormatReais(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "R$ 0,00"},
		{920, "R$ 9,20"},
		{100000, "R$ 1.000,00"},
		{123456789, "R$ 1.234.567,89"},
		{-9540, "-R$ 95,40"},
	}
	for _, tc := range cases {
		if got := formatReais(tc.cents); got != tc.want {
			t.Fatalf("formatReais(%d) = %q, want %q", tc.cents, got, tc.want)
		}
	}
}
