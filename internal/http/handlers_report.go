package http

import (
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"despesas/internal/camara"
	"despesas/internal/core"
	"despesas/internal/services"
)

// handleIndex renders the search page
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	data := struct {
		Placeholder string
	}{
		Placeholder: "Ex.: Maria do Rosário",
	}
	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleReportPartial renders the expense report partial for one name query.
func (s *Server) handleReportPartial(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	nome := sanitizeInput(r.URL.Query().Get("nome"))
	if nome == "" {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="warning">Por favor, digite um nome para a busca.</div>`))
		return
	}

	// The fetch-all loop runs to completion, failure or natural termination;
	// no artificial deadline on top of the request context.
	report, err := s.reports.BuildReport(r.Context(), nome)
	if err != nil {
		s.writeReportError(w, r, nome, err)
		return
	}

	type row struct {
		Name, Amount string
		Width        int
	}
	data := struct {
		Banner  string
		Nome    string
		Records int
		Total   string
		Warning string
		HasData bool
		Rows    []row
	}{
		Banner:  report.Deputy.Label(),
		Nome:    nome,
		Records: report.Records,
		Total:   formatReais(report.Total.Cents),
		HasData: report.Records > 0,
	}
	if report.Partial() {
		data.Warning = "Não foi possível carregar todas as páginas de despesas (falha na página " +
			template.HTMLEscapeString(itoa(report.FailedPage)) + "). Os valores abaixo são parciais."
	}

	// Scale rows against the largest category for the inline bars.
	var maxCents int64
	for _, t := range report.Totals {
		if t.Amount.Cents > maxCents {
			maxCents = t.Amount.Cents
		}
	}
	for _, t := range report.Totals {
		width := 0
		if maxCents > 0 && t.Amount.Cents > 0 {
			width = int((t.Amount.Cents*100 + maxCents/2) / maxCents)
			if width > 0 && width < 2 {
				width = 2
			}
			if width > 100 {
				width = 100
			}
		}
		data.Rows = append(data.Rows, row{Name: t.Name, Amount: formatReais(t.Amount.Cents), Width: width})
	}

	if s.templates == nil {
		_, _ = w.Write([]byte(`<div class="success">` + template.HTMLEscapeString(data.Banner) + `</div>`))
		return
	}
	if err := s.templates.ExecuteTemplate(w, "report.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Report template execution failed", "error", err, "template", "report.html")
		_, _ = w.Write([]byte(`<div class="error">Erro ao montar o relatório.</div>`))
	}
}

// handleReportChart returns the category totals as JSON for Chart.js.
func (s *Server) handleReportChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	nome := sanitizeInput(r.URL.Query().Get("nome"))
	if nome == "" {
		http.Error(w, "missing nome", http.StatusUnprocessableEntity)
		return
	}

	// Memoized by the service, so this is served from cache right after the
	// partial was rendered.
	report, err := s.reports.BuildReport(r.Context(), nome)
	if err != nil {
		slog.ErrorContext(r.Context(), "Chart data error", "error", err, "query", nome)
		status := http.StatusBadGateway
		if errors.Is(err, services.ErrDeputyNotFound) {
			status = http.StatusNotFound
		}
		http.Error(w, "report unavailable", status)
		return
	}

	type point struct {
		Label  string `json:"label"`
		Amount int64  `json:"amount"` // centavos
	}
	points := make([]point, 0, len(report.Totals))
	for _, t := range report.Totals {
		points = append(points, point{Label: t.Name, Amount: t.Amount.Cents})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(points)
}

// writeReportError maps pipeline failures to user-facing messages. Nothing
// propagates to the client as an unhandled fault.
func (s *Server) writeReportError(w http.ResponseWriter, r *http.Request, nome string, err error) {
	var (
		fe  *camara.FetchError
		dfe *core.DataFormatError
	)
	switch {
	case errors.Is(err, services.ErrDeputyNotFound):
		_, _ = w.Write([]byte(`<div class="info">Nenhum deputado encontrado com esse nome. Tente novamente.</div>`))
	case errors.As(err, &dfe):
		slog.ErrorContext(r.Context(), "Aggregation failed on malformed amount", "error", err, "query", nome)
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<div class="error">Os dados de despesas retornados pela API são inválidos.</div>`))
	case errors.As(err, &fe):
		slog.ErrorContext(r.Context(), "Upstream fetch failed", "error", err, "query", nome, "page", fe.Page)
		w.WriteHeader(http.StatusBadGateway)
		if fe.Page > 0 {
			_, _ = w.Write([]byte(`<div class="error">Erro ao buscar despesas (página ` +
				template.HTMLEscapeString(itoa(fe.Page)) + `). Tente novamente.</div>`))
		} else {
			_, _ = w.Write([]byte(`<div class="error">Erro ao buscar deputado. Tente novamente.</div>`))
		}
	default:
		slog.ErrorContext(r.Context(), "Report build failed", "error", err, "query", nome)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Erro inesperado ao montar o relatório.</div>`))
	}
}
