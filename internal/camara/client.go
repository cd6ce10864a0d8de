package camara

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"despesas/internal/core"
	"despesas/internal/metrics"
)

// DefaultBaseURL is the public Câmara open-data endpoint.
const DefaultBaseURL = "https://dadosabertos.camara.leg.br/api/v2"

// MaxPageSize is the largest page size the despesas listing honors.
const MaxPageSize = 100

const (
	opSearch   = "deputados"
	opExpenses = "despesas"
)

// Client talks to the Câmara API with blocking, sequential requests.
type Client struct {
	baseURL  string
	pageSize int
	httpc    *http.Client
}

// Ensure interface conformance
var (
	_ DeputyFinder  = (*Client)(nil)
	_ ExpenseLister = (*Client)(nil)
)

// NewClient creates a client for the given base URL. A pageSize of 0 falls
// back to MaxPageSize; values above the upstream maximum are clamped.
func NewClient(baseURL string, timeout time.Duration, pageSize int) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if pageSize <= 0 || pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return &Client{
		baseURL:  baseURL,
		pageSize: pageSize,
		httpc:    newPooledHTTPClient(timeout),
	}
}

// newPooledHTTPClient creates an HTTP client with connection pooling and
// conservative timeouts for repeated sequential page fetches.
func newPooledHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	transport := &http.Transport{
		DialContext:           dialer.DialContext,
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   4,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: timeout,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
	}
	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}

// rawAmount preserves valorLiquido exactly as it came off the wire, whether
// the upstream serialized it as a JSON number or as a quoted string.
type rawAmount string

func (a *rawAmount) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = rawAmount(s)
		return nil
	}
	*a = rawAmount(b)
	return nil
}

type deputyDTO struct {
	ID           int64  `json:"id"`
	Nome         string `json:"nome"`
	SiglaPartido string `json:"siglaPartido"`
	SiglaUf      string `json:"siglaUf"`
}

type searchResponse struct {
	Dados []deputyDTO `json:"dados"`
}

type pageLink struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

type despesaDTO struct {
	TipoDespesa    string      `json:"tipoDespesa"`
	ValorLiquido   rawAmount   `json:"valorLiquido"`
	DataDocumento  string      `json:"dataDocumento"`
	NomeFornecedor string      `json:"nomeFornecedor"`
	CodDocumento   json.Number `json:"codDocumento"`
}

type expensesResponse struct {
	Dados []despesaDTO `json:"dados"`
	Links []pageLink   `json:"links"`
}

// FindDeputy searches the directory filtered by name in ascending lexical
// order and takes the first result as the match. No fuzzy ranking beyond
// what the upstream provides; name collisions resolve to whoever sorts
// first. An empty result set yields (nil, nil).
func (c *Client) FindDeputy(ctx context.Context, name string) (*core.Deputy, error) {
	q := url.Values{}
	q.Set("nome", name)
	q.Set("ordem", "ASC")
	q.Set("ordenarPor", "nome")

	var body searchResponse
	if err := c.getJSON(ctx, c.baseURL+"/deputados?"+q.Encode(), &body); err != nil {
		metrics.UpstreamRequests.WithLabelValues(opSearch, "error").Inc()
		return nil, &FetchError{Op: opSearch, Err: err}
	}
	metrics.UpstreamRequests.WithLabelValues(opSearch, "ok").Inc()

	if len(body.Dados) == 0 {
		return nil, nil
	}
	first := body.Dados[0]
	slog.DebugContext(ctx, "Deputy resolved", "query", name, "deputy_id", first.ID, "matches", len(body.Dados))
	return &core.Deputy{
		ID:    first.ID,
		Name:  first.Nome,
		Party: first.SiglaPartido,
		State: first.SiglaUf,
	}, nil
}

// AllExpenses retrieves the complete expense history for a deputy by
// requesting fixed-size pages ordered by document date until the upstream
// stops advertising a "next" link or serves an empty page. Upstream order is
// preserved, never re-sorted.
//
// A transport failure on page N returns the records accumulated so far
// together with a *FetchError naming that page: a partial result the caller
// must surface, not silent data loss. No retry, no iteration cap; the loop
// trusts upstream pagination to terminate.
func (c *Client) AllExpenses(ctx context.Context, deputyID int64) ([]core.Expense, error) {
	var all []core.Expense
	for page := 1; ; page++ {
		q := url.Values{}
		q.Set("pagina", strconv.Itoa(page))
		q.Set("itens", strconv.Itoa(c.pageSize))
		q.Set("ordenarPor", "dataDocumento")
		u := fmt.Sprintf("%s/deputados/%d/despesas?%s", c.baseURL, deputyID, q.Encode())

		var body expensesResponse
		if err := c.getJSON(ctx, u, &body); err != nil {
			metrics.UpstreamRequests.WithLabelValues(opExpenses, "error").Inc()
			slog.WarnContext(ctx, "Expense page fetch failed",
				"deputy_id", deputyID, "page", page, "records_so_far", len(all), "error", err)
			return all, &FetchError{Op: opExpenses, Page: page, Err: err}
		}
		metrics.UpstreamRequests.WithLabelValues(opExpenses, "ok").Inc()
		metrics.PagesFetched.Inc()

		if len(body.Dados) == 0 {
			break
		}
		for _, d := range body.Dados {
			all = append(all, core.Expense{
				Category:     d.TipoDespesa,
				Amount:       string(d.ValorLiquido),
				DocumentDate: d.DataDocumento,
				Supplier:     d.NomeFornecedor,
				DocumentCode: d.CodDocumento.String(),
			})
		}
		// Absence of the "next" link is the authoritative end signal,
		// independent of whether the page was full.
		if !hasNext(body.Links) {
			break
		}
	}
	slog.DebugContext(ctx, "Expense history fetched", "deputy_id", deputyID, "records", len(all))
	return all, nil
}

func hasNext(links []pageLink) bool {
	for _, l := range links {
		if l.Rel == "next" {
			return true
		}
	}
	return false
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
