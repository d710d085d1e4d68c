package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/ougirez/profitability/internal/config"
	"github.com/ougirez/profitability/internal/domain"
	"github.com/ougirez/profitability/internal/pkg/store"
	"github.com/ougirez/profitability/internal/pkg/store/xsqlite"
	"github.com/ougirez/profitability/internal/service/indicators"
)

func newTestAPI(t *testing.T) http.Handler {
	t.Helper()

	ctx := context.Background()
	pool, err := xsqlite.Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("xsqlite.Open() error = %v", err)
	}
	t.Cleanup(pool.Close)

	st := store.NewStore(pool)
	if err := st.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	cfg := config.Config{Indicators: config.DefaultIndicators}
	if err := st.SeedIndicators(ctx, cfg.Catalog()); err != nil {
		t.Fatalf("SeedIndicators() error = %v", err)
	}

	svc, err := NewAPIService(indicators.NewIndicatorsService(st, indicators.Options{}), config.ServerConfig{
		AllowOrigins: []string{"*"},
	})
	if err != nil {
		t.Fatalf("NewAPIService() error = %v", err)
	}
	return svc.Handler()
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to decode %q: %v", rec.Body.String(), err)
	}
}

func seed(t *testing.T, h http.Handler, year string, values ...string) {
	t.Helper()
	for i, v := range values {
		body := `{"indicator_id":` + strconv.Itoa(i+1) + `,"year":"` + year + `","value":"` + v + `"}`
		if rec := do(t, h, http.MethodPost, "/api/v1/values", body); rec.Code != http.StatusCreated {
			t.Fatalf("POST /values %s: status %d, body %s", body, rec.Code, rec.Body.String())
		}
	}
}

func TestIndicatorsAndRequestID(t *testing.T) {
	h := newTestAPI(t)

	rec := do(t, h, http.MethodGet, "/api/v1/indicators", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected generated request id header")
	}

	var got []domain.Indicator
	decode(t, rec, &got)
	if len(got) != 7 || got[0].Title != "Net profit" {
		t.Fatalf("unexpected catalog %+v", got)
	}
}

func TestHealth(t *testing.T) {
	h := newTestAPI(t)

	rec := do(t, h, http.MethodGet, "/api/v1/health", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("health: status %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestValueLifecycle(t *testing.T) {
	h := newTestAPI(t)

	rec := do(t, h, http.MethodPost, "/api/v1/values", `{"indicator_id":3,"year":"2020","value":"125.5"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created domain.ValueRow
	decode(t, rec, &created)
	if created.ID == 0 || created.IndicatorTitle != "Sales revenue" {
		t.Fatalf("unexpected created row %+v", created)
	}

	path := "/api/v1/values/" + strconv.FormatInt(created.ID, 10)

	rec = do(t, h, http.MethodPut, path, `{"year":"2021","value":"99"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = do(t, h, http.MethodGet, "/api/v1/values?indicator_id=3&year=2021", "")
	var rows []domain.ValueRow
	decode(t, rec, &rows)
	if len(rows) != 1 || rows[0].Year != "2021" || rows[0].IndicatorID != 3 {
		t.Fatalf("unexpected rows after update %+v", rows)
	}

	if rec = do(t, h, http.MethodDelete, path, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	if rec = do(t, h, http.MethodDelete, path, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d", rec.Code)
	}
	if rec = do(t, h, http.MethodGet, path, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d", rec.Code)
	}
}

func TestErrorStatuses(t *testing.T) {
	h := newTestAPI(t)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		want   int
	}{
		{name: "unknown indicator", method: http.MethodPost, target: "/api/v1/values", body: `{"indicator_id":42,"year":"2020","value":"1"}`, want: http.StatusBadRequest},
		{name: "bad year", method: http.MethodPost, target: "/api/v1/values", body: `{"indicator_id":1,"year":"abc","value":"1"}`, want: http.StatusBadRequest},
		{name: "bad value", method: http.MethodPost, target: "/api/v1/values", body: `{"indicator_id":1,"year":"2020","value":"1,5"}`, want: http.StatusBadRequest},
		{name: "malformed body", method: http.MethodPost, target: "/api/v1/values", body: `{"indicator_id":`, want: http.StatusBadRequest},
		{name: "bad id", method: http.MethodGet, target: "/api/v1/values/abc", want: http.StatusBadRequest},
		{name: "bad filter", method: http.MethodGet, target: "/api/v1/values?indicator_id=x", want: http.StatusBadRequest},
		{name: "missing row", method: http.MethodPut, target: "/api/v1/values/100", body: `{"year":"2020","value":"1"}`, want: http.StatusNotFound},
		{name: "no statistics data", method: http.MethodGet, target: "/api/v1/statistics?year=2020", want: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.target, tt.body)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d, body %s", rec.Code, tt.want, rec.Body.String())
			}

			var resp domain.ErrorResponse
			decode(t, rec, &resp)
			if resp.Code != tt.want || resp.Message == "" {
				t.Fatalf("unexpected error body %+v", resp)
			}
		})
	}
}

func TestViewAndStatistics(t *testing.T) {
	h := newTestAPI(t)
	seed(t, h, "2021", "200", "100", "50", "100", "100", "100", "100")
	seed(t, h, "2020", "10")

	rec := do(t, h, http.MethodGet, "/api/v1/view?indicator_id=0&year=All%20years", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("view status = %d", rec.Code)
	}
	var view domain.View
	decode(t, rec, &view)
	if len(view.Rows) != 8 || view.Statistics == nil || view.Statistics.Year != "2021" {
		t.Fatalf("unexpected view %+v", view)
	}
	if len(view.Chart.Years) != 2 || view.Chart.Years[0] != "2020" {
		t.Fatalf("unexpected chart years %v", view.Chart.Years)
	}

	rec = do(t, h, http.MethodGet, "/api/v1/view?year=2020", "")
	var broken domain.View
	decode(t, rec, &broken)
	if broken.Statistics != nil || broken.StatisticsError == "" {
		t.Fatalf("expected statistics error for 2020, got %+v", broken)
	}

	rec = do(t, h, http.MethodGet, "/api/v1/statistics?year=2021&format=html", "")
	if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html") {
		t.Fatalf("html statistics: status %d, content type %q", rec.Code, rec.Header().Get("Content-Type"))
	}
	if !strings.Contains(rec.Body.String(), "400.00%") {
		t.Errorf("expected sales ratio in html, got %s", rec.Body.String())
	}
}

func TestChartAndExport(t *testing.T) {
	h := newTestAPI(t)

	if rec := do(t, h, http.MethodGet, "/api/v1/chart.png", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("empty chart status = %d", rec.Code)
	}

	seed(t, h, "2020", "10", "20")

	rec := do(t, h, http.MethodGet, "/api/v1/chart.png", "")
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "image/png" || rec.Body.Len() == 0 {
		t.Fatalf("chart png: status %d, content type %q", rec.Code, rec.Header().Get("Content-Type"))
	}

	rec = do(t, h, http.MethodGet, "/api/v1/values/export.xlsx?year=2020", "")
	if rec.Code != http.StatusOK || rec.Body.Len() == 0 {
		t.Fatalf("export status = %d", rec.Code)
	}
	if !strings.Contains(rec.Header().Get("Content-Disposition"), "values.xlsx") {
		t.Errorf("unexpected content disposition %q", rec.Header().Get("Content-Disposition"))
	}
}
