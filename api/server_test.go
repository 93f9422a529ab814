package api_test

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/TomShaw333/RustCalculatorSuite/api"
	"github.com/TomShaw333/RustCalculatorSuite/model"
	"github.com/TomShaw333/RustCalculatorSuite/store"
)

func newServer(t *testing.T) *api.Server {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "calc.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })
	return api.New(st, time.Hour)
}

func serve(t *testing.T, srv *api.Server, uri string) *fasthttp.RequestCtx {
	t.Helper()
	var req fasthttp.Request
	req.SetRequestURI(uri)
	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&req, nil, nil)
	srv.Handler()(ctx)
	return ctx
}

func decode(t *testing.T, ctx *fasthttp.RequestCtx, v interface{}) {
	t.Helper()
	if code := ctx.Response.StatusCode(); code != fasthttp.StatusOK {
		t.Fatalf("status %d: %s", code, ctx.Response.Body())
	}
	if err := json.Unmarshal(ctx.Response.Body(), v); err != nil {
		t.Fatalf("decoding %q: %v", ctx.Response.Body(), err)
	}
}

func TestCalculate(t *testing.T) {
	srv := newServer(t)

	var resp api.CalculationResponse
	decode(t, serve(t, srv, "http://test/calculate?expr=2+3+%2B"), &resp)
	if !resp.Success || resp.Result != 5 || resp.ErrorCode != 0 {
		t.Fatalf("first response: %+v", resp)
	}
	if resp.Message != "Success" || resp.Cached {
		t.Errorf("first response: %+v", resp)
	}

	decode(t, serve(t, srv, "http://test/calculate?expr=2+3+%2B"), &resp)
	if !resp.Success || resp.Result != 5 || !resp.Cached {
		t.Errorf("second response not served from cache: %+v", resp)
	}
}

func TestCalculateError(t *testing.T) {
	srv := newServer(t)

	var resp api.CalculationResponse
	decode(t, serve(t, srv, "http://test/calculate?expr=1+0+%2F"), &resp)
	if resp.Success || resp.ErrorCode != 1 || resp.Message != "Division by zero" {
		t.Fatalf("response: %+v", resp)
	}

	// failures replay from the cache with their stored code
	decode(t, serve(t, srv, "http://test/calculate?expr=1+0+%2F"), &resp)
	if resp.Success || resp.ErrorCode != 1 || !resp.Cached {
		t.Errorf("cached failure: %+v", resp)
	}
}

func TestCalculateMissingExpr(t *testing.T) {
	srv := newServer(t)

	var resp api.CalculationResponse
	decode(t, serve(t, srv, "http://test/calculate"), &resp)
	if resp.Success || resp.ErrorCode != 4 {
		t.Errorf("response: %+v", resp)
	}
}

func TestCalculateAns(t *testing.T) {
	srv := newServer(t)

	var resp api.CalculationResponse
	decode(t, serve(t, srv, "http://test/calculate?expr=5+5+%2B"), &resp)
	if resp.Result != 10 {
		t.Fatalf("response: %+v", resp)
	}
	decode(t, serve(t, srv, "http://test/calculate?expr=ans+5+%2B"), &resp)
	if !resp.Success || resp.Result != 15 {
		t.Errorf("ans response: %+v", resp)
	}
}

func TestConvert(t *testing.T) {
	srv := newServer(t)

	var resp api.ConversionResponse
	decode(t, serve(t, srv, "http://test/convert?expr=2+3+%2B+4+%2A"), &resp)
	if !resp.Success || resp.Infix != "(2 + 3) * 4" || resp.RPN != "2 3 + 4 *" {
		t.Errorf("response: %+v", resp)
	}
}

func TestHistoryEndpoint(t *testing.T) {
	srv := newServer(t)
	serve(t, srv, "http://test/calculate?expr=1+2+%2B")
	serve(t, srv, "http://test/calculate?expr=3+4+%2B")

	var rows []model.CalcEntry
	decode(t, serve(t, srv, "http://test/history?limit=10"), &rows)
	if len(rows) != 2 {
		t.Errorf("history returned %d rows", len(rows))
	}
}

func TestUnsupportedPath(t *testing.T) {
	srv := newServer(t)
	ctx := serve(t, srv, "http://test/nope")
	if ctx.Response.StatusCode() != fasthttp.StatusBadRequest {
		t.Errorf("status %d, want %d", ctx.Response.StatusCode(), fasthttp.StatusBadRequest)
	}
}
