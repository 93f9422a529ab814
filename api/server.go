package api

import (
	"context"
	"encoding/json"
	"errors"
	"expvar"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/expvarhandler"

	calculator "github.com/TomShaw333/RustCalculatorSuite"
	"github.com/TomShaw333/RustCalculatorSuite/model"
	"github.com/TomShaw333/RustCalculatorSuite/store"
)

var (
	calculateCalls = expvar.NewInt("calculateCalls")
	convertCalls   = expvar.NewInt("convertCalls")
	historyCalls   = expvar.NewInt("historyCalls")
	cacheHits      = expvar.NewInt("cacheHits")
	cacheMisses    = expvar.NewInt("cacheMisses")
	errorResponses = expvar.NewInt("errorResponses")
)

// CalculationResponse is the JSON reply of /calculate.
type CalculationResponse struct {
	Success    bool    `json:"success"`
	Expression string  `json:"expression"`
	Result     float64 `json:"result"`
	ErrorCode  int     `json:"error_code"`
	Message    string  `json:"message"`
	Cached     bool    `json:"cached"`
}

// ConversionResponse is the JSON reply of /convert.
type ConversionResponse struct {
	Success   bool   `json:"success"`
	RPN       string `json:"rpn_expression"`
	Infix     string `json:"infix_expression"`
	ErrorCode int    `json:"error_code"`
	Message   string `json:"message"`
}

// storedError stands in for an engine failure replayed from the store,
// so a cached failure keeps the last result untouched like a fresh one.
type storedError struct {
	code calculator.ErrorCode
}

func (err storedError) Error() string {
	return err.code.String()
}

func (err storedError) Code() calculator.ErrorCode {
	return err.code
}

var _ calculator.Error = storedError{}

// Server exposes the calculator over HTTP. It owns the ans history for
// its clients; caching and persistence go through an optional Store.
type Server struct {
	mu   sync.Mutex
	hist *calculator.History
	st   *store.Store
	ttl  time.Duration
	srv  *fasthttp.Server
}

// New creates a Server. st may be nil, which disables the result cache,
// persistence, and /history. ttl is the retention period stamped on new
// entries.
func New(st *store.Store, ttl time.Duration) *Server {
	s := &Server{
		hist: calculator.NewHistory(0),
		st:   st,
		ttl:  ttl,
	}
	s.srv = &fasthttp.Server{
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Concurrency:  256 * 1024,
	}
	return s
}

// Handler returns the request handler for the service paths.
func (s *Server) Handler() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		switch string(ctx.Path()) {
		case "/calculate":
			s.handleCalculate(ctx)
		case "/convert":
			s.handleConvert(ctx)
		case "/history":
			s.handleHistory(ctx)
		case "/stats":
			expvarhandler.ExpvarHandler(ctx)
		default:
			errorResponses.Add(1)
			ctx.Error("Unsupported path", fasthttp.StatusBadRequest)
		}
	}
}

// ListenAndServe serves the API on addr until the listener fails or the
// server is shut down.
func (s *Server) ListenAndServe(addr string) error {
	return s.srv.ListenAndServe(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.ShutdownWithContext(ctx)
}

func (s *Server) handleCalculate(ctx *fasthttp.RequestCtx) {
	calculateCalls.Add(1)
	var tokens []string
	var text string
	if expr := ctx.FormValue("expr"); expr != nil {
		text = string(expr)
		tokens = strings.Fields(text)
	}
	resp := s.calculate(tokens, text)
	s.reply(ctx, resp, resp.Success)
}

// calculate runs one request against the history, the cache, and the
// engine, in that order. The mutex serializes requests so that ans
// resolution and the last result stay coherent.
func (s *Server) calculate(tokens []string, text string) CalculationResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	resolved := s.hist.Resolve(tokens)

	var key string
	if s.st != nil && resolved != nil {
		key = store.Key(resolved)
		row, err := s.st.Find(key)
		if err == nil {
			cacheHits.Add(1)
			if err := s.st.Touch(key); err != nil {
				log.Printf("touch %s: %v", key, err)
			}
			code := calculator.ErrorCode(row.ErrorCode)
			var rerr error
			if code != calculator.Success {
				rerr = storedError{code}
			}
			s.hist.Add(text, row.Value, rerr)
			return CalculationResponse{
				Success:    code == calculator.Success,
				Expression: text,
				Result:     row.Value,
				ErrorCode:  row.ErrorCode,
				Message:    code.String(),
				Cached:     true,
			}
		}
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("find %s: %v", key, err)
		}
		cacheMisses.Add(1)
	}

	value, err := calculator.Evaluate(resolved)
	s.hist.Add(text, value, err)
	code := calculator.CodeOf(err)
	if s.st != nil && resolved != nil {
		infix, _ := calculator.ToInfix(resolved)
		now := time.Now().Unix()
		entry := &model.CalcEntry{
			ParamsHash:      key,
			Input:           text,
			Infix:           infix,
			Value:           value,
			ErrorCode:       int(code),
			ErrorMessage:    code.String(),
			CreatedAt:       now,
			LastAccess:      now,
			ExpiredDuration: int64(s.ttl / time.Second),
		}
		if err := s.st.Save(entry); err != nil {
			log.Printf("save %s: %v", key, err)
		}
	}
	return CalculationResponse{
		Success:    err == nil,
		Expression: text,
		Result:     value,
		ErrorCode:  int(code),
		Message:    code.String(),
	}
}

func (s *Server) handleConvert(ctx *fasthttp.RequestCtx) {
	convertCalls.Add(1)
	var tokens []string
	var text string
	if expr := ctx.FormValue("expr"); expr != nil {
		text = string(expr)
		tokens = strings.Fields(text)
	}
	infix, err := calculator.ToInfix(tokens)
	code := calculator.CodeOf(err)
	resp := ConversionResponse{
		Success:   err == nil,
		RPN:       text,
		Infix:     infix,
		ErrorCode: int(code),
		Message:   code.String(),
	}
	s.reply(ctx, resp, resp.Success)
}

func (s *Server) handleHistory(ctx *fasthttp.RequestCtx) {
	historyCalls.Add(1)
	limit := 50
	if v, err := strconv.Atoi(string(ctx.QueryArgs().Peek("limit"))); err == nil && v > 0 {
		limit = v
	}
	rows := []*model.CalcEntry{}
	if s.st != nil {
		var err error
		rows, err = s.st.Recent(limit)
		if err != nil {
			errorResponses.Add(1)
			ctx.Error(err.Error(), fasthttp.StatusInternalServerError)
			return
		}
		if rows == nil {
			rows = []*model.CalcEntry{}
		}
	}
	s.reply(ctx, rows, true)
}

func (s *Server) reply(ctx *fasthttp.RequestCtx, v interface{}, ok bool) {
	if !ok {
		errorResponses.Add(1)
	}
	buf, err := json.Marshal(v)
	if err != nil {
		ctx.Error(err.Error(), fasthttp.StatusInternalServerError)
		return
	}
	ctx.Success("application/json", buf)
}
