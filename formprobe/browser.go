package formprobe

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/muhammadheryan/storefront/utils/logger"
	"go.uber.org/zap"
)

//go:embed panel.js
var panelJS string

const (
	EventRequest   = "request"
	EventResponse  = "response"
	EventConsole   = "console_error"
	EventException = "exception"
)

// Event is something the page did while the browser was attached.
type Event struct {
	Kind    string    `json:"kind"`
	Method  string    `json:"method,omitempty"`
	URL     string    `json:"url,omitempty"`
	Status  int64     `json:"status,omitempty"`
	Message string    `json:"message,omitempty"`
	At      time.Time `json:"at"`
}

// LiveAnalysis is what the in-page panel reports about the current page.
type LiveAnalysis struct {
	Framework     string `json:"framework"`
	URL           string `json:"url"`
	CSRFField     string `json:"csrf_field"`
	LoginRequired bool   `json:"login_required"`
	Forms         []Form `json:"forms"`
}

type InvalidField struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

type FillResult struct {
	Filled  []string       `json:"filled"`
	Valid   bool           `json:"valid"`
	Invalid []InvalidField `json:"invalid"`
}

type LiveSubmit struct {
	Status     int    `json:"status"`
	OK         bool   `json:"ok"`
	Redirected bool   `json:"redirected"`
	URL        string `json:"url"`
	Snippet    string `json:"snippet"`
}

// Browser is a Chrome tab with the control panel injected.
type Browser struct {
	ctx     context.Context
	cancels []context.CancelFunc
	log     *zap.Logger
	prime   string

	mu     sync.Mutex
	events []Event
}

// NewBrowser starts Chrome. A visible window is used unless headless is set.
func NewBrowser(parent context.Context, headless bool) (*Browser, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),
		chromedp.WindowSize(1280, 900),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, opts...)
	ctx, cancelCtx := chromedp.NewContext(allocCtx)

	b := &Browser{
		ctx:     ctx,
		cancels: []context.CancelFunc{cancelCtx, cancelAlloc},
		log:     logger.Named("formprobe.browser"),
	}
	chromedp.ListenTarget(ctx, b.listen)

	if err := chromedp.Run(ctx, network.Enable()); err != nil {
		b.Close()
		return nil, fmt.Errorf("start browser: %w", err)
	}
	return b, nil
}

func (b *Browser) listen(ev interface{}) {
	switch e := ev.(type) {
	case *network.EventRequestWillBeSent:
		b.record(Event{Kind: EventRequest, Method: e.Request.Method, URL: e.Request.URL})
	case *network.EventResponseReceived:
		b.record(Event{Kind: EventResponse, URL: e.Response.URL, Status: e.Response.Status})
	case *runtime.EventConsoleAPICalled:
		if e.Type != runtime.APITypeError {
			return
		}
		parts := make([]string, 0, len(e.Args))
		for _, arg := range e.Args {
			if arg.Description != "" {
				parts = append(parts, arg.Description)
			} else {
				parts = append(parts, string(arg.Value))
			}
		}
		b.record(Event{Kind: EventConsole, Message: strings.Join(parts, " ")})
	case *runtime.EventExceptionThrown:
		msg := e.ExceptionDetails.Text
		if e.ExceptionDetails.Exception != nil && e.ExceptionDetails.Exception.Description != "" {
			msg = e.ExceptionDetails.Exception.Description
		}
		b.record(Event{Kind: EventException, Message: msg})
	}
}

func (b *Browser) record(e Event) {
	e.At = time.Now()
	b.mu.Lock()
	b.events = append(b.events, e)
	b.mu.Unlock()

	switch e.Kind {
	case EventConsole, EventException:
		b.log.Warn("page error", zap.String("kind", e.Kind), zap.String("message", e.Message))
	case EventResponse:
		b.log.Debug("response", zap.String("url", e.URL), zap.Int64("status", e.Status))
	default:
		b.log.Debug("request", zap.String("method", e.Method), zap.String("url", e.URL))
	}
}

// Events returns everything logged so far.
func (b *Browser) Events() []Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Event, len(b.events))
	copy(out, b.events)
	return out
}

// Open navigates to url and injects the panel, priming it with the test data
// and credentials its buttons use.
func (b *Browser) Open(url string, data map[string]string, email, password string) error {
	prime, err := primeScript(data, email, password)
	if err != nil {
		return err
	}
	b.prime = prime

	err = chromedp.Run(b.ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		return err
	}
	return b.Inject()
}

// Inject adds the panel to the current page. Navigation drops it.
func (b *Browser) Inject() error {
	var ok bool
	return chromedp.Run(b.ctx,
		chromedp.Evaluate(b.prime+"\n"+panelJS, &ok),
	)
}

func primeScript(data map[string]string, email, password string) (string, error) {
	parts := map[string]interface{}{
		"__formprobeData":     data,
		"__formprobeKeys":     DataKeys,
		"__formprobeMappings": Mappings,
		"__formprobeEmail":    email,
		"__formprobePassword": password,
	}
	var b strings.Builder
	for name, v := range parts {
		raw, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "window.%s = %s;\n", name, raw)
	}
	b.WriteString("true;")
	return b.String(), nil
}

// AnalyzeLive runs the panel's form analysis on the live page.
func (b *Browser) AnalyzeLive() (*LiveAnalysis, error) {
	var out LiveAnalysis
	if err := chromedp.Run(b.ctx, chromedp.Evaluate(`window.__formprobe.analyze()`, &out)); err != nil {
		return nil, err
	}
	return &out, nil
}

// FillLive fills the live form with data using the same mappings as MapFields.
func (b *Browser) FillLive(data map[string]string) (*FillResult, error) {
	rawData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	rawKeys, _ := json.Marshal(DataKeys)
	rawMappings, _ := json.Marshal(Mappings)

	var out FillResult
	expr := fmt.Sprintf(`window.__formprobe.fill(%s, %s, %s)`, rawData, rawKeys, rawMappings)
	if err := chromedp.Run(b.ctx, chromedp.Evaluate(expr, &out)); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitLive posts the live form from inside the page.
func (b *Browser) SubmitLive() (*LiveSubmit, error) {
	var out LiveSubmit
	err := chromedp.Run(b.ctx, chromedp.Evaluate(`window.__formprobe.submit()`, &out,
		func(p *runtime.EvaluateParams) *runtime.EvaluateParams { return p.WithAwaitPromise(true) }))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AutoLoginLive fills and submits a login form on the current page.
func (b *Browser) AutoLoginLive(email, password string) (bool, error) {
	rawEmail, _ := json.Marshal(email)
	rawPassword, _ := json.Marshal(password)

	var ok bool
	expr := fmt.Sprintf(`window.__formprobe.autoLogin(%s, %s)`, rawEmail, rawPassword)
	if err := chromedp.Run(b.ctx, chromedp.Evaluate(expr, &ok)); err != nil {
		return false, err
	}
	if ok {
		// let the navigation triggered by the click settle
		err := chromedp.Run(b.ctx, chromedp.Sleep(time.Second), chromedp.WaitReady("body", chromedp.ByQuery))
		if err != nil {
			return true, err
		}
		return true, b.Inject()
	}
	return false, nil
}

// Wait blocks until ctx ends or the browser is closed.
func (b *Browser) Wait(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-b.ctx.Done():
	}
}

func (b *Browser) Close() {
	for _, cancel := range b.cancels {
		cancel()
	}
}
