package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/muhammadheryan/storefront/cmd/config"
	"github.com/muhammadheryan/storefront/formprobe"
	"github.com/muhammadheryan/storefront/utils/logger"
	"go.uber.org/zap"
)

// formprobe inspects a server rendered form, either over plain HTTP (static)
// or inside Chrome with the control panel injected (browser).
func main() {
	fs := flag.NewFlagSet("formprobe", flag.ExitOnError)
	opts := config.RegisterProbeFlags(fs)
	mode := config.StringFlag(fs, "mode", "PROBE_MODE", "static", "static or browser")
	submit := config.BoolFlag(fs, "submit", "PROBE_SUBMIT", false, "submit the form after filling it")
	headless := config.BoolFlag(fs, "headless", "PROBE_HEADLESS", false, "run Chrome without a window")
	keepOpen := config.BoolFlag(fs, "keep-open", "PROBE_KEEP_OPEN", false, "keep the browser open until interrupted")
	_ = fs.Parse(os.Args[1:])

	if err := logger.InitCLI(opts.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var ok bool
	switch *mode {
	case "static":
		ok = runStatic(ctx, opts, *submit)
	case "browser":
		ok = runBrowser(ctx, opts, *submit, *headless, *keepOpen)
	default:
		logger.Error("unknown mode", zap.String("mode", *mode))
		os.Exit(2)
	}
	if !ok {
		os.Exit(1)
	}
}

func runStatic(ctx context.Context, opts *config.ProbeOptions, submit bool) bool {
	p, err := formprobe.New(opts.BaseURL, opts.FormPath, opts.Email, opts.Password)
	if err != nil {
		logger.Error("err build prober", zap.Error(err))
		return false
	}
	if _, err := p.TestConnection(ctx); err != nil {
		return false
	}
	if ok, _ := p.AutoLogin(ctx); !ok {
		logger.Warn("continuing without login")
	}

	form, err := p.FetchForm(ctx, opts.FormPath)
	if err != nil {
		logger.Error("err fetch form", zap.String("path", opts.FormPath), zap.Error(err))
		return false
	}
	printJSON(form)

	values := formprobe.MapFields(*form, formprobe.TestData(time.Now()), p.Token())
	printJSON(values)
	if !submit {
		return true
	}

	res := p.Submit(ctx, form, values, "Manual Submit")
	printJSON(res)
	return res.Success
}

func runBrowser(ctx context.Context, opts *config.ProbeOptions, submit, headless, keepOpen bool) bool {
	b, err := formprobe.NewBrowser(ctx, headless)
	if err != nil {
		logger.Error("err start browser", zap.Error(err))
		return false
	}
	defer b.Close()

	data := formprobe.TestData(time.Now())
	if err := b.Open(opts.BaseURL+opts.FormPath, data, opts.Email, opts.Password); err != nil {
		logger.Error("err open page", zap.Error(err))
		return false
	}

	analysis, err := b.AnalyzeLive()
	if err != nil {
		logger.Error("err analyze", zap.Error(err))
		return false
	}
	if len(analysis.Forms) == 0 || analysis.LoginRequired {
		if ok, err := b.AutoLoginLive(opts.Email, opts.Password); err != nil || !ok {
			logger.Warn("auto login did not run", zap.Error(err))
		} else if analysis, err = b.AnalyzeLive(); err != nil {
			logger.Error("err analyze", zap.Error(err))
			return false
		}
	}
	printJSON(analysis)

	filled, err := b.FillLive(data)
	if err != nil {
		logger.Error("err fill", zap.Error(err))
		return false
	}
	printJSON(filled)

	ok := filled.Valid
	if submit && filled.Valid {
		res, err := b.SubmitLive()
		if err != nil {
			logger.Error("err submit", zap.Error(err))
			return false
		}
		printJSON(res)
		ok = res.OK || res.Redirected
	}

	if keepOpen {
		logger.Info("browser left open, press Ctrl+C to exit")
		b.Wait(ctx)
	}
	printJSON(b.Events())
	return ok
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
