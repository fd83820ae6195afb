package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/muhammadheryan/storefront/client"
	"github.com/muhammadheryan/storefront/client/store"
	"github.com/muhammadheryan/storefront/cmd/config"
	"github.com/muhammadheryan/storefront/formprobe"
	"github.com/muhammadheryan/storefront/model"
	"github.com/muhammadheryan/storefront/utils/logger"
	"go.uber.org/zap"
)

// apitester checks a running storefront end to end: the server rendered
// product form first, then the JSON API through the client store.
func main() {
	fs := flag.NewFlagSet("apitester", flag.ExitOnError)
	opts := config.RegisterProbeFlags(fs)
	skipForm := config.BoolFlag(fs, "skip-form", "PROBE_SKIP_FORM", false, "skip the form scenarios")
	skipAPI := config.BoolFlag(fs, "skip-api", "PROBE_SKIP_API", false, "skip the JSON API run")
	_ = fs.Parse(os.Args[1:])

	if err := logger.InitCLI(opts.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var results []formprobe.Result
	if !*skipForm {
		results = append(results, runForm(ctx, opts)...)
	}
	if !*skipAPI {
		results = append(results, runAPI(ctx, opts)...)
	}

	summary := formprobe.Summarize(opts.BaseURL, opts.FormPath, results)
	printSummary(summary)
	if summary.Passed == 0 {
		os.Exit(1)
	}
}

func runForm(ctx context.Context, opts *config.ProbeOptions) []formprobe.Result {
	p, err := formprobe.New(opts.BaseURL, opts.FormPath, opts.Email, opts.Password)
	if err != nil {
		logger.Error("err build prober", zap.Error(err))
		return nil
	}
	if _, err := p.TestConnection(ctx); err != nil {
		return []formprobe.Result{{Name: "Connection", Message: err.Error(), Err: err.Error()}}
	}
	if ok, _ := p.AutoLogin(ctx); !ok {
		logger.Warn("continuing without login (might be an open endpoint)")
	}
	form, err := p.FetchForm(ctx, opts.FormPath)
	if err != nil {
		return []formprobe.Result{{Name: "Fetch Form", Message: err.Error(), Err: err.Error()}}
	}
	return p.RunScenarios(ctx, form, formprobe.TestData(time.Now()))
}

// apiRun records one result per API step.
type apiRun struct {
	results []formprobe.Result
}

func (r *apiRun) step(name string, fn func() error) bool {
	res := formprobe.Result{Name: name, Success: true, Message: "ok"}
	if err := fn(); err != nil {
		res.Success, res.Message, res.Err = false, err.Error(), err.Error()
		logger.Warn("api step failed", zap.String("step", name), zap.Error(err))
	} else {
		logger.Info("api step passed", zap.String("step", name))
	}
	r.results = append(r.results, res)
	return res.Success
}

func runAPI(ctx context.Context, opts *config.ProbeOptions) []formprobe.Result {
	c, err := client.New(opts.BaseURL)
	if err != nil {
		logger.Error("err build client", zap.Error(err))
		return nil
	}
	s := store.New(c)
	run := &apiRun{}

	run.step("API Health", func() error {
		_, err := c.Health(ctx)
		return err
	})
	if !run.step("API Login", func() error { return s.Login(ctx, opts.Email, opts.Password) }) {
		return run.results
	}
	run.step("List Products", func() error {
		return s.FetchProducts(ctx, model.ProductQuery{Page: 1, PerPage: 20})
	})

	price := 19.99
	var product *model.ProductEntity
	created := run.step("Create Product", func() error {
		var err error
		product, err = s.CreateProduct(ctx, &model.ProductRequest{
			Title:       fmt.Sprintf("API Test Product %d", time.Now().Unix()),
			Description: "Created by the API tester",
			Price:       &price,
		})
		return err
	})
	if !created {
		return run.results
	}
	id := product.ID

	run.step("Update Product", func() error {
		updated := price + 1
		_, err := s.UpdateProduct(ctx, id, &model.ProductRequest{
			Title:       product.Title + " (updated)",
			Description: product.Description,
			Price:       &updated,
		})
		return err
	})

	if run.step("Add To Cart", func() error { return s.AddToCart(ctx, id, 1) }) {
		itemID := cartItemFor(s.Snapshot(), id)
		run.step("Update Cart Item", func() error { return s.UpdateCartItem(ctx, itemID, 2) })
		run.step("Remove From Cart", func() error { return s.RemoveFromCart(ctx, itemID) })
	}

	if run.step("Add To Wishlist", func() error { return s.AddToWishlist(ctx, id) }) {
		run.step("Remove From Wishlist", func() error { return s.RemoveFromWishlist(ctx, id) })
	}

	var review *model.Review
	reviewed := run.step("Create Review", func() error {
		var err error
		review, err = s.CreateReview(ctx, id, &model.ReviewRequest{Rating: 4, Title: "Solid", Content: "Works as described"})
		return err
	})
	if reviewed {
		run.step("Update Review", func() error {
			_, err := s.UpdateReview(ctx, review.ID, &model.ReviewRequest{Rating: 5, Title: "Great", Content: "Even better on a second look"})
			return err
		})
		run.step("Delete Review", func() error { return s.DeleteReview(ctx, review.ID) })
	}

	run.step("Delete Product", func() error { return s.DeleteProduct(ctx, id) })
	run.step("API Logout", func() error { return s.Logout(ctx) })
	return run.results
}

func cartItemFor(st store.State, productID uint64) uint64 {
	for _, it := range st.Cart.Items {
		if it.ProductID == productID {
			return it.ID
		}
	}
	return 0
}

func printSummary(s formprobe.Summary) {
	fmt.Println()
	fmt.Println("TEST SUMMARY")
	fmt.Printf("Tests run: %d\nSuccessful: %d\nFailed: %d\n\n", s.Total, s.Passed, s.Failed)
	for _, r := range s.Results {
		status := "FAIL"
		if r.Success {
			status = "PASS"
		}
		fmt.Printf("  %s: %s - %s\n", status, r.Name, r.Message)
	}
	fmt.Println("\nRECOMMENDATIONS:")
	for _, rec := range s.Recommendations {
		fmt.Println("- " + rec)
	}
}
