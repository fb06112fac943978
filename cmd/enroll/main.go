package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"learnpath.backend/internal/config"
	"learnpath.backend/pkg/checkout"
)

var loadCfg = config.Load

// enroll submits a checkout the way the storefront does, for smoke tests
// against a running backend.
func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	defaults := loadCfg().Checkout

	fs := flag.NewFlagSet("enroll", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	api := fs.String("api", envOr("LEARNPATH_API_URL", "http://localhost:8080"), "backend base URL")
	email := fs.String("email", "", "student email")
	courseType := fs.String("type", "course", "catalog type: skillpath, careerpath, course or hackathon")
	slug := fs.String("slug", "", "catalog slug")
	amount := fs.Float64("amount", defaults.DefaultPrice, "price in whole units")
	currency := fs.String("currency", defaults.DefaultCurrency, "ISO 4217 code")
	key := fs.String("idempotency-key", "", "optional Idempotency-Key header")
	timeout := fs.Duration("timeout", 15*time.Second, "request timeout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*slug) == "" {
		return errors.New("-slug is required")
	}

	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	fmt.Fprintf(out, "Submitting %s for %s/%s (%s)\n",
		checkout.Verb(*courseType), *courseType, *slug, checkout.FormatAmount(*amount, *currency))

	res, err := checkout.NewClient(*api, nil).Submit(ctx, checkout.Request{
		UserEmail:      *email,
		CourseType:     *courseType,
		CourseSlug:     *slug,
		Amount:         *amount,
		Currency:       *currency,
		IdempotencyKey: *key,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Accepted (%d), continue at %s\n", res.StatusCode, res.SuccessPath)
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
