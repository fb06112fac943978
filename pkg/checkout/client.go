package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// EnrollmentsPath is where submissions are posted
	EnrollmentsPath = "/api/v1/enrollments"
	// SuccessPath is the page a client moves to after an accepted submission
	SuccessPath = "/checkout/success"

	DefaultPrice    = 4999
	DefaultCurrency = "INR"

	defaultTimeout = 15 * time.Second
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Request is one checkout attempt for a catalog entity
type Request struct {
	UserEmail      string
	CourseType     string
	CourseSlug     string
	Amount         float64
	Currency       string
	IdempotencyKey string
}

// Result describes an accepted submission
type Result struct {
	StatusCode  int
	SuccessPath string
}

// ValidationError is raised before any network call
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// SubmitError carries the message a user should see for a failed submission
type SubmitError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *SubmitError) Error() string {
	return e.Message
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

type enrollmentBody struct {
	UserEmail  string  `json:"userEmail"`
	CourseType string  `json:"courseType"`
	CourseSlug string  `json:"courseSlug"`
	Status     string  `json:"status"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
}

// Client submits enrollments to the backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for baseURL. A nil httpClient gets a default with a timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Submit checks the email locally, posts the enrollment as pending and
// returns where to go next. The server validates everything again.
func (c *Client) Submit(ctx context.Context, req Request) (*Result, error) {
	email := strings.TrimSpace(req.UserEmail)
	if email == "" {
		return nil, &ValidationError{Field: "userEmail", Message: "Please enter your email"}
	}
	if !emailRe.MatchString(email) {
		return nil, &ValidationError{Field: "userEmail", Message: "Please enter a valid email address"}
	}

	payload, err := json.Marshal(enrollmentBody{
		UserEmail:  email,
		CourseType: req.CourseType,
		CourseSlug: req.CourseSlug,
		Status:     "pending",
		Amount:     req.Amount,
		Currency:   strings.ToUpper(req.Currency),
	})
	if err != nil {
		return nil, &SubmitError{Message: "Something went wrong", Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+EnrollmentsPath, bytes.NewReader(payload))
	if err != nil {
		return nil, &SubmitError{Message: "Something went wrong", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Cache-Control", "no-store")
	if req.IdempotencyKey != "" {
		httpReq.Header.Set("Idempotency-Key", req.IdempotencyKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &SubmitError{Message: "Something went wrong", Err: err}
	}
	defer resp.Body.Close()

	// an unreadable body is fine, only the status decides
	raw, _ := io.ReadAll(resp.Body)
	var body map[string]any
	_ = json.Unmarshal(raw, &body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &SubmitError{StatusCode: resp.StatusCode, Message: failureMessage(body, resp.StatusCode)}
	}

	return &Result{
		StatusCode:  resp.StatusCode,
		SuccessPath: BuildSuccessPath(req.CourseType, req.CourseSlug),
	}, nil
}

func failureMessage(body map[string]any, status int) string {
	for _, key := range []string{"error", "message"} {
		if s, ok := body[key].(string); ok && s != "" {
			return s
		}
	}
	return fmt.Sprintf("Checkout failed (%d)", status)
}

// BuildSuccessPath returns /checkout/success?course=<type>&slug=<slug>
func BuildSuccessPath(courseType, slug string) string {
	qs := url.Values{}
	qs.Set("course", courseType)
	qs.Set("slug", slug)
	return SuccessPath + "?" + qs.Encode()
}

// Verb names the action for a catalog type
func Verb(courseType string) string {
	if courseType == "hackathon" {
		return "registration"
	}
	return "enrollment"
}

// FormatAmount renders a whole-unit price like "INR 4,999". Unknown
// currency codes fall back to the plain number.
func FormatAmount(amount float64, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if _, err := currency.ParseISO(code); err != nil {
		return code + " " + strconv.FormatFloat(amount, 'f', -1, 64)
	}
	p := message.NewPrinter(language.MustParse("en-IN"))
	return p.Sprintf("%s %d", code, int64(math.Round(amount)))
}
