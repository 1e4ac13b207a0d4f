// Package prover sends solver scripts to the external theorem-proving
// service and classifies its answer.
package prover

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/liamcoop/logicgraph/internal/logger"
)

// Verdict is the outcome of a proof attempt
type Verdict string

const (
	VerdictProven       Verdict = "proven"
	VerdictNotProven    Verdict = "not_proven"
	VerdictUndetermined Verdict = "undetermined"
	VerdictError        Verdict = "error"
)

const (
	provenPrefix       = "Theorem proven"
	notProvenPrefix    = "Theorem not proven"
	undeterminedPrefix = "The theorem proof is undetermined"
	counterexampleMark = "Found a counterexample."
)

// DefaultTimeout bounds a single solver call
const DefaultTimeout = 30 * time.Second

var ErrSolverUnavailable = errors.New("solver unavailable")

// Result is the solver's message and its classification
type Result struct {
	Verdict        Verdict `json:"verdict"`
	Message        string  `json:"message"`
	Counterexample string  `json:"counterexample,omitempty"`
}

// Prover checks whether conclusion follows from the premises script
type Prover interface {
	Prove(ctx context.Context, premises []string, conclusion string) (Result, error)
}

// Classify maps a solver message onto a Verdict. Anything that is not a
// recognised success, counterexample or undetermined answer is an error.
func Classify(message string) Result {
	msg := strings.TrimSpace(message)
	res := Result{Message: msg}

	switch {
	case strings.HasPrefix(msg, notProvenPrefix):
		res.Verdict = VerdictNotProven
		if i := strings.Index(msg, counterexampleMark); i >= 0 {
			res.Counterexample = strings.TrimSpace(msg[i+len(counterexampleMark):])
		}
	case strings.HasPrefix(msg, provenPrefix):
		res.Verdict = VerdictProven
	case strings.HasPrefix(msg, undeterminedPrefix):
		res.Verdict = VerdictUndetermined
	default:
		res.Verdict = VerdictError
	}
	return res
}

type proveRequest struct {
	Premises   []string `json:"premises"`
	Conclusion string   `json:"conclusion"`
}

type proveResponse struct {
	Message string `json:"message"`
}

// HTTPProver calls POST {baseURL}/prove_theorem
type HTTPProver struct {
	baseURL string
	client  *http.Client
}

type Option func(*HTTPProver)

// WithHTTPClient replaces the default client
func WithHTTPClient(c *http.Client) Option {
	return func(p *HTTPProver) { p.client = c }
}

func NewHTTPProver(baseURL string, opts ...Option) *HTTPProver {
	p := &HTTPProver{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Prove posts the script. A rejected script (non-2xx with a message body)
// comes back as an error verdict, not a Go error; transport failures and
// unreadable responses wrap ErrSolverUnavailable.
func (p *HTTPProver) Prove(ctx context.Context, premises []string, conclusion string) (Result, error) {
	body, err := json.Marshal(proveRequest{Premises: premises, Conclusion: conclusion})
	if err != nil {
		return Result{}, fmt.Errorf("failed to encode prove request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/prove_theorem", bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("failed to build prove request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		logger.Warn("Solver request failed", "error", err)
		return Result{}, fmt.Errorf("%w: %v", ErrSolverUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Result{}, fmt.Errorf("%w: reading response: %v", ErrSolverUnavailable, err)
	}

	var out proveResponse
	if err := json.Unmarshal(data, &out); err != nil || out.Message == "" {
		logger.Warn("Unexpected solver response", "status", resp.StatusCode, "body_size", len(data))
		return Result{}, fmt.Errorf("%w: status %d with no message", ErrSolverUnavailable, resp.StatusCode)
	}

	res := Classify(out.Message)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		res.Verdict = VerdictError
	}

	logger.Debug("Solver answered",
		"status", resp.StatusCode,
		"verdict", res.Verdict,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}
