package qcircuit

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

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

const (
	jobCompleted = "completed"
	jobFailed    = "failed"
	jobCancelled = "cancelled"
)

/*
HTTPProvider talks to a remote quantum execution service over JSON/HTTP.
The service exposes:

	GET  /status          session check, 200 when the token is accepted
	GET  /backends        list of Candidate
	POST /jobs            submit {backend, shots, circuit}, returns {id}
	GET  /jobs/{id}       {id, status, counts, error}

Jobs on physical hardware queue, so Submit polls the job until it completes,
fails, or the poll budget runs out.
*/
type HTTPProvider struct {
	name   string
	url    string
	token  string
	client *http.Client
	poll   *RetryPolicy
	logger *log.Logger
}

/*
NewHTTPProvider creates a provider client from the remote section of the
configuration.

Parameters:
  - cfg: Endpoint, credentials, request timeout and polling budget
  - logger: Destination for job progress lines

Returns:
  - *HTTPProvider: A client that has not contacted the service yet
*/
func NewHTTPProvider(cfg RemoteConfig, logger *log.Logger) *HTTPProvider {
	return &HTTPProvider{
		name:   cfg.Name,
		url:    strings.TrimRight(cfg.URL, "/"),
		token:  cfg.Token,
		client: &http.Client{Timeout: cfg.Timeout},
		poll: &RetryPolicy{
			MaxAttempts: cfg.MaxPolls,
			Strategy:    &ExponentialBackoff{Initial: cfg.PollInterval, Max: 30 * time.Second},
		},
		logger: logger,
	}
}

func (p *HTTPProvider) Name() string {
	return p.name
}

// Connect verifies that the service is reachable and accepts the token.
func (p *HTTPProvider) Connect(ctx context.Context) error {
	if p.url == "" {
		return errors.New("no provider endpoint configured")
	}
	if p.token == "" {
		return errors.New("no provider credentials configured")
	}

	return p.do(ctx, http.MethodGet, "/status", nil, nil)
}

// ListBackends returns the advertised backends accepted by filter.
func (p *HTTPProvider) ListBackends(ctx context.Context, filter func(Candidate) bool) ([]Candidate, error) {
	var all []Candidate
	if err := p.do(ctx, http.MethodGet, "/backends", nil, &all); err != nil {
		return nil, err
	}

	if filter == nil {
		return all, nil
	}

	out := make([]Candidate, 0, len(all))
	for _, c := range all {
		if filter(c) {
			out = append(out, c)
		}
	}

	return out, nil
}

type jobRequest struct {
	Backend string   `json:"backend"`
	Shots   int      `json:"shots"`
	Circuit *Circuit `json:"circuit"`
}

type jobStatus struct {
	ID     string    `json:"id"`
	Status string    `json:"status"`
	Counts Histogram `json:"counts,omitempty"`
	Error  string    `json:"error,omitempty"`
}

// Submit queues the circuit on the candidate and blocks until it has counts.
func (p *HTTPProvider) Submit(ctx context.Context, circuit *Circuit, candidate Candidate, shots int) (Histogram, error) {
	var handle jobStatus
	req := jobRequest{Backend: candidate.Name, Shots: shots, Circuit: circuit}

	if err := p.do(ctx, http.MethodPost, "/jobs", req, &handle); err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}

	if handle.ID == "" {
		return nil, errors.New("submit: service returned no job id")
	}

	p.logger.Info("job submitted", "job", handle.ID, "backend", candidate.Name, "shots", shots)

	for attempt := 1; attempt <= p.poll.MaxAttempts; attempt++ {
		var status jobStatus
		if err := p.do(ctx, http.MethodGet, "/jobs/"+handle.ID, nil, &status); err != nil {
			return nil, fmt.Errorf("poll job %s: %w", handle.ID, err)
		}

		switch status.Status {
		case jobCompleted:
			if len(status.Counts) == 0 {
				return nil, fmt.Errorf("job %s completed without counts", handle.ID)
			}
			return status.Counts, nil
		case jobFailed, jobCancelled:
			return nil, fmt.Errorf("job %s %s: %s", handle.ID, status.Status, status.Error)
		}

		p.logger.Debug("job pending", "job", handle.ID, "status", status.Status, "attempt", attempt)

		if attempt == p.poll.MaxAttempts {
			break
		}
		if err := p.poll.Wait(ctx, attempt); err != nil {
			return nil, fmt.Errorf("poll job %s: %w", handle.ID, err)
		}
	}

	return nil, fmt.Errorf("job %s did not complete after %d polls", handle.ID, p.poll.MaxAttempts)
}

func (p *HTTPProvider) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.url+path, body)
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", "Bearer "+p.token)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: %s: %s", method, path, resp.Status, strings.TrimSpace(string(msg)))
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
