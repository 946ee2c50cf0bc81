// Package exec runs user code through the remote Piston execution API.
package exec

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Runner proxies execution requests to a Piston-compatible endpoint.
type Runner struct {
	url    string
	client *http.Client
}

func NewRunner(url string) *Runner {
	return &Runner{
		url:    url,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

type pistonRequest struct {
	Language string       `json:"language"`
	Version  string       `json:"version"`
	Files    []pistonFile `json:"files"`
}

type pistonFile struct {
	Content string `json:"content"`
}

type pistonResponse struct {
	Run struct {
		Stdout string `json:"stdout"`
		Stderr string `json:"stderr"`
	} `json:"run"`
	Message string `json:"message"`
}

// Result holds the captured output of one execution.
type Result struct {
	Stdout string
	Stderr string
}

// Run submits code for execution and returns its stdout/stderr.
func (r *Runner) Run(ctx context.Context, language, code string) (Result, error) {
	payload := pistonRequest{
		Language: language,
		Version:  "*",
		Files:    []pistonFile{{Content: code}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return Result{}, fmt.Errorf("failed to encode run request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("failed to call execution service: %w", err)
	}
	defer resp.Body.Close()

	var out pistonResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Result{}, fmt.Errorf("failed to decode execution response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if out.Message != "" {
			return Result{}, fmt.Errorf("execution service: %s", out.Message)
		}
		return Result{}, fmt.Errorf("execution service returned status %d", resp.StatusCode)
	}

	return Result{Stdout: out.Run.Stdout, Stderr: out.Run.Stderr}, nil
}
