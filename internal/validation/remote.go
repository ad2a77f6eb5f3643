package validation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultRemoteEndpoint is the public latex-on-http build endpoint
const DefaultRemoteEndpoint = "https://latex.ytotech.com/builds/sync"

// RemoteCompiler posts LaTeX to a latex-on-http service
type RemoteCompiler struct {
	Endpoint   string
	HTTPClient *http.Client
}

// NewRemoteCompiler creates a client for endpoint, or the public service when empty
func NewRemoteCompiler(endpoint string) *RemoteCompiler {
	if endpoint == "" {
		endpoint = DefaultRemoteEndpoint
	}
	return &RemoteCompiler{
		Endpoint:   endpoint,
		HTTPClient: &http.Client{Timeout: 2 * CompilationTimeout},
	}
}

type remoteResource struct {
	Main    bool   `json:"main"`
	Content string `json:"content"`
}

type remoteRequest struct {
	Compiler  string           `json:"compiler"`
	Resources []remoteResource `json:"resources"`
}

// Name implements Compiler
func (c *RemoteCompiler) Name() string { return "latex-on-http" }

// Compile implements Compiler. A PDF content type means success; anything
// else is the service's error log.
func (c *RemoteCompiler) Compile(ctx context.Context, tex string) ([]byte, error) {
	body, err := json.Marshal(remoteRequest{
		Compiler:  "pdflatex",
		Resources: []remoteResource{{Main: true, Content: tex}},
	})
	if err != nil {
		return nil, &CompilationError{Compiler: c.Name(), Message: "failed to encode request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &CompilationError{Compiler: c.Name(), Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &CompilationError{
			Compiler: c.Name(),
			Message:  "compilation service failed; download the .tex file and compile it locally with pdflatex",
			Cause:    err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &CompilationError{Compiler: c.Name(), Message: "failed to read response", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &CompilationError{
			Compiler:  c.Name(),
			Message:   fmt.Sprintf("service returned status %d", resp.StatusCode),
			LogOutput: string(payload),
		}
	}
	if !strings.Contains(resp.Header.Get("Content-Type"), "application/pdf") {
		return nil, &CompilationError{
			Compiler:  c.Name(),
			Message:   "service did not return a PDF",
			LogOutput: string(payload),
		}
	}
	return payload, nil
}
