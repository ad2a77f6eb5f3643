package validation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCompiler struct {
	pdf   []byte
	err   error
	calls int
}

func (s *stubCompiler) Name() string { return "stub" }

func (s *stubCompiler) Compile(_ context.Context, _ string) ([]byte, error) {
	s.calls++
	return s.pdf, s.err
}

func TestCheck_WithinLimits(t *testing.T) {
	report, err := Check(context.Background(), "short", &stubCompiler{pdf: buildPDF(1)}, Limits{MaxPages: 1, MaxCharsPerLine: 90})
	require.NoError(t, err)
	assert.Equal(t, 1, report.PageCount)
	assert.Empty(t, report.Violations)
	assert.False(t, report.HasErrors())
	assert.NotEmpty(t, report.PDF)
}

func TestCheck_PageOverflow(t *testing.T) {
	report, err := Check(context.Background(), "short", &stubCompiler{pdf: buildPDF(2)}, Limits{MaxPages: 1})
	require.NoError(t, err)
	require.Len(t, report.Violations, 1)
	assert.Equal(t, ViolationPageOverflow, report.Violations[0].Type)
	assert.True(t, report.HasErrors())
}

func TestCheck_CompilationFailureIsViolation(t *testing.T) {
	compiler := &stubCompiler{err: &CompilationError{Message: "undefined control sequence"}}
	tex := strings.Repeat("x", 120)

	report, err := Check(context.Background(), tex, compiler, Limits{MaxPages: 1, MaxCharsPerLine: 100})
	require.NoError(t, err)
	require.Len(t, report.Violations, 2)
	assert.Equal(t, ViolationLineTooLong, report.Violations[0].Type)
	assert.Equal(t, ViolationLaTeXError, report.Violations[1].Type)
	assert.Contains(t, report.Violations[1].Details, "undefined control sequence")
}

func TestCheck_UnexpectedErrorReturned(t *testing.T) {
	_, err := Check(context.Background(), "x", &stubCompiler{err: errors.New("boom")}, Limits{})
	assert.Error(t, err)
}

func TestCheck_NoCompiler(t *testing.T) {
	report, err := Check(context.Background(), "x", nil, Limits{MaxPages: 1})
	require.NoError(t, err)
	assert.Zero(t, report.PageCount)
	assert.Empty(t, report.Violations)
}

func TestRemoteCompiler_Success(t *testing.T) {
	pdf := buildPDF(1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req remoteRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "pdflatex", req.Compiler)
		if assert.Len(t, req.Resources, 1) {
			assert.True(t, req.Resources[0].Main)
			assert.Equal(t, `\documentclass{article}`, req.Resources[0].Content)
		}

		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(pdf)
	}))
	defer server.Close()

	got, err := NewRemoteCompiler(server.URL).Compile(context.Background(), `\documentclass{article}`)
	require.NoError(t, err)
	assert.Equal(t, pdf, got)
}

func TestRemoteCompiler_ErrorLog(t *testing.T) {
	tests := []struct {
		name   string
		status int
		ctype  string
	}{
		{"non pdf body", http.StatusOK, "text/plain"},
		{"error status", http.StatusBadRequest, "application/json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", tt.ctype)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("! Undefined control sequence."))
			}))
			defer server.Close()

			_, err := NewRemoteCompiler(server.URL).Compile(context.Background(), "x")
			var compErr *CompilationError
			require.ErrorAs(t, err, &compErr)
			assert.Equal(t, "! Undefined control sequence.", compErr.LogOutput)
			assert.Equal(t, "latex-on-http", compErr.Compiler)
		})
	}
}

func TestRemoteCompiler_DefaultEndpoint(t *testing.T) {
	assert.Equal(t, DefaultRemoteEndpoint, NewRemoteCompiler("").Endpoint)
}

func TestFallbackCompiler(t *testing.T) {
	failing := &stubCompiler{err: &CompilationError{Message: "down"}}
	working := &stubCompiler{pdf: []byte("%PDF")}
	unused := &stubCompiler{pdf: []byte("never")}

	c := &FallbackCompiler{Compilers: []Compiler{failing, working, unused}}
	pdf, err := c.Compile(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), pdf)
	assert.Equal(t, 0, unused.calls)
	assert.Equal(t, "stub,stub,stub", c.Name())

	all := &FallbackCompiler{Compilers: []Compiler{failing, failing}}
	_, err = all.Compile(context.Background(), "x")
	var compErr *CompilationError
	assert.ErrorAs(t, err, &compErr)

	_, err = (&FallbackCompiler{}).Compile(context.Background(), "x")
	assert.Error(t, err)
}

func TestLocalCompiler_MissingBinary(t *testing.T) {
	c := &LocalCompiler{Binary: "definitely-not-a-real-pdflatex"}
	_, err := c.Compile(context.Background(), "x")
	var compErr *CompilationError
	require.ErrorAs(t, err, &compErr)
	assert.Contains(t, compErr.Message, "not found in PATH")
}
