package validation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-variants/internal/logging"
)

const (
	// CompilationTimeout is the maximum time to wait for LaTeX compilation
	CompilationTimeout = 30 * time.Second
)

// Compiler turns LaTeX source into PDF bytes
type Compiler interface {
	Compile(ctx context.Context, tex string) ([]byte, error)
	Name() string
}

// LocalCompiler runs pdflatex in a scratch directory
type LocalCompiler struct {
	// Binary defaults to "pdflatex"
	Binary  string
	Timeout time.Duration
}

// Name implements Compiler
func (c *LocalCompiler) Name() string { return "pdflatex" }

// Compile implements Compiler
func (c *LocalCompiler) Compile(ctx context.Context, tex string) ([]byte, error) {
	binary := c.Binary
	if binary == "" {
		binary = "pdflatex"
	}
	if _, err := exec.LookPath(binary); err != nil {
		return nil, &CompilationError{
			Compiler: c.Name(),
			Message:  binary + " not found in PATH. Please install a LaTeX distribution (e.g., TeX Live, MiKTeX)",
			Cause:    err,
		}
	}

	workDir, err := os.MkdirTemp("", "latex-compile-*")
	if err != nil {
		return nil, &CompilationError{Compiler: c.Name(), Message: "failed to create temporary working directory", Cause: err}
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	texPath := filepath.Join(workDir, "resume.tex")
	if err := os.WriteFile(texPath, []byte(tex), 0644); err != nil {
		return nil, &CompilationError{Compiler: c.Name(), Message: "failed to write LaTeX source", Cause: err}
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = CompilationTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// -interaction=nonstopmode keeps pdflatex from waiting on stdin
	cmd := exec.CommandContext(ctx, binary, "-interaction=nonstopmode", "-output-directory", workDir, texPath)
	var output strings.Builder
	cmd.Stdout = &output
	cmd.Stderr = &output
	runErr := cmd.Run()

	pdf, readErr := os.ReadFile(filepath.Join(workDir, "resume.pdf"))
	if readErr != nil {
		return nil, &CompilationError{
			Compiler:  c.Name(),
			Message:   "PDF was not generated",
			LogOutput: output.String(),
			Cause:     errors.Join(runErr, readErr),
		}
	}
	if runErr != nil {
		// pdflatex can exit non-zero and still write a usable PDF
		return pdf, &CompilationError{
			Compiler:  c.Name(),
			Message:   "completed with errors (PDF may be incomplete)",
			LogOutput: output.String(),
			Cause:     runErr,
		}
	}
	return pdf, nil
}

// FallbackCompiler tries each compiler in order and returns the first PDF
type FallbackCompiler struct {
	Compilers []Compiler
	Logger    *zap.Logger
}

// Name implements Compiler
func (c *FallbackCompiler) Name() string {
	names := make([]string, len(c.Compilers))
	for i, inner := range c.Compilers {
		names[i] = inner.Name()
	}
	return strings.Join(names, ",")
}

// Compile implements Compiler
func (c *FallbackCompiler) Compile(ctx context.Context, tex string) ([]byte, error) {
	if len(c.Compilers) == 0 {
		return nil, &CompilationError{Message: "no compiler configured"}
	}
	logger := logging.OrNop(c.Logger)

	var errs []error
	for _, inner := range c.Compilers {
		pdf, err := inner.Compile(ctx, tex)
		if err == nil {
			return pdf, nil
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("compilation cancelled: %w", ctx.Err())
		}
		logger.Warn("compiler failed, trying next", zap.String("compiler", inner.Name()), zap.Error(err))
		errs = append(errs, err)
	}
	return nil, errors.Join(errs...)
}
