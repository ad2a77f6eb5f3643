package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-variants/internal/observability"
	"github.com/jonathan/resume-variants/internal/rendering"
	"github.com/jonathan/resume-variants/internal/types"
	"github.com/jonathan/resume-variants/internal/validation"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render resumes to LaTeX and optionally PDF",
	Long: "Renders the selected variant (or --variant, --master, --all) to <out>/<name>.tex. " +
		"--pdf also compiles each file; --check validates page count and line lengths.",
	Args: cobra.NoArgs,
	RunE: runRender,
}

var (
	renderVariantID string
	renderMaster    bool
	renderAll       bool
	renderPDF       bool
	renderRemote    bool
	renderCheck     bool
	renderOutDir    string
	renderJobs      int
)

func init() {
	renderCmd.Flags().StringVar(&renderVariantID, "variant", "", "Variant to render (default: the selected variant)")
	renderCmd.Flags().BoolVar(&renderMaster, "master", false, "Render the master resume")
	renderCmd.Flags().BoolVar(&renderAll, "all", false, "Render the master and every variant")
	renderCmd.Flags().BoolVar(&renderPDF, "pdf", false, "Compile PDFs")
	renderCmd.Flags().BoolVar(&renderRemote, "remote", false, "Compile with the remote LaTeX service only")
	renderCmd.Flags().BoolVar(&renderCheck, "check", false, "Validate page count and line lengths")
	renderCmd.Flags().StringVarP(&renderOutDir, "out", "o", "", "Output directory (default: output_dir from config)")
	renderCmd.Flags().IntVarP(&renderJobs, "jobs", "j", 4, "Number of resumes compiled in parallel with --all")
	rootCmd.AddCommand(renderCmd)
}

// renderTarget is one document to render
type renderTarget struct {
	// VariantID is empty for the master
	VariantID string
	Name      string
	Doc       *types.Document
}

// renderResult is what renderOne produced for a target
type renderResult struct {
	Target  renderTarget
	TeXPath string
	PDFPath string
	Report  *validation.Report
}

// renderOptions controls renderOne
type renderOptions struct {
	OutDir   string
	Render   rendering.Options
	Compiler validation.Compiler
	PDF      bool
	Check    bool
	Limits   validation.Limits
}

func runRender(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	app, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer app.close()

	targets, err := collectTargets(app)
	if err != nil {
		return err
	}

	opts := renderOptions{
		OutDir: renderOutDir,
		Render: app.renderOptions(),
		PDF:    renderPDF,
		Check:  renderCheck,
		Limits: app.cfg.Limits,
	}
	if opts.OutDir == "" {
		opts.OutDir = app.cfg.OutputDir
	}
	if renderPDF || renderCheck {
		opts.Compiler = app.compiler(renderRemote)
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	results, err := renderAllTargets(ctx, targets, opts, renderJobs)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printer := observability.NewPrinter(out, verbose)
	failed := 0
	for _, res := range results {
		_, _ = fmt.Fprintf(out, "%s: %s", res.Target.Name, res.TeXPath)
		if res.PDFPath != "" {
			_, _ = fmt.Fprintf(out, ", %s", res.PDFPath)
		}
		_, _ = fmt.Fprintln(out)
		if res.Report == nil {
			continue
		}
		printer.PrintReport(res.Target.Name, res.Report)
		if res.Report.HasErrors() {
			failed++
		}
		app.logger.Info("validated resume",
			zap.String("name", res.Target.Name),
			zap.Int("pages", res.Report.PageCount),
			zap.Int("violations", len(res.Report.Violations)),
		)
	}
	if failed > 0 {
		return fmt.Errorf("%d resume(s) failed validation", failed)
	}
	return nil
}

// collectTargets resolves --master/--all/--variant into documents
func collectTargets(app *appState) ([]renderTarget, error) {
	master := renderTarget{Name: "master", Doc: app.registry.Master()}

	if renderAll {
		targets := []renderTarget{master}
		for _, s := range app.registry.List() {
			doc, err := app.registry.EffectiveDocument(s.ID)
			if err != nil {
				return nil, err
			}
			targets = append(targets, renderTarget{VariantID: s.ID, Name: s.Name, Doc: doc})
		}
		return targets, nil
	}

	id := app.variantOrActive(renderVariantID)
	if renderMaster || id == "" {
		return []renderTarget{master}, nil
	}
	v, err := app.registry.Get(id)
	if err != nil {
		return nil, err
	}
	doc, err := app.registry.EffectiveDocument(id)
	if err != nil {
		return nil, err
	}
	return []renderTarget{{VariantID: id, Name: v.Name, Doc: doc}}, nil
}

// renderAllTargets renders targets concurrently, at most jobs at a time,
// and returns results in target order
func renderAllTargets(ctx context.Context, targets []renderTarget, opts renderOptions, jobs int) ([]renderResult, error) {
	results := make([]renderResult, len(targets))

	g, gCtx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, target := range targets {
		g.Go(func() error {
			res, err := renderOne(gCtx, target, opts)
			if err != nil {
				return fmt.Errorf("failed to render %s: %w", target.Name, err)
			}
			results[i] = *res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// renderOne writes the .tex file of target and, when asked, the PDF and a
// validation report
func renderOne(ctx context.Context, target renderTarget, opts renderOptions) (*renderResult, error) {
	tex, err := rendering.RenderLaTeX(target.Doc, opts.Render)
	if err != nil {
		return nil, err
	}

	base := fileBase(target)
	res := &renderResult{Target: target, TeXPath: filepath.Join(opts.OutDir, base+".tex")}
	if err := os.WriteFile(res.TeXPath, []byte(tex), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", res.TeXPath, err)
	}

	var pdf []byte
	switch {
	case opts.Check:
		res.Report, err = validation.Check(ctx, tex, opts.Compiler, opts.Limits)
		if err != nil {
			return nil, err
		}
		pdf = res.Report.PDF
	case opts.PDF:
		if opts.Compiler == nil {
			return nil, fmt.Errorf("no PDF compiler configured")
		}
		pdf, err = opts.Compiler.Compile(ctx, tex)
		if err != nil {
			return nil, err
		}
	}

	if opts.PDF && len(pdf) > 0 {
		res.PDFPath = filepath.Join(opts.OutDir, base+".pdf")
		if err := os.WriteFile(res.PDFPath, pdf, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", res.PDFPath, err)
		}
	}
	return res, nil
}

// fileBase names output files after the variant, with the id suffix keeping
// variants with equal names apart
func fileBase(t renderTarget) string {
	if t.VariantID == "" {
		return "master"
	}
	slug := slugify(t.Name)
	id := t.VariantID
	if len(id) > 8 {
		id = id[:8]
	}
	if slug == "" {
		return id
	}
	return slug + "-" + id
}

func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
