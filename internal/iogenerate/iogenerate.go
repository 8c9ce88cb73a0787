// Package iogenerate implements the lifecycle.Generator interface. It
// reads the inputs, runs one emitter pass per output style, checks the
// result and writes the test files.
//
// The passes run concurrently. Every pass builds its own catalog, entity
// index and emitter from the raw input bytes, so passes share nothing
// but the read-only plan.
package iogenerate

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/g3zod/CreateADIFTestFiles/internal/iocatalog"
	"github.com/g3zod/CreateADIFTestFiles/internal/iocheck"
	"github.com/g3zod/CreateADIFTestFiles/internal/ioentities"
	"github.com/g3zod/CreateADIFTestFiles/internal/iofs"
	"github.com/g3zod/CreateADIFTestFiles/internal/ioplan"
	adiftest "github.com/g3zod/CreateADIFTestFiles/pkg"
	"github.com/g3zod/CreateADIFTestFiles/pkg/config"
	"github.com/g3zod/CreateADIFTestFiles/pkg/emitter"
	"github.com/g3zod/CreateADIFTestFiles/pkg/lifecycle"
	"github.com/g3zod/CreateADIFTestFiles/pkg/plan"
	"github.com/g3zod/CreateADIFTestFiles/pkg/qso"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnuuid"
	"golang.org/x/sync/errgroup"
)

// fileDateLayout is the date part of output file names.
const fileDateLayout = "2006_01_02"

type generator struct {
	cfg      *config.Config
	now      func() time.Time
	progress bool
}

// Option changes the generator created by New.
type Option func(*generator)

// OptNow sets the clock. It decides the date of the file names and the
// time of the first QSO when the configuration has no date.
func OptNow(now func() time.Time) Option {
	return func(g *generator) {
		if now != nil {
			g.now = now
		}
	}
}

// OptProgress turns the progress bar on or off. It is on by default.
func OptProgress(b bool) Option {
	return func(g *generator) {
		g.progress = b
	}
}

// New creates a Generator.
func New(cfg *config.Config, opts ...Option) lifecycle.Generator {
	res := generator{
		cfg:      cfg,
		now:      time.Now,
		progress: true,
	}
	for _, opt := range opts {
		opt(&res)
	}
	return &res
}

// inputs holds everything read from disk before the passes start.
type inputs struct {
	specPath     string
	spec         []byte
	entitiesPath string
	entities     []byte
	plan         *plan.Plan
	day          time.Time
}

// Generate writes one test file per style.
func (g *generator) Generate(ctx context.Context) ([]lifecycle.Output, error) {
	startTime := time.Now()
	slog.Info("Starting generation", "styles", g.cfg.Generate.Styles)

	in, err := g.readInputs()
	if err != nil {
		return nil, err
	}

	styles := make([]emitter.Style, 0, len(g.cfg.Generate.Styles))
	for _, s := range g.cfg.Generate.Styles {
		style, ok := emitter.NewStyle(s)
		if !ok {
			return nil, StyleError(s)
		}
		styles = append(styles, style)
	}

	bar := g.newProgressBar(in, len(styles))

	res := make([]lifecycle.Output, len(styles))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.cfg.JobsNumber)
	for i, style := range styles {
		eg.Go(func() error {
			out, err := g.pass(ctx, in, style, bar)
			if err != nil {
				return err
			}
			res[i] = out
			return nil
		})
	}
	err = eg.Wait()
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return nil, err
	}

	var records int
	for _, out := range res {
		records += out.Records
		gn.Info("Wrote <em>%s</em>: %s records, %s fields",
			out.Path,
			humanize.Comma(int64(out.Records)),
			humanize.Comma(int64(out.Fields)),
		)
	}
	duration := time.Since(startTime)
	slog.Info("Generation complete",
		"files", len(res),
		"records", records,
		"duration", gnfmt.TimeString(duration.Seconds()),
	)
	gn.Info("Generation complete in <em>%s</em>",
		gnfmt.TimeString(duration.Seconds()))
	return res, nil
}

func (g *generator) readInputs() (*inputs, error) {
	res := inputs{
		specPath:     g.cfg.Generate.SpecPath,
		entitiesPath: g.cfg.Generate.EntitiesPath,
	}
	var err error
	if res.spec, err = iofs.ReadFile(res.specPath); err != nil {
		return nil, err
	}
	if res.entities, err = iofs.ReadFile(res.entitiesPath); err != nil {
		return nil, err
	}
	if res.plan, err = ioplan.New(g.cfg).Load(); err != nil {
		return nil, err
	}
	if r := g.cfg.Generate.Report; r != "" {
		res.plan.Report = r
	}

	res.day = g.now().UTC()
	if d := g.cfg.Generate.Date; d != "" {
		if res.day, err = time.Parse(config.DateLayout, d); err != nil {
			return nil, DateError(d, err)
		}
	}
	slog.Info("Inputs loaded",
		"spec", res.specPath,
		"spec_size", humanize.Bytes(uint64(len(res.spec))),
		"entities", res.entitiesPath,
		"plan", g.cfg.PlanPath(),
		"date", res.day.Format(config.DateLayout),
	)
	return &res, nil
}

// newProgressBar counts records of all passes. It returns nil when
// progress is off or the plan cannot be sized without a catalog.
func (g *generator) newProgressBar(in *inputs, passes int) *pb.ProgressBar {
	if !g.progress {
		return nil
	}
	var total int
	for _, r := range in.plan.Records {
		switch {
		case r.Repeat > 0:
			total += r.Repeat
		case len(r.Each) > 0:
			total += len(r.Each)
		case r.EachEnumeration != "":
			return nil
		default:
			total++
		}
	}
	bar := pb.Full.Start(total * passes)
	bar.Set("prefix", "Records: ")
	bar.Set(pb.CleanOnFinish, true)
	return bar
}

// pass renders, checks and writes the file of one style.
func (g *generator) pass(
	ctx context.Context,
	in *inputs,
	style emitter.Style,
	bar *pb.ProgressBar,
) (lifecycle.Output, error) {
	var res lifecycle.Output
	passStart := time.Now()

	cat, err := iocatalog.Build(in.specPath, in.spec)
	if err != nil {
		return res, err
	}
	ents, err := ioentities.Build(in.entitiesPath, in.entities)
	if err != nil {
		return res, err
	}

	name := FileName(cat.VersionCode(), in.day, style)
	path := filepath.Join(g.cfg.Generate.OutputDir, name)
	runID := gnuuid.New(fmt.Sprintf("%s|%d|%s",
		name, g.cfg.Generate.Seed, cat.Status))
	slog.Info("Starting pass", "style", style, "file", name, "run_id", runID.String())

	emCfg := emitter.NewConfig(style)
	emCfg.HasHeaderFields = in.plan.HeaderFields()
	emCfg.Seed = g.cfg.Generate.Seed
	emCfg.Start = qso.Baseline(in.day)
	em := emitter.New(cat, ents, emCfg)

	opts := []plan.Option{
		plan.OptProgram(g.cfg.Generate.ProgramID, adiftest.Version),
		plan.OptNow(g.now),
	}
	if bar != nil {
		opts = append(opts, plan.OptOnRecord(func(int) { bar.Increment() }))
	}
	drv := plan.NewDriver(in.plan, em, opts...)
	if err = drv.Run(ctx); err != nil {
		return res, GenerateError(name, err)
	}

	data := em.Bytes()
	var diags []iocheck.Diagnostic
	if style == emitter.ADX {
		diags = iocheck.CheckADX(data, cat)
	} else {
		diags = iocheck.CheckADI(data, cat)
	}
	if len(diags) > 0 {
		slog.Error("Output check failed",
			"file", name, "problems", len(diags))
		if style == emitter.ADX {
			return res, iocheck.ADXError(name, diags)
		}
		return res, iocheck.ADIError(name, diags)
	}

	if err = ctx.Err(); err != nil {
		return res, GenerateError(name, err)
	}
	if err = iofs.WriteFile(path, data); err != nil {
		return res, err
	}

	st := em.Stats()
	res = lifecycle.Output{
		Style:    style.String(),
		Path:     path,
		RunID:    runID,
		Records:  st.Records,
		Fields:   st.Fields,
		Untested: st.Untested,
		Calls:    st.Calls,
		Duration: time.Since(passStart),
	}
	slog.Info("Pass complete",
		"file", name,
		"run_id", runID.String(),
		"records", humanize.Comma(int64(st.Records)),
		"fields", humanize.Comma(int64(st.Fields)),
		"size", humanize.Bytes(uint64(len(data))),
		"duration", gnfmt.TimeString(res.Duration.Seconds()),
	)
	return res, nil
}

// FileName returns ADIF_<ijk>_test_QSOs_<yyyy_MM_dd>.adi or .adx.
func FileName(versionCode int, day time.Time, style emitter.Style) string {
	return fmt.Sprintf("ADIF_%03d_test_QSOs_%s.%s",
		versionCode, day.Format(fileDateLayout), style)
}
