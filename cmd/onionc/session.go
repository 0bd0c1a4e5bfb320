package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"onion/internal/classpath"
	"onion/internal/diag"
	"onion/internal/diagfmt"
	"onion/internal/driver"
	"onion/internal/project"
	"onion/internal/source"
	"onion/internal/trace"
)

// session is everything one command needs to run the driver: resolved
// manifest, loaded units, options and the tracer.
type session struct {
	dir      string
	manifest *project.Manifest
	files    *source.FileSet
	units    []driver.Unit
	opts     driver.Options

	color   bool
	quiet   bool
	timings bool

	tracer trace.Tracer
}

// openSession resolves the project for args[0] (default "."). Problems with
// the manifest or declaration files come back as a diagnostic bag, which the
// caller prints before failing.
func openSession(cmd *cobra.Command, args []string) (*session, *diag.Bag, error) {
	flags := cmd.Root().PersistentFlags()
	s := &session{dir: ".", files: source.NewFileSet(), tracer: trace.Nop}
	if len(args) > 0 {
		s.dir = args[0]
	}
	abs, err := filepath.Abs(s.dir)
	if err != nil {
		return nil, nil, err
	}
	s.dir = abs

	if s.color, err = colorEnabled(cmd); err != nil {
		return nil, nil, err
	}
	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return nil, nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return nil, nil, fmt.Errorf("failed to get timings flag: %w", err)
	}

	bag := diag.NewBag(0)
	path, ok, err := project.FindManifest(s.dir)
	if err != nil {
		return nil, nil, err
	}
	if ok {
		m, err := project.Load(path)
		if err != nil {
			bag.Add(manifestDiagnostic(s.files.Add(path), err))
			return s, bag, nil
		}
		s.manifest = m
	}

	sources := []string{s.dir}
	var libs []string
	if s.manifest != nil {
		sources = s.manifest.SourceDirs()
		libs = s.manifest.ClasspathDirs()
		s.opts.Root = s.manifest.RootClass()
		s.opts.MaxDiagnostics = s.manifest.Config.Compiler.MaxDiagnostics
		s.opts.Jobs = s.manifest.Config.Compiler.Jobs
		// Load уже проверил таблицу упаковки
		s.opts.Boxing, _ = s.manifest.BoxingTable()
	}
	if n, err := flags.GetInt("max-diagnostics"); err != nil {
		return nil, nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	} else if n > 0 {
		s.opts.MaxDiagnostics = n
	}
	if n, err := flags.GetInt("jobs"); err != nil {
		return nil, nil, fmt.Errorf("failed to get jobs flag: %w", err)
	} else if n > 0 {
		s.opts.Jobs = n
	}

	loaders := classpath.Chain{}
	if len(libs) > 0 {
		loaders = append(loaders, classpath.NewDir(s.files, libs...))
	}
	s.opts.Classpath = append(loaders, classpath.Core())

	if err := s.setupTracing(cmd); err != nil {
		return nil, nil, err
	}

	units, err := driver.LoadUnits(s.files, sources...)
	if err != nil {
		bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, err.Error()))
		return s, bag, nil
	}
	s.units = units
	return s, nil, nil
}

func manifestDiagnostic(file source.FileID, err error) diag.Diagnostic {
	code := diag.ProjInvalidManifest
	var pe *project.Error
	if errors.As(err, &pe) && pe.Section == "boxing" {
		code = diag.ProjInvalidBoxing
	}
	return diag.NewError(code, source.Span{File: file}, err.Error())
}

// setupTracing starts from the manifest [trace] table; non-empty flags
// override it.
func (s *session) setupTracing(cmd *cobra.Command) error {
	var cfg trace.Config
	if s.manifest != nil {
		c, err := s.manifest.TraceConfig()
		if err != nil {
			return err
		}
		cfg = c
	}
	flags := cmd.Root().PersistentFlags()
	get := func(name string) (string, error) {
		v, err := flags.GetString(name)
		if err != nil {
			return "", fmt.Errorf("failed to get %s flag: %w", name, err)
		}
		return v, nil
	}

	output, err := get("trace")
	if err != nil {
		return err
	}
	if output != "" {
		cfg.OutputPath = output
		if cfg.Level == trace.LevelOff {
			cfg.Level = trace.LevelPhase
		}
		if cfg.Mode == 0 || cfg.Mode == trace.ModeRing {
			cfg.Mode = trace.ModeStream
		}
	}
	if v, err := get("trace-level"); err != nil {
		return err
	} else if v != "" {
		if cfg.Level, err = trace.ParseLevel(v); err != nil {
			return fmt.Errorf("invalid trace level: %w", err)
		}
	}
	if v, err := get("trace-mode"); err != nil {
		return err
	} else if v != "" {
		if cfg.Mode, err = trace.ParseMode(v); err != nil {
			return fmt.Errorf("invalid trace mode: %w", err)
		}
	}
	if v, err := get("trace-format"); err != nil {
		return err
	} else if v != "" {
		if cfg.Format, err = trace.ParseFormat(v); err != nil {
			return fmt.Errorf("invalid trace format: %w", err)
		}
	}

	tracer, err := trace.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create tracer: %w", err)
	}
	s.tracer = tracer
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))
	return nil
}

func (s *session) close(w io.Writer) {
	if err := s.tracer.Flush(); err != nil {
		fmt.Fprintf(w, "trace: flush error: %v\n", err)
	}
	if err := s.tracer.Close(); err != nil {
		fmt.Fprintf(w, "trace: close error: %v\n", err)
	}
}

// run executes the driver. On an internal fault the in-memory trace ring, if
// any, is dumped to w.
func (s *session) run(ctx context.Context, w io.Writer) (*driver.Result, error) {
	s.opts.Tracer = trace.FromContext(ctx)
	comp := driver.New(s.opts)
	res, err := comp.Run(ctx, s.units)
	if err != nil {
		s.dumpTrace(w)
		return nil, err
	}
	if s.timings && !s.quiet {
		fmt.Fprint(w, comp.Timer.Summary())
	}
	return res, nil
}

func (s *session) dumpTrace(w io.Writer) {
	var ring *trace.RingTracer
	switch t := s.tracer.(type) {
	case *trace.RingTracer:
		ring = t
	case *trace.MultiTracer:
		ring = t.Ring()
	}
	if ring == nil {
		return
	}
	fmt.Fprintln(w, "trace (most recent events):")
	if err := ring.Dump(w, trace.FormatText); err != nil {
		fmt.Fprintf(w, "trace: dump error: %v\n", err)
	}
}

func (s *session) prettyOpts() diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{Color: s.color, PathMode: diagfmt.PathModeAuto, BaseDir: s.dir, ShowNotes: true}
}

// printBag writes diagnostics of a bag that did not come from the driver.
func (s *session) printBag(w io.Writer, bag *diag.Bag) error {
	bag.Sort()
	if err := diagfmt.Pretty(w, bag, s.files, s.prettyOpts()); err != nil {
		return err
	}
	if !s.quiet {
		if sum := diagfmt.Summary(bag); sum != "" {
			fmt.Fprintln(w, sum)
		}
	}
	return nil
}
