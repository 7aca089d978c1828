// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Program jbeautify validates and reformats JSON text.
//
// Usage:
//
//	jbeautify [flags] [file ...]
//
// With no files, jbeautify reads standard input. Each input is validated and
// reformatted with two-space indentation, and the result is written to
// standard output. Diagnostics for invalid input are written to standard
// error, and the exit status is 1 if any were reported.
//
// By default the whole of each input is processed. Use --region to process
// only the given byte ranges of each input; text outside the regions is
// copied unchanged.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/creachadair/jbeautify/beautify"
	"github.com/creachadair/jbeautify/format"
	"github.com/creachadair/jbeautify/internal/diag"
	"github.com/creachadair/jbeautify/settings"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/samber/lo"
	"github.com/urfave/cli/v3"
)

func main() {
	os.Exit(run(context.Background(), os.Args, os.Stdin, os.Stdout, os.Stderr))
}

// errReported is returned by an action that has already reported its
// failures as diagnostics.
var errReported = errors.New("diagnostics reported")

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := newCommand(stdin)
	cmd.Writer = stdout
	cmd.ErrWriter = stderr
	if err := cmd.Run(ctx, args); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(stderr, "jbeautify: %v\n", err)
		}
		return 1
	}
	return 0
}

func newCommand(stdin io.Reader) *cli.Command {
	return &cli.Command{
		Name:      "jbeautify",
		Usage:     "Validate and reformat JSON text",
		ArgsUsage: "[file ...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "sort-keys",
				Usage: "Sort object keys (overrides json.sort_keys)",
			},
			&cli.BoolFlag{
				Name:  "force-sort",
				Usage: "Force sorted keys regardless of other settings",
			},
			&cli.BoolFlag{
				Name:  "ascii",
				Usage: "Escape non-ASCII characters (overrides json.ensure_ascii, default true)",
			},
			&cli.IntFlag{
				Name:  "indent",
				Value: 2,
				Usage: "Number of spaces per indentation level",
			},
			&cli.StringFlag{
				Name:  "settings",
				Usage: "Read settings from this file",
			},
			&cli.StringSliceFlag{
				Name:  "region",
				Usage: "Process only the byte range `BEGIN:END` (repeatable)",
			},
			&cli.BoolFlag{
				Name:  "check",
				Usage: "Validate only; do not write output",
			},
			&cli.BoolFlag{
				Name:    "write",
				Aliases: []string{"w"},
				Usage:   "Rewrite files in place",
			},
			&cli.BoolFlag{
				Name:    "diff",
				Aliases: []string{"d"},
				Usage:   "Print a unified diff instead of the output",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			r, err := newRunner(cmd, stdin)
			if err != nil {
				return err
			}
			return r.Run(ctx, cmd.Args().Slice())
		},
	}
}

// A runner carries the settings for processing a batch of inputs.
type runner struct {
	cfg     beautify.Config
	regions []beautify.Region
	check   bool
	write   bool
	diff    bool

	stdin  io.Reader
	stdout io.Writer
	diags  *diag.Printer
	out    *diag.Printer
	log    log.Logger
}

func newRunner(cmd *cli.Command, stdin io.Reader) (*runner, error) {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(cmd.ErrWriter))
	logger = level.NewFilter(logger, lo.Ternary(cmd.Bool("verbose"), level.AllowDebug(), level.AllowInfo()))

	s := settings.Default()
	if path := cmd.String("settings"); path != "" {
		var err error
		s, err = settings.Load(path)
		if err != nil {
			return nil, err
		}
		level.Debug(logger).Log("msg", "loaded settings", "path", path,
			"sort_keys", s.SortKeys, "force_sort", s.ForceSort, "ensure_ascii", s.EnsureASCII)
	}
	if cmd.IsSet("sort-keys") {
		s.SortKeys = cmd.Bool("sort-keys")
	}
	if cmd.IsSet("ascii") {
		s.EnsureASCII = cmd.Bool("ascii")
	}
	s.ForceSort = s.ForceSort || cmd.Bool("force-sort")

	n := cmd.Int("indent")
	if n < 0 {
		return nil, fmt.Errorf("invalid indent %d", n)
	}
	cfg := s.Config(new(format.SortOverride))
	cfg.Indent = strings.Repeat(" ", int(n))

	regions, err := parseRegions(cmd.StringSlice("region"))
	if err != nil {
		return nil, err
	}

	r := &runner{
		cfg:     cfg,
		regions: regions,
		check:   cmd.Bool("check"),
		write:   cmd.Bool("write"),
		diff:    cmd.Bool("diff"),
		stdin:   stdin,
		stdout:  cmd.Writer,
		diags:   diag.New(cmd.ErrWriter),
		out:     diag.New(cmd.Writer),
		log:     logger,
	}
	if r.check && (r.write || r.diff) {
		return nil, errors.New("--check cannot be combined with --write or --diff")
	}
	return r, nil
}

// Run processes each of the named files, or stdin if there are none.
func (r *runner) Run(_ context.Context, files []string) error {
	if len(files) == 0 {
		if r.write {
			return errors.New("--write requires file arguments")
		}
		files = []string{"-"}
	}
	var failed int
	for _, name := range lo.Uniq(files) {
		nd, err := r.processFile(name)
		if err != nil {
			return err
		}
		failed += nd
	}
	if failed != 0 {
		level.Debug(r.log).Log("msg", "inputs had errors", "diagnostics", failed)
		return errReported
	}
	return nil
}

// processFile processes a single input, and reports the number of
// diagnostics reported for it.
func (r *runner) processFile(name string) (int, error) {
	label := lo.Ternary(name == "-", "<stdin>", name)
	data, err := r.read(name)
	if err != nil {
		return 0, err
	}
	buf := string(data)
	regions := beautify.Regions(buf, r.regions, nil)
	level.Debug(r.log).Log("msg", "processing", "input", label, "bytes", len(buf), "regions", len(regions))

	if r.check {
		diags := beautify.Validate(buf, regions)
		for _, d := range diags {
			if err := r.diags.Diagnostic(label, buf, d); err != nil {
				return 0, err
			}
		}
		return len(diags), nil
	}

	out, res := beautify.Beautify(buf, regions, r.cfg)
	failed := lo.Reject(res, func(v beautify.Result, _ int) bool { return v.OK() })
	for _, f := range failed {
		if err := r.diags.Diagnostic(label, buf, *f.Diag); err != nil {
			return 0, err
		}
	}
	if len(r.regions) == 0 && strings.HasSuffix(buf, "\n") && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}

	switch {
	case r.diff:
		if err := r.out.Diff(label, label, buf, out); err != nil {
			return 0, err
		}
	case r.write:
		if out != buf {
			if err := os.WriteFile(name, []byte(out), 0644); err != nil {
				return 0, err
			}
			level.Info(r.log).Log("msg", "rewrote file", "file", name)
		}
	default:
		if _, err := io.WriteString(r.stdout, out); err != nil {
			return 0, err
		}
	}
	return len(failed), nil
}

func (r *runner) read(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(r.stdin)
	}
	return os.ReadFile(name)
}

// parseRegions parses region arguments of the form BEGIN:END.
func parseRegions(args []string) ([]beautify.Region, error) {
	var out []beautify.Region
	for _, arg := range args {
		bs, es, ok := strings.Cut(arg, ":")
		if !ok {
			return nil, fmt.Errorf("invalid region %q: want BEGIN:END", arg)
		}
		begin, err := strconv.Atoi(bs)
		if err != nil || begin < 0 {
			return nil, fmt.Errorf("invalid region %q: bad begin offset", arg)
		}
		end, err := strconv.Atoi(es)
		if err != nil || end < 0 {
			return nil, fmt.Errorf("invalid region %q: bad end offset", arg)
		}
		out = append(out, beautify.Region{Begin: begin, End: end})
	}
	return out, nil
}
