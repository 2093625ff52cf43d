// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/pathgraph/config"
	"github.com/katalvlaran/pathgraph/labels"
	"github.com/katalvlaran/pathgraph/ops"
	"github.com/katalvlaran/pathgraph/session"
)

type globalFlags struct {
	configPath string
	store      string
	db         string
	indent     int
	verbose    bool
}

// app is the per-invocation wiring shared by all commands.
type app struct {
	cfg    config.Config
	store  labels.Store
	logger *log.Logger
	op     *ops.Operator
}

// newApp loads the configuration (file, env, then flags), opens the label
// store and builds an operator over a fresh session.
func newApp(cmd *cobra.Command, flags *globalFlags) (*app, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	pf := cmd.Flags()
	if pf.Changed("store") {
		cfg.Store.Driver = flags.store
	}
	if pf.Changed("db") {
		cfg.Store.Path = flags.db
	}
	if pf.Changed("indent") {
		cfg.Export.Indent = flags.indent
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	out := io.Discard
	if flags.verbose {
		out = cmd.ErrOrStderr()
	}
	logger := log.New(out, "pathgraph: ", log.LstdFlags)

	var store labels.Store
	switch strings.ToLower(cfg.Store.Driver) {
	case config.DriverMemory:
		store = labels.NewMemoryStore()
	default:
		st, err := labels.OpenSQLite(cfg.Store.Path)
		if err != nil {
			return nil, err
		}
		store = st
	}

	op := ops.New(session.New(), store, logger)
	op.Indent = cfg.Export.Indent
	if op.Indent == 0 {
		// 0 in the config means compact output.
		op.Indent = -1
	}

	return &app{cfg: cfg, store: store, logger: logger, op: op}, nil
}

func (a *app) Close() error { return a.store.Close() }

// hint turns well-known errors into actionable messages.
func hint(err error) error {
	switch {
	case errors.Is(err, labels.ErrMissingLayer):
		return fmt.Errorf("%w (run `pathgraph labels init` first)", err)
	case errors.Is(err, session.ErrNotEditMode), errors.Is(err, session.ErrInvalidSelection):
		return fmt.Errorf("%w (operation cancelled)", err)
	}
	return err
}

// expandInputs resolves each argument as a doublestar glob. Arguments
// without matches are kept when they name an existing file.
func expandInputs(args []string) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	for _, arg := range args {
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			if _, statErr := os.Stat(arg); statErr != nil {
				return nil, fmt.Errorf("no mesh matches %q", arg)
			}
			matches = []string{arg}
		}
		sort.Strings(matches)
		for _, m := range matches {
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}

	return out, nil
}

// parseSelection parses "0,2,5-7" into sorted unique indices.
func parseSelection(spec string) ([]int, error) {
	set := make(map[int]struct{})
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi := part, part
		if i := strings.IndexByte(part, '-'); i > 0 {
			lo, hi = part[:i], part[i+1:]
		}
		a, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("bad selection %q", part)
		}
		b, err := strconv.Atoi(strings.TrimSpace(hi))
		if err != nil {
			return nil, fmt.Errorf("bad selection %q", part)
		}
		if a < 0 || b < a {
			return nil, fmt.Errorf("bad range %q", part)
		}
		for i := a; i <= b; i++ {
			set[i] = struct{}{}
		}
	}

	out := make([]int, 0, len(set))
	for i := range set {
		out = append(out, i)
	}
	sort.Ints(out)

	return out, nil
}
