// Package balanced provides a go/analysis based analyzer for detecting
// unbalanced calls to paired functions such as Lock and Unlock.
package balanced

import (
	"errors"
	"flag"
	"fmt"
	"go/ast"
	"go/token"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"github.com/mpyw/balanced/internal/balance"
	"github.com/mpyw/balanced/internal/config"
	"github.com/mpyw/balanced/internal/directive/ignore"
	"github.com/mpyw/balanced/internal/directive/pair"
	"github.com/mpyw/balanced/internal/registry"
	internalssa "github.com/mpyw/balanced/internal/ssa"
)

// Flags for the analyzer.
var (
	configFile string
	families   string
	enableSync bool
	debug      bool
)

func init() {
	Analyzer.Flags.StringVar(&configFile, "config", "",
		"path to a protocol family file (text, .yaml/.yml or .toml)")
	Analyzer.Flags.StringVar(&families, "families", "",
		`protocol families in the text format (e.g., "preempt preemptDisable ; preemptEnable ;")`)
	Analyzer.Flags.BoolVar(&enableSync, "sync", true, "check sync.Mutex, sync.RWMutex and sync.Locker")
	Analyzer.Flags.BoolVar(&debug, "debug", false, "print debug logs to stderr")
}

// Analyzer is the main analyzer for balanced.
var Analyzer = &analysis.Analyzer{
	Name:     "balanced",
	Doc:      "checks that paired calls such as Lock and Unlock alternate on every path and agree at return",
	Requires: []*analysis.Analyzer{inspect.Analyzer, internalssa.BuildSSAAnalyzer},
	Run:      run,
	Flags:    flag.FlagSet{},
}

var (
	ErrNoInspector = errors.New("inspector analyzer result not found")
	ErrNoSSA       = errors.New("buildssa analyzer result not found")
)

var logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(logrus.WarnLevel)
	return l
}

// warned holds config problems already logged, so a broken file is
// reported once and not for every package.
var warned sync.Map

func warnOnce(key string, err error) {
	if _, loaded := warned.LoadOrStore(key, struct{}{}); loaded {
		return
	}
	logger.WithError(err).WithField("source", key).Warn("protocol families partially loaded")
}

func run(pass *analysis.Pass) (any, error) {
	if debug {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}

	insp, ok := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	if !ok {
		return nil, ErrNoInspector
	}

	prog := internalssa.Build(pass)
	if prog == nil {
		return nil, ErrNoSSA
	}

	reg, err := buildRegistry()
	if err != nil {
		return nil, err
	}

	// Build set of files to skip
	skipFiles := buildSkipFiles(pass)

	// Build ignore maps for each file (excluding skipped files)
	ignoreMaps := buildIgnoreMaps(pass, skipFiles)

	// Register functions marked with //balanced:left and //balanced:right
	marks, bad := pair.Build(pass, insp, skipFiles)
	pair.Register(reg, marks)
	for _, b := range bad {
		pass.Reportf(b.Pos, "%v", b.Err)
	}

	report := func(pos token.Pos, category, message string) {
		filename := pass.Fset.Position(pos).Filename
		line := pass.Fset.Position(pos).Line
		if m, ok := ignoreMaps[filename]; ok && m.ShouldIgnore(line, ignore.CheckerName(category)) {
			return
		}
		pass.Report(analysis.Diagnostic{Pos: pos, Category: category, Message: message})
	}

	engine := internalssa.NewEngine(reg, report)
	checker := balance.New()

	funcs := prog.Funcs(pass.Fset, skipFiles)
	logger.WithFields(logrus.Fields{
		"package": pass.Pkg.Path(),
		"funcs":   len(funcs),
		"entries": reg.Len(),
	}).Debug("checking package")

	for _, fn := range funcs {
		engine.Analyze(fn, checker)
	}

	// Report unused ignore directives
	reportUnusedIgnores(pass, ignoreMaps)

	return nil, nil
}

// buildRegistry registers the sync families, then the config file, then
// the -families flag. A later registration of the same function wins.
func buildRegistry() (*registry.Registry, error) {
	reg := registry.New()

	if enableSync {
		if err := config.Apply(reg, config.SyncFamilies()); err != nil {
			return nil, err
		}
	}

	if configFile != "" {
		loaded, err := config.LoadFile(configFile)
		if errors.Is(err, config.ErrRead) {
			return nil, err
		}
		if err != nil {
			warnOnce(configFile, err)
		}
		if err := config.Apply(reg, loaded); err != nil {
			return nil, fmt.Errorf("%s: %w", configFile, err)
		}
	}

	if families != "" {
		loaded, err := config.ParseText(families)
		if err != nil {
			warnOnce("-families", err)
		}
		if err := config.Apply(reg, loaded); err != nil {
			return nil, fmt.Errorf("-families: %w", err)
		}
	}

	for _, e := range reg.Entries() {
		logger.WithFields(logrus.Fields{
			"family": e.Family,
			"func":   e.Func.String(),
			"object": e.Object.String(),
			"side":   e.Side.String(),
		}).Debug("registered")
	}

	return reg, nil
}

// buildSkipFiles creates a set of filenames to skip.
// Generated files are always skipped.
// Test files can be skipped via the driver's built-in -test flag.
func buildSkipFiles(pass *analysis.Pass) map[string]bool {
	skipFiles := make(map[string]bool)

	for _, file := range pass.Files {
		filename := pass.Fset.Position(file.Pos()).Filename

		if ast.IsGenerated(file) {
			skipFiles[filename] = true
		}
	}

	return skipFiles
}

// buildIgnoreMaps creates ignore maps for each file in the pass.
func buildIgnoreMaps(pass *analysis.Pass, skipFiles map[string]bool) map[string]ignore.Map {
	ignoreMaps := make(map[string]ignore.Map)

	for _, file := range pass.Files {
		filename := pass.Fset.Position(file.Pos()).Filename
		if skipFiles[filename] {
			continue
		}
		ignoreMaps[filename] = ignore.Build(pass.Fset, file)
	}

	return ignoreMaps
}

// reportUnusedIgnores reports any ignore directives that were not used.
func reportUnusedIgnores(pass *analysis.Pass, ignoreMaps map[string]ignore.Map) {
	enabled := make(ignore.EnabledCheckers)
	for _, name := range ignore.AllCheckerNames() {
		enabled[name] = true
	}

	for _, ignoreMap := range ignoreMaps {
		for _, unused := range ignoreMap.GetUnusedIgnores(enabled) {
			if len(unused.Checkers) == 0 {
				pass.Reportf(unused.Pos, "unused balanced:ignore directive")
			} else {
				checkerNames := make([]string, len(unused.Checkers))
				for i, c := range unused.Checkers {
					checkerNames[i] = string(c)
				}
				pass.Reportf(unused.Pos, "unused balanced:ignore directive for checker(s): %s", strings.Join(checkerNames, ", "))
			}
		}
	}
}
