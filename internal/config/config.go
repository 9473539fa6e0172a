package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/tmux-mention-popup/internal/app"
	"github.com/atomicstack/tmux-mention-popup/internal/backend"
	"github.com/atomicstack/tmux-mention-popup/internal/workspace"
	"github.com/goccy/go-yaml"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

const (
	envConfigFile   = "TMUX_MENTION_POPUP_CONFIG"
	envSocketPath   = "TMUX_MENTION_POPUP_SOCKET"
	envTargetPane   = "TMUX_MENTION_POPUP_TARGET_PANE"
	envWorkspace    = "TMUX_MENTION_POPUP_WORKSPACE"
	envExclude      = "TMUX_MENTION_POPUP_EXCLUDE"
	envDebounce     = "TMUX_MENTION_POPUP_DEBOUNCE"
	envSearchLimit  = "TMUX_MENTION_POPUP_SEARCH_LIMIT"
	envWidth        = "TMUX_MENTION_POPUP_WIDTH"
	envHeight       = "TMUX_MENTION_POPUP_HEIGHT"
	envShowFooter   = "TMUX_MENTION_POPUP_FOOTER"
	envPreview      = "TMUX_MENTION_POPUP_PREVIEW"
	envPrint        = "TMUX_MENTION_POPUP_PRINT"
	envInsertFormat = "TMUX_MENTION_POPUP_FORMAT"
	envVerbose      = "TMUX_MENTION_POPUP_VERBOSE"
	envTrace        = "TMUX_MENTION_POPUP_TRACE"
	envLogFile      = "TMUX_MENTION_POPUP_LOG_FILE"
)

// fileConfig mirrors the YAML config file. Pointer fields distinguish unset
// keys from zero values.
type fileConfig struct {
	Socket      *string  `yaml:"socket"`
	TargetPane  *string  `yaml:"target_pane"`
	Workspace   []string `yaml:"workspace"`
	Exclude     []string `yaml:"exclude"`
	Debounce    *string  `yaml:"debounce"`
	SearchLimit *int     `yaml:"search_limit"`
	Width       *int     `yaml:"width"`
	Height      *int     `yaml:"height"`
	Footer      *bool    `yaml:"footer"`
	Preview     *bool    `yaml:"preview"`
	Print       *bool    `yaml:"print"`
	Format      *string  `yaml:"format"`
	Verbose     *bool    `yaml:"verbose"`
	Trace       *bool    `yaml:"trace"`
	LogFile     *string  `yaml:"log_file"`
}

// listFlag collects repeatable, comma separated values. The first value
// given on the command line replaces the default.
type listFlag struct {
	values   []string
	explicit bool
}

func (l *listFlag) String() string {
	if l == nil {
		return ""
	}
	return strings.Join(l.values, ",")
}

func (l *listFlag) Set(value string) error {
	if !l.explicit {
		l.values = nil
		l.explicit = true
	}
	l.values = append(l.values, splitList(value)...)
	return nil
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Flags override
// the environment, which overrides the config file, which overrides the
// built-in defaults.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("tmux-mention-popup", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	configFile := fs.String("config", envOrDefault(env, envConfigFile, ""), "path to a YAML config file")
	socket := fs.String("socket", envOrDefault(env, envSocketPath, ""), "path to the tmux socket (overrides environment detection)")
	targetPane := fs.String("target-pane", envOrDefault(env, envTargetPane, ""), "pane that receives the mention (defaults to $TMUX_PANE)")
	roots := listFlag{values: splitList(envOrDefault(env, envWorkspace, ""))}
	fs.Var(&roots, "workspace", "workspace root to search (repeatable or comma separated; defaults to the working directory)")
	exclude := listFlag{values: splitList(envOrDefault(env, envExclude, ""))}
	fs.Var(&exclude, "exclude", "glob of paths to leave out of the index (repeatable or comma separated)")
	debounce := fs.Duration("debounce", envOrDuration(env, envDebounce, backend.DefaultDebounce), "delay before a typed query is resolved")
	searchLimit := fs.Int("search-limit", envOrInt(env, envSearchLimit, workspace.DefaultLimit), "maximum number of files returned per search")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	preview := fs.Bool("preview", envOrBool(env, envPreview, false), "show a preview of the highlighted file or folder")
	printMode := fs.Bool("print", envOrBool(env, envPrint, false), "print the selection to stdout instead of typing it into tmux")
	format := fs.String("format", envOrDefault(env, envInsertFormat, app.FormatName), "how selections are rendered: name, path or uri")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "print informational messages in the status line")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	// a value is pinned when it came from a flag or the environment
	pinned := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { pinned[f.Name] = true })
	for name, key := range map[string]string{
		"socket":       envSocketPath,
		"target-pane":  envTargetPane,
		"workspace":    envWorkspace,
		"exclude":      envExclude,
		"debounce":     envDebounce,
		"search-limit": envSearchLimit,
		"width":        envWidth,
		"height":       envHeight,
		"footer":       envShowFooter,
		"preview":      envPreview,
		"print":        envPrint,
		"format":       envInsertFormat,
		"trace":        envTrace,
		"verbose":      envVerbose,
		"log-file":     envLogFile,
	} {
		if v, ok := env[key]; ok && strings.TrimSpace(v) != "" {
			pinned[name] = true
		}
	}

	if *configFile != "" {
		fc, err := readFile(*configFile)
		if err != nil {
			return Config{}, err
		}
		overlay := func(name string, apply func()) {
			if !pinned[name] {
				apply()
			}
		}
		if fc.Socket != nil {
			overlay("socket", func() { *socket = *fc.Socket })
		}
		if fc.TargetPane != nil {
			overlay("target-pane", func() { *targetPane = *fc.TargetPane })
		}
		if fc.Workspace != nil {
			overlay("workspace", func() { roots.values = fc.Workspace })
		}
		if fc.Exclude != nil {
			overlay("exclude", func() { exclude.values = fc.Exclude })
		}
		if fc.Debounce != nil {
			d, err := time.ParseDuration(*fc.Debounce)
			if err != nil {
				return Config{}, fmt.Errorf("config file %s: debounce: %w", *configFile, err)
			}
			overlay("debounce", func() { *debounce = d })
		}
		if fc.SearchLimit != nil {
			overlay("search-limit", func() { *searchLimit = *fc.SearchLimit })
		}
		if fc.Width != nil {
			overlay("width", func() { *width = *fc.Width })
		}
		if fc.Height != nil {
			overlay("height", func() { *height = *fc.Height })
		}
		if fc.Footer != nil {
			overlay("footer", func() { *footer = *fc.Footer })
		}
		if fc.Preview != nil {
			overlay("preview", func() { *preview = *fc.Preview })
		}
		if fc.Print != nil {
			overlay("print", func() { *printMode = *fc.Print })
		}
		if fc.Format != nil {
			overlay("format", func() { *format = *fc.Format })
		}
		if fc.Trace != nil {
			overlay("trace", func() { *trace = *fc.Trace })
		}
		if fc.Verbose != nil {
			overlay("verbose", func() { *verbose = *fc.Verbose })
		}
		if fc.LogFile != nil {
			overlay("log-file", func() { *logFile = *fc.LogFile })
		}
	}

	cfg := Config{
		App: app.Config{
			SocketPath:   *socket,
			TargetPane:   *targetPane,
			Roots:        roots.values,
			Exclude:      exclude.values,
			Debounce:     *debounce,
			SearchLimit:  *searchLimit,
			Width:        *width,
			Height:       *height,
			ShowFooter:   *footer,
			Preview:      *preview,
			Verbose:      *verbose,
			Print:        *printMode,
			InsertFormat: strings.ToLower(strings.TrimSpace(*format)),
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
		},
		Flags: map[string]string{
			"config":      *configFile,
			"socket":      *socket,
			"targetPane":  *targetPane,
			"workspace":   roots.String(),
			"exclude":     exclude.String(),
			"debounce":    debounce.String(),
			"searchLimit": strconv.Itoa(*searchLimit),
			"width":       strconv.Itoa(*width),
			"height":      strconv.Itoa(*height),
			"footer":      strconv.FormatBool(*footer),
			"preview":     strconv.FormatBool(*preview),
			"print":       strconv.FormatBool(*printMode),
			"format":      *format,
			"trace":       strconv.FormatBool(*trace),
			"verbose":     strconv.FormatBool(*verbose),
			"logFile":     *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func readFile(path string) (fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.UnmarshalWithOptions(data, &fc, yaml.Strict()); err != nil {
		return fileConfig{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return fc, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects values the application cannot run with.
func Validate(cfg Config) error {
	a := cfg.App
	if a.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", a.Width)
	}
	if a.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", a.Height)
	}
	if a.Debounce < 0 {
		return fmt.Errorf("debounce must be >= 0 (got %s)", a.Debounce)
	}
	if a.SearchLimit < 0 {
		return fmt.Errorf("search-limit must be >= 0 (got %d)", a.SearchLimit)
	}
	switch a.InsertFormat {
	case app.FormatName, app.FormatPath, app.FormatURI:
	default:
		return fmt.Errorf("format must be one of name, path or uri (got %q)", a.InsertFormat)
	}
	return nil
}
