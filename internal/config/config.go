package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/moasq/tuimenu/internal/menu"
	"gopkg.in/yaml.v3"
)

// Config holds everything needed for one run.
type Config struct {
	Menu    menu.Options
	Entries []string         // raw definition entries, file entries first
	Groups  []menu.GroupSpec // structured groups from the definition file
	Output  string
	Logging Logging

	// Warnings collects values that were ignored rather than rejected.
	Warnings []string
}

// Logging holds log destination settings.
type Logging struct {
	FilePath string
	Trace    bool
}

// Output formats.
const (
	OutputTag   = "tag"
	OutputLabel = "label"
	OutputText  = "text"
	OutputJSON  = "json"
)

// Flag names shared with the command line.
const (
	FlagPrompt           = "prompt"
	FlagDefault          = "default"
	FlagTimeout          = "timeout"
	FlagFormat           = "format"
	FlagItemDelimiter    = "item-delimiter"
	FlagElementDelimiter = "element-delimiter"
	FlagFile             = "file"
	FlagOutput           = "output"
	FlagLogFile          = "log-file"
	FlagTrace            = "trace"
)

const (
	envPrompt           = "TUIMENU_PROMPT"
	envDefault          = "TUIMENU_DEFAULT"
	envTimeout          = "TUIMENU_TIMEOUT"
	envFormat           = "TUIMENU_FORMAT"
	envItemDelimiter    = "TUIMENU_ITEM_DELIMITER"
	envElementDelimiter = "TUIMENU_ELEMENT_DELIMITER"
	envFile             = "TUIMENU_FILE"
	envOutput           = "TUIMENU_OUTPUT"
	envLogFile          = "TUIMENU_LOG_FILE"
	envTrace            = "TUIMENU_TRACE"
)

// DefaultPrompt is used when no prompt is configured anywhere.
const DefaultPrompt = "> "

// Flags are the raw command-line values.
type Flags struct {
	Prompt           string
	Default          string
	Timeout          string
	Format           string
	ItemDelimiter    string
	ElementDelimiter string
	File             string
	Output           string
	LogFile          string
	Trace            bool

	// Changed reports whether a flag was given explicitly. Nil means none was.
	Changed func(name string) bool
}

func (f Flags) changed(name string) bool {
	return f.Changed != nil && f.Changed(name)
}

// Sources are the inputs Load merges.
type Sources struct {
	Flags   Flags
	Args    []string // positional definition entries
	Environ []string

	// ReadFile reads the definition file; os.ReadFile when nil.
	ReadFile func(string) ([]byte, error)
}

// File is the YAML definition file format.
type File struct {
	Prompt           string      `yaml:"prompt"`
	Default          string      `yaml:"default"`
	Timeout          string      `yaml:"timeout"`
	Format           string      `yaml:"format"`
	ItemDelimiter    string      `yaml:"item_delimiter"`
	ElementDelimiter string      `yaml:"element_delimiter"`
	Entries          []string    `yaml:"entries"`
	Groups           []FileGroup `yaml:"groups"`
}

// FileGroup is a structured group in a definition file.
type FileGroup struct {
	Heading string     `yaml:"heading"`
	Items   []FileItem `yaml:"items"`
}

// FileItem is a structured item in a definition file.
type FileItem struct {
	Tag   string `yaml:"tag"`
	Label string `yaml:"label"`
	Text  string `yaml:"text"`
}

// settings is the string form of every option while layers are merged.
type settings struct {
	prompt, defaultTag, timeout, format string
	itemDelim, elemDelim               string
	output, logFile                    string
	trace                              bool
}

// Load merges defaults, the definition file, the environment and explicitly
// set flags, in increasing order of precedence.
func Load(src Sources) (Config, error) {
	env := parseEnv(src.Environ)

	s := settings{
		prompt:    DefaultPrompt,
		format:    menu.DefaultFieldOrder,
		itemDelim: menu.DefaultItemDelimiter,
		elemDelim: menu.DefaultElementDelimiter,
		output:    OutputTag,
	}

	var cfg Config

	path := envOrDefault(env, envFile, "")
	if src.Flags.changed(FlagFile) {
		path = src.Flags.File
	}
	if path != "" {
		f, err := LoadFile(path, src.ReadFile)
		if err != nil {
			return Config{}, err
		}
		s.applyFile(f)
		cfg.Entries = append(cfg.Entries, f.Entries...)
		cfg.Groups = f.specs()
	}

	s.applyEnv(env)
	s.applyFlags(src.Flags)

	order, err := menu.ParseFieldOrder(s.format)
	if err != nil {
		return Config{}, err
	}
	timeout, ok := ParseTimeout(s.timeout)
	if !ok {
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("ignoring malformed timeout %q, waiting indefinitely", s.timeout))
	}
	switch s.output {
	case OutputTag, OutputLabel, OutputText, OutputJSON:
	default:
		return Config{}, fmt.Errorf("output must be one of tag, label, text, json (got %q)", s.output)
	}

	cfg.Menu = menu.Options{
		Prompt:           s.prompt,
		DefaultTag:       s.defaultTag,
		Timeout:          timeout,
		FieldOrder:       order,
		ItemDelimiter:    s.itemDelim,
		ElementDelimiter: s.elemDelim,
	}
	cfg.Entries = append(cfg.Entries, src.Args...)
	cfg.Output = s.output
	cfg.Logging = Logging{FilePath: s.logFile, Trace: s.trace}
	return cfg, nil
}

// Definition builds the menu described by cfg. Structured groups from the
// file come first, raw entries after them; tags and labels must be unique
// across both.
func (c Config) Definition() (*menu.Definition, error) {
	if len(c.Groups) == 0 {
		return menu.New(c.Menu, c.Entries...)
	}
	groups := c.Groups
	if len(c.Entries) > 0 {
		parsed, err := menu.New(menu.Options{
			FieldOrder:       c.Menu.FieldOrder,
			ItemDelimiter:    c.Menu.ItemDelimiter,
			ElementDelimiter: c.Menu.ElementDelimiter,
		}, c.Entries...)
		if err != nil {
			return nil, err
		}
		groups = append(append([]menu.GroupSpec(nil), groups...), specsOf(parsed)...)
	}
	return menu.Build(c.Menu, groups)
}

func specsOf(d *menu.Definition) []menu.GroupSpec {
	specs := make([]menu.GroupSpec, 0, len(d.Groups()))
	for _, g := range d.Groups() {
		spec := menu.GroupSpec{Heading: g.Heading()}
		for _, item := range g.Items() {
			spec.Items = append(spec.Items, menu.ItemSpec{Tag: item.Tag(), Label: item.Label(), Text: item.Text()})
		}
		specs = append(specs, spec)
	}
	return specs
}

// LoadFile reads and decodes a YAML definition file.
func LoadFile(path string, readFile func(string) ([]byte, error)) (*File, error) {
	if readFile == nil {
		readFile = os.ReadFile
	}
	data, err := readFile(path)
	if err != nil {
		return nil, fmt.Errorf("read definition file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse definition file %s: %w", path, err)
	}
	return &f, nil
}

func (f *File) specs() []menu.GroupSpec {
	if len(f.Groups) == 0 {
		return nil
	}
	specs := make([]menu.GroupSpec, len(f.Groups))
	for i, g := range f.Groups {
		specs[i].Heading = g.Heading
		for _, item := range g.Items {
			specs[i].Items = append(specs[i].Items, menu.ItemSpec{Tag: item.Tag, Label: item.Label, Text: item.Text})
		}
	}
	return specs
}

// maxTimeoutSeconds is the longest timeout a time.Duration can hold.
const maxTimeoutSeconds = float64(math.MaxInt64 / int64(time.Second))

// ParseTimeout accepts a Go duration ("1m30s") or seconds as a number
// ("2.5"). Empty and non-positive values mean no timeout. ok is false for
// values that are neither.
func ParseTimeout(s string) (d time.Duration, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	if d, err := time.ParseDuration(s); err == nil {
		return max(d, 0), true
	}
	secs, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(secs) || math.IsInf(secs, 0) || secs > maxTimeoutSeconds {
		return 0, false
	}
	if secs <= 0 {
		return 0, true
	}
	return time.Duration(secs * float64(time.Second)), true
}

func (s *settings) applyFile(f *File) {
	setIf(&s.prompt, f.Prompt)
	setIf(&s.defaultTag, f.Default)
	setIf(&s.timeout, f.Timeout)
	setIf(&s.format, f.Format)
	setIf(&s.itemDelim, f.ItemDelimiter)
	setIf(&s.elemDelim, f.ElementDelimiter)
}

func (s *settings) applyEnv(env map[string]string) {
	s.prompt = envOrDefault(env, envPrompt, s.prompt)
	s.defaultTag = envOrDefault(env, envDefault, s.defaultTag)
	s.timeout = envOrDefault(env, envTimeout, s.timeout)
	s.format = envOrDefault(env, envFormat, s.format)
	s.itemDelim = envOrDefault(env, envItemDelimiter, s.itemDelim)
	s.elemDelim = envOrDefault(env, envElementDelimiter, s.elemDelim)
	s.output = envOrDefault(env, envOutput, s.output)
	s.logFile = envOrDefault(env, envLogFile, s.logFile)
	s.trace = envOrBool(env, envTrace, s.trace)
}

func (s *settings) applyFlags(f Flags) {
	for name, apply := range map[string]func(){
		FlagPrompt:           func() { s.prompt = f.Prompt },
		FlagDefault:          func() { s.defaultTag = f.Default },
		FlagTimeout:          func() { s.timeout = f.Timeout },
		FlagFormat:           func() { s.format = f.Format },
		FlagItemDelimiter:    func() { s.itemDelim = f.ItemDelimiter },
		FlagElementDelimiter: func() { s.elemDelim = f.ElementDelimiter },
		FlagOutput:           func() { s.output = f.Output },
		FlagLogFile:          func() { s.logFile = f.LogFile },
		FlagTrace:            func() { s.trace = f.Trace },
	} {
		if f.changed(name) {
			apply()
		}
	}
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
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

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
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
