// Package config loads protocol families from configuration files.
//
// Three formats are accepted. The text format is a token stream:
//
//	# comment
//	preempt preemptDisable ; preemptEnable ;
//	mutex(recv) example.com/lockutil.Mutex.Lock ; example.com/lockutil.Mutex.Unlock ;
//
// Each family is a name with an optional object selector, the left group,
// a ";" delimiter, the right group and a closing ";". YAML and TOML files
// carry the same data as a list of families:
//
//	families:
//	  - name: mutex
//	    object: recv
//	    left: [example.com/lockutil.Mutex.Lock]
//	    right: [example.com/lockutil.Mutex.Unlock]
//
// Loading stops at the first malformed or truncated family. Families parsed
// before it are returned together with the error; the broken family is not.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mpyw/balanced/internal/registry"
	"github.com/mpyw/balanced/internal/state"
)

var (
	ErrMalformed     = errors.New("malformed protocol family")
	ErrTruncated     = errors.New("truncated protocol family")
	ErrUnknownFormat = errors.New("unknown config format")
	ErrRead          = errors.New("cannot read config")
)

// Family is one protocol: functions in Left and Right must alternate on the
// object chosen by Object.
type Family struct {
	Name   string   `yaml:"name" toml:"name"`
	Object string   `yaml:"object,omitempty" toml:"object,omitempty"`
	Left   []string `yaml:"left" toml:"left"`
	Right  []string `yaml:"right" toml:"right"`
}

// File is the document shape of YAML and TOML family files.
type File struct {
	Families []Family `yaml:"families" toml:"family"`
}

var (
	familyNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)
	funcNameRe   = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_./-]*$`)
)

// Validate checks names and the object selector of f.
func (f Family) Validate() error {
	if !familyNameRe.MatchString(f.Name) {
		return fmt.Errorf("%w: invalid family name %q", ErrMalformed, f.Name)
	}
	if _, err := registry.ParseSelector(f.Object); err != nil {
		return fmt.Errorf("%w: family %s: %w", ErrMalformed, f.Name, err)
	}
	for _, fn := range append(append([]string(nil), f.Left...), f.Right...) {
		if !funcNameRe.MatchString(fn) {
			return fmt.Errorf("%w: family %s: invalid function name %q", ErrMalformed, f.Name, fn)
		}
	}
	return nil
}

// Format is a family file encoding.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "text", "txt", "":
		return FormatText, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatOf picks the format from a file extension. Unknown extensions are
// read as text.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	}
	return FormatText
}

// Load decodes families from data in the given format.
func Load(data []byte, format Format) ([]Family, error) {
	switch format {
	case FormatText:
		return ParseText(string(data))
	case FormatYAML:
		return decodeYAML(data)
	case FormatTOML:
		return decodeTOML(data)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// LoadFile reads and decodes a family file.
func LoadFile(path string) ([]Family, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrRead, path, err)
	}
	return Load(data, FormatOf(path))
}

// validPrefix returns the leading valid families.
func validPrefix(families []Family) ([]Family, error) {
	for i, f := range families {
		if err := f.Validate(); err != nil {
			return families[:i], err
		}
	}
	return families, nil
}

// Apply registers every function of families.
func Apply(reg *registry.Registry, families []Family) error {
	for _, f := range families {
		sel, err := registry.ParseSelector(f.Object)
		if err != nil {
			return fmt.Errorf("family %s: %w", f.Name, err)
		}
		for _, fn := range f.Left {
			reg.Register(f.Name, fn, sel, state.Left)
		}
		for _, fn := range f.Right {
			reg.Register(f.Name, fn, sel, state.Right)
		}
	}
	return nil
}

// SyncFamilies returns the protocols of the sync package.
func SyncFamilies() []Family {
	return []Family{
		{
			Name:   "sync.Mutex",
			Object: "recv",
			Left:   []string{"sync.Mutex.Lock"},
			Right:  []string{"sync.Mutex.Unlock"},
		},
		{
			Name:   "sync.RWMutex",
			Object: "recv",
			Left:   []string{"sync.RWMutex.Lock"},
			Right:  []string{"sync.RWMutex.Unlock"},
		},
		{
			Name:   "sync.RWMutex.R",
			Object: "recv",
			Left:   []string{"sync.RWMutex.RLock"},
			Right:  []string{"sync.RWMutex.RUnlock"},
		},
		{
			Name:   "sync.Locker",
			Object: "recv",
			Left:   []string{"sync.Locker.Lock"},
			Right:  []string{"sync.Locker.Unlock"},
		},
	}
}
