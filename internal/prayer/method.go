package prayer

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Keys of the presets every build ships with.
const (
	MuslimWorldLeague = "mwl"
	Egyptian          = "egypt"
	Karachi           = "karachi"
	UmmAlQura         = "makkah"
	FixedInterval     = "fixed"
	NorthAmerica      = "isna"
	Singapore         = "singapore"
)

// IshaInterval places Ishaa a fixed number of minutes after Maghreb instead
// of at a sun angle. The zero value disables it.
type IshaInterval struct {
	AllYear float64 `toml:"all_year" json:"all_year" yaml:"all_year"`
	Ramadan float64 `toml:"ramadan" json:"ramadan" yaml:"ramadan"`
}

// Enabled reports whether Ishaa is computed from the interval.
func (i IshaInterval) Enabled() bool { return i.AllYear > 0 }

// Method is a named set of calculation parameters published by an authority.
type Method struct {
	Key          string       `toml:"key" json:"key" yaml:"key"`
	Name         string       `toml:"name" json:"name" yaml:"name"`
	FajrAngle    float64      `toml:"fajr_angle" json:"fajr_angle" yaml:"fajr_angle"`
	IshaaAngle   float64      `toml:"ishaa_angle" json:"ishaa_angle" yaml:"ishaa_angle"`
	IshaInterval IshaInterval `toml:"isha_interval" json:"isha_interval" yaml:"isha_interval"`
}

// Validate checks the method's parameters.
func (m Method) Validate() error {
	if strings.TrimSpace(m.Key) == "" {
		return fmt.Errorf("%w: method without key", ErrInvalidConfig)
	}
	if err := validateAngles(m.FajrAngle, m.IshaaAngle, m.IshaInterval); err != nil {
		return fmt.Errorf("method %q: %w", m.Key, err)
	}
	return nil
}

// MethodSet is an ordered collection of methods, looked up by key.
type MethodSet []Method

type methodFile struct {
	Methods []Method `toml:"method"`
}

//go:embed methods.toml
var methodsTOML string

var builtinMethods = mustParseMethods(methodsTOML)

func mustParseMethods(data string) MethodSet {
	set, err := ParseMethods(data)
	if err != nil {
		panic(fmt.Sprintf("prayer: parsing built-in methods: %v", err))
	}
	return set
}

// BuiltinMethods returns a copy of the shipped method table.
func BuiltinMethods() MethodSet {
	out := make(MethodSet, len(builtinMethods))
	copy(out, builtinMethods)
	return out
}

// ParseMethods decodes a TOML document of [[method]] tables.
func ParseMethods(data string) (MethodSet, error) {
	var f methodFile
	md, err := toml.Decode(data, &f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown method field %q", ErrInvalidConfig, undecoded[0].String())
	}

	seen := make(map[string]bool, len(f.Methods))
	for i := range f.Methods {
		m := &f.Methods[i]
		m.Key = strings.ToLower(strings.TrimSpace(m.Key))
		if err := m.Validate(); err != nil {
			return nil, err
		}
		if seen[m.Key] {
			return nil, fmt.Errorf("%w: duplicate method %q", ErrInvalidConfig, m.Key)
		}
		seen[m.Key] = true
	}
	return MethodSet(f.Methods), nil
}

// LoadMethodsFile reads user-defined methods from path. A missing file is not
// an error and yields an empty set.
func LoadMethodsFile(path string) (MethodSet, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading methods file: %w", err)
	}
	set, err := ParseMethods(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// Lookup finds a method by key, case-insensitively.
func (s MethodSet) Lookup(key string) (Method, error) {
	k := strings.ToLower(strings.TrimSpace(key))
	for _, m := range s {
		if m.Key == k {
			return m, nil
		}
	}
	return Method{}, fmt.Errorf("%w: unknown method %q (known: %s)", ErrInvalidConfig, key, strings.Join(s.Keys(), ", "))
}

// Keys returns the method keys in table order.
func (s MethodSet) Keys() []string {
	keys := make([]string, len(s))
	for i, m := range s {
		keys[i] = m.Key
	}
	return keys
}

// Merge returns s with overrides applied: methods sharing a key are replaced
// in place, new ones are appended in key order.
func (s MethodSet) Merge(overrides MethodSet) MethodSet {
	out := make(MethodSet, len(s))
	copy(out, s)

	index := make(map[string]int, len(out))
	for i, m := range out {
		index[m.Key] = i
	}

	var added MethodSet
	for _, m := range overrides {
		if i, ok := index[m.Key]; ok {
			out[i] = m
			continue
		}
		added = append(added, m)
	}
	sort.Slice(added, func(i, j int) bool { return added[i].Key < added[j].Key })
	return append(out, added...)
}

// LookupMethod finds a built-in method by key.
func LookupMethod(key string) (Method, error) {
	return builtinMethods.Lookup(key)
}

// MustLookupMethod is like LookupMethod but panics on an unknown key. It is
// intended for the package-level constants above.
func MustLookupMethod(key string) Method {
	m, err := LookupMethod(key)
	if err != nil {
		panic(err)
	}
	return m
}
