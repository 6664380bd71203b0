package base

import (
	"bytes"
	"flag"
	"fmt"
	"sort"
	"strings"
)

// FlagSet wraps flag.FlagSet with help output in the style of the other
// HashiCorp CLIs.
type FlagSet struct {
	*flag.FlagSet
}

// NewFlagSet wraps f. Parse errors are returned instead of printed.
func NewFlagSet(f *flag.FlagSet) *FlagSet {
	f.SetOutput(new(bytes.Buffer))
	return &FlagSet{FlagSet: f}
}

// Help returns the "Options:" block for the usage text.
func (f *FlagSet) Help() string {
	var names []string
	f.VisitAll(func(fl *flag.Flag) {
		names = append(names, fl.Name)
	})
	if len(names) == 0 {
		return ""
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("\n\nOptions:\n")
	for _, name := range names {
		fl := f.Lookup(name)
		fmt.Fprintf(&b, "\n  -%s", fl.Name)
		if fl.DefValue != "" && fl.DefValue != "false" {
			fmt.Fprintf(&b, "=%s", fl.DefValue)
		}
		fmt.Fprintf(&b, "\n      %s\n", fl.Usage)
	}

	return b.String()
}

// KeyValueFlag collects repeated key=value flags.
type KeyValueFlag map[string]string

func (kv KeyValueFlag) String() string {
	pairs := make([]string, 0, len(kv))
	for k, v := range kv {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, ",")
}

func (kv KeyValueFlag) Set(value string) error {
	key, val, ok := strings.Cut(value, "=")
	if !ok || key == "" {
		return fmt.Errorf("expected key=value, got %q", value)
	}
	kv[key] = val
	return nil
}
