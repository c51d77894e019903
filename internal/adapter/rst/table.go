package rst

import (
	"fmt"
	"sort"

	"makedoc2rst/internal/adapter/makedoc"
	"makedoc2rst/internal/domain"
)

// CommandTable maps makedoc commands to rendering strategies. A table is never
// modified after construction, so one value can be shared by any number of
// renderers.
type CommandTable struct {
	entries map[string]domain.Strategy
}

var defaultEntries = map[string]domain.Strategy{
	"FUNCTION": domain.StrategySummary,

	"SYNOPSIS":      domain.StrategyCode,
	"ANSI_SYNOPSIS": domain.StrategyCode,
	"TRAD_SYNOPSIS": domain.StrategyCode,
	"TYPEDEF":       domain.StrategyCode,

	"DESCRIPTION": domain.StrategyLabeled,
	"INDEX":       domain.StrategyLabeled,
	"RETURNS":     domain.StrategyLabeled,
	"PORTABILITY": domain.StrategyLabeled,
	"NOTES":       domain.StrategyLabeled,
	"ERRORS":      domain.StrategyLabeled,
	"BUGS":        domain.StrategyLabeled,
	"WARNINGS":    domain.StrategyLabeled,
	"SEEALSO":     domain.StrategyLabeled,

	// Injected by the converter.
	"COMMENT": domain.StrategyLabeled,
	"ORIGIN":  domain.StrategyLabeled,

	"QUICKREF": domain.StrategySuppressed,
	"MATHREF":  domain.StrategySuppressed,
	"NEWPAGE":  domain.StrategySuppressed,
	"START":    domain.StrategySuppressed,
	"END":      domain.StrategySuppressed,
}

// DefaultTable returns the table covering every command of the newlib
// makedoc dialect.
func DefaultTable() *CommandTable {
	entries := make(map[string]domain.Strategy, len(defaultEntries))
	for cmd, s := range defaultEntries {
		entries[cmd] = s
	}
	return &CommandTable{entries: entries}
}

// NewCommandTable builds a table from explicit entries.
func NewCommandTable(entries map[string]domain.Strategy) (*CommandTable, error) {
	t := &CommandTable{entries: make(map[string]domain.Strategy, len(entries))}
	for cmd, s := range entries {
		if err := validateEntry(cmd, s); err != nil {
			return nil, err
		}
		t.entries[cmd] = s
	}
	return t, nil
}

// With returns a copy of the table with command mapped to s.
func (t *CommandTable) With(command string, s domain.Strategy) (*CommandTable, error) {
	if err := validateEntry(command, s); err != nil {
		return nil, err
	}
	entries := make(map[string]domain.Strategy, len(t.entries)+1)
	for cmd, existing := range t.entries {
		entries[cmd] = existing
	}
	entries[command] = s
	return &CommandTable{entries: entries}, nil
}

// Extend applies named strategies, as found in configuration, on top of t.
func (t *CommandTable) Extend(extra map[string]string) (*CommandTable, error) {
	out := t
	for _, cmd := range sortedKeys(extra) {
		s, ok := domain.ParseStrategy(extra[cmd])
		if !ok {
			return nil, fmt.Errorf("command %s: unknown strategy %q", cmd, extra[cmd])
		}
		next, err := out.With(cmd, s)
		if err != nil {
			return nil, err
		}
		out = next
	}
	return out, nil
}

// Lookup is an exact, case-sensitive match.
func (t *CommandTable) Lookup(command string) (domain.Strategy, bool) {
	s, ok := t.entries[command]
	return s, ok
}

// Commands lists the known commands in lexical order.
func (t *CommandTable) Commands() []string {
	cmds := make([]string, 0, len(t.entries))
	for cmd := range t.entries {
		cmds = append(cmds, cmd)
	}
	sort.Strings(cmds)
	return cmds
}

func validateEntry(command string, s domain.Strategy) error {
	if !makedoc.IsCommand(command) {
		return fmt.Errorf("command %q can never appear as a command line", command)
	}
	if _, ok := domain.ParseStrategy(string(s)); !ok {
		return fmt.Errorf("command %s: unknown strategy %q", command, s)
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
