package commands

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Group sorts commands into help sections.
type Group int

const (
	GroupNotes Group = iota
	GroupAccount
	GroupOther
)

func (g Group) String() string {
	switch g {
	case GroupNotes:
		return "Notes"
	case GroupAccount:
		return "Account"
	default:
		return "Other"
	}
}

// Section is one help section: a group and its commands sorted by name.
type Section struct {
	Group    Group
	Commands []Command
}

type entry struct {
	cmd   Command
	group Group
}

// Registry maps command names and aliases to commands.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]entry // name and aliases
	primary map[string]entry // names only
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:  make(map[string]entry),
		primary: make(map[string]entry),
	}
}

// Register adds c to group. It fails when the name or an alias is taken, or
// when a name would be read as a note reference or flag on the command line.
func (r *Registry) Register(group Group, c Command) error {
	names := append([]string{c.Name()}, c.Aliases()...)
	for _, name := range names {
		if err := checkName(name); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, name := range names {
		if prev, exists := r.byName[name]; exists {
			kind := "command"
			if i > 0 {
				kind = "command alias"
			}
			return fmt.Errorf("%s already registered: %s (by %s)", kind, name, prev.cmd.Name())
		}
	}

	e := entry{cmd: c, group: group}
	r.primary[c.Name()] = e
	for _, name := range names {
		r.byName[name] = e
	}
	return nil
}

// checkName rejects names the dispatcher could never route to.
func checkName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("empty command name")
	case strings.HasPrefix(name, "-"):
		return fmt.Errorf("command name looks like a flag: %s", name)
	case strings.HasPrefix(name, "#") || isAllDigits(name):
		return fmt.Errorf("command name looks like a note reference: %s", name)
	}
	return nil
}

// Find looks up a command by name or alias.
func (r *Registry) Find(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byName[name]
	return e.cmd, ok
}

// All returns all commands sorted by name.
func (r *Registry) All() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Command, 0, len(r.primary))
	for _, e := range r.primary {
		result = append(result, e.cmd)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name() < result[j].Name() })
	return result
}

// Sections returns the non-empty groups in help order.
func (r *Registry) Sections() []Section {
	r.mu.RLock()
	byGroup := make(map[Group][]Command)
	for _, e := range r.primary {
		byGroup[e.group] = append(byGroup[e.group], e.cmd)
	}
	r.mu.RUnlock()

	var out []Section
	for _, g := range []Group{GroupNotes, GroupAccount, GroupOther} {
		cmds := byGroup[g]
		if len(cmds) == 0 {
			continue
		}
		sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name() < cmds[j].Name() })
		out = append(out, Section{Group: g, Commands: cmds})
	}
	return out
}

// DefaultRegistry is the global command registry.
var DefaultRegistry = NewRegistry()

// Register adds a command to the default registry.
func Register(group Group, c Command) {
	if err := DefaultRegistry.Register(group, c); err != nil {
		panic(err)
	}
}
