// Package catalog holds the choices offered while configuring a kit and the
// rules that make some choices depend on earlier ones.
//
// Every table is keyed by the upstream choice's value, so the set of valid
// downstream values is a lookup rather than a branch in the prompt flow.
package catalog

import (
	"errors"
	"fmt"

	"github.com/shipkit/shipkit-cli/pkg/logger"
	"github.com/shipkit/shipkit-cli/pkg/sliceutil"
)

var catalogLog = logger.New("catalog:catalog")

// ErrUnknownChoice is returned when a lookup key is not in its table.
var ErrUnknownChoice = errors.New("unknown choice")

// Entry is one selectable value and its display label.
type Entry struct {
	Value string
	Label string
}

// Availability is an Entry annotated with whether it can be picked given the
// choices made so far. Reason explains an unavailable entry.
type Availability struct {
	Entry
	Available bool
	Reason    string
}

var labels = map[string]string{
	"astro":      "Astro",
	"next":       "Next.js",
	"react":      "React",
	"svelte":     "Svelte",
	"vue":        "Vue",
	"drizzle":    "Drizzle",
	"prisma":     "Prisma",
	"mysql":      "MySQL",
	"neon":       "Neon (PostgreSQL)",
	"postgresql": "PostgreSQL",
	"sqlite":     "SQLite",
	"turso":      "Turso (SQLite)",
	"lucia":      "Lucia",
	"supabase":   "Supabase",
	"clerk":      "Clerk",
	"node":       "Node",
	"vercel":     "Vercel",
	"netlify":    "Netlify",
	"cloudflare": "Cloudflare",
	"bun":        "bun",
	"npm":        "npm",
	"pnpm":       "pnpm",
	"yarn":       "yarn",
}

var (
	baseFrameworks = []string{"astro", "next"}

	frameworksByBase = map[string][]string{
		"astro": {"react", "svelte", "vue"},
		"next":  {"react"},
	}

	orms = []string{"drizzle", "prisma"}

	databasesByORM = map[string][]string{
		"prisma":  {"mysql", "postgresql", "sqlite"},
		"drizzle": {"mysql", "neon", "postgresql", "sqlite", "turso"},
	}

	authProviders = []string{"lucia", "supabase", "clerk"}

	// authUnsupported lists, per auth provider, the frameworks it has no
	// integration for.
	authUnsupported = map[string][]string{
		"clerk": {"svelte", "vue"},
	}

	outputs = []string{"node", "vercel", "netlify", "cloudflare"}

	managers = []string{"bun", "npm", "pnpm", "yarn"}

	installCommands = map[string]string{
		"bun":  "bun install",
		"npm":  "npm install",
		"pnpm": "pnpm install",
		"yarn": "yarn",
	}
)

// Label returns the display label for value, or value itself when it has
// none.
func Label(value string) string {
	if l, ok := labels[value]; ok {
		return l
	}
	return value
}

func entries(values []string) []Entry {
	return sliceutil.Map(values, func(v string) Entry {
		return Entry{Value: v, Label: Label(v)}
	})
}

// BaseFrameworks returns the base frameworks in display order.
func BaseFrameworks() []Entry {
	return entries(baseFrameworks)
}

// Frameworks returns the UI frameworks valid for base.
func Frameworks(base string) ([]Entry, error) {
	values, ok := frameworksByBase[base]
	if !ok {
		return nil, fmt.Errorf("%w: base framework %q", ErrUnknownChoice, base)
	}
	return entries(values), nil
}

// ORMs returns the supported ORMs.
func ORMs() []Entry {
	return entries(orms)
}

// Databases returns the databases the given ORM can target.
func Databases(orm string) ([]Entry, error) {
	values, ok := databasesByORM[orm]
	if !ok {
		return nil, fmt.Errorf("%w: ORM %q", ErrUnknownChoice, orm)
	}
	return entries(values), nil
}

// AuthProviders lists every auth provider, marking those that cannot be used
// with framework as unavailable. Unavailable providers stay in the list.
func AuthProviders(framework string) []Availability {
	catalogLog.Printf("Resolving auth providers for framework=%s", framework)
	return sliceutil.Map(authProviders, func(v string) Availability {
		a := Availability{Entry: Entry{Value: v, Label: Label(v)}, Available: true}
		if !AuthAvailable(v, framework) {
			a.Available = false
			a.Reason = "not available with " + Label(framework)
		}
		return a
	})
}

// AuthAvailable reports whether auth can be combined with framework.
func AuthAvailable(auth, framework string) bool {
	return !sliceutil.Contains(authUnsupported[auth], framework)
}

// Outputs returns the deployment output targets.
func Outputs() []Entry {
	return entries(outputs)
}

// Managers returns the supported package managers.
func Managers() []Entry {
	return entries(managers)
}

// InstallCommand returns the shell command that installs dependencies with
// manager.
func InstallCommand(manager string) (string, bool) {
	cmd, ok := installCommands[manager]
	return cmd, ok
}

// Contains reports whether value is one of the entries.
func Contains(list []Entry, value string) bool {
	return sliceutil.Contains(Values(list), value)
}

// Values returns the values of list in order.
func Values(list []Entry) []string {
	return sliceutil.Map(list, func(e Entry) string { return e.Value })
}
