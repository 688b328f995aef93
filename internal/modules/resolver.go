package modules

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/funvibe/numpad/internal/diagnostics"
)

// Resolver assembles an entry unit and everything it imports into one
// program text.
type Resolver struct {
	Source UnitSource
	Logger zerolog.Logger
}

func NewResolver(source UnitSource) *Resolver {
	return &Resolver{Source: source, Logger: zerolog.Nop()}
}

// Resolve walks the import graph from entry and returns the assembled
// program text: dependency bodies first, the entry's own body last.
//
// Units are visited by index. A dependency that was already visited is
// moved to the end of the order, where it will be visited again; an
// unseen dependency is queued, duplicating any copy still waiting its
// turn. Each move shifts the unvisited tail left by one, so the index
// advances by one minus the number of moves. Assembly then prepends each
// body in final order, which reverses it, so the unit that settled last
// runs first.
func (r *Resolver) Resolve(entry string) (string, error) {
	names := []string{entry}
	texts := []string{""}
	loaded := []bool{false}

	// Import edges, recorded the first time each unit's header is read.
	// A dependency that can already reach its importer closes a cycle;
	// such units would otherwise be shuffled to the end forever.
	imports := make(map[string][]string)

	for i := 0; i < len(names); {
		if !loaded[i] {
			text, err := r.Source.Load(names[i])
			if err != nil {
				r.Logger.Debug().Str("unit", names[i]).Err(err).Msg("unit load failed")
				msg := fmt.Sprintf("%s could not be found.", names[i])
				if i > 0 {
					msg += " Import failed."
				}
				return "", &diagnostics.Error{Code: diagnostics.ErrM001, Message: msg}
			}
			texts[i] = text
			loaded[i] = true
		}

		header, _, _ := strings.Cut(texts[i], "\n")
		header = strings.TrimSuffix(header, "\r")

		advance := 1
		if header != "" {
			for _, dep := range strings.Split(header, ".") {
				if dep == names[i] {
					return "", &diagnostics.Error{
						Code:    diagnostics.ErrM002,
						Message: fmt.Sprintf("unit %s imports itself", dep),
					}
				}
				if r.recordImport(imports, names[i], dep) {
					return "", &diagnostics.Error{
						Code:    diagnostics.ErrM002,
						Message: fmt.Sprintf("import cycle detected: %s imports %s", names[i], dep),
					}
				}
				if j := indexBefore(names, dep, i); j >= 0 {
					moveToEnd(names, texts, loaded, j)
					advance--
					r.Logger.Trace().Str("unit", dep).Int("from", j).Msg("dependency reordered")
				} else {
					names = append(names, dep)
					texts = append(texts, "")
					loaded = append(loaded, false)
					r.Logger.Trace().Str("unit", dep).Msg("dependency queued")
				}
			}
		}

		// Moves pulled entries out of the visited prefix and shifted the
		// tail left; step onto whatever now follows the current unit.
		i += advance
	}

	var sb strings.Builder
	for idx := len(texts) - 1; idx >= 0; idx-- {
		_, body, _ := strings.Cut(texts[idx], "\n")
		sb.WriteString(body)
	}
	sb.WriteString("\n")

	r.Logger.Debug().Str("entry", entry).Int("units", len(names)).Msg("imports resolved")
	return sb.String(), nil
}

// recordImport adds the edge from -> dep and reports whether dep already
// reaches from, which would make the new edge close an import cycle.
func (r *Resolver) recordImport(imports map[string][]string, from, dep string) bool {
	for _, known := range imports[from] {
		if known == dep {
			// Header reread after a move; the edge was vetted on load.
			return false
		}
	}
	imports[from] = append(imports[from], dep)
	return reaches(imports, dep, from)
}

// reaches walks recorded import edges depth-first looking for target.
func reaches(imports map[string][]string, from, target string) bool {
	seen := make(map[string]bool)
	stack := []string{from}
	for len(stack) > 0 {
		unit := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if unit == target {
			return true
		}
		if seen[unit] {
			continue
		}
		seen[unit] = true
		stack = append(stack, imports[unit]...)
	}
	return false
}

// indexBefore returns the position of name within names[:limit], or -1.
func indexBefore(names []string, name string, limit int) int {
	for j := 0; j < limit; j++ {
		if names[j] == name {
			return j
		}
	}
	return -1
}

// moveToEnd shifts the unit at j to the last position in all three
// parallel lists, preserving the relative order of everything after it.
func moveToEnd(names []string, texts []string, loaded []bool, j int) {
	n, t, l := names[j], texts[j], loaded[j]
	copy(names[j:], names[j+1:])
	copy(texts[j:], texts[j+1:])
	copy(loaded[j:], loaded[j+1:])
	last := len(names) - 1
	names[last], texts[last], loaded[last] = n, t, l
}
