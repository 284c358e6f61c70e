// Package selene exports the bundle's public Lua API as a selene standard
// library, so projects consuming the bundle can lint against typed globals.
//
// The scan is annotation-driven: top-level `function Name(...)` declarations
// are paired with the contiguous run of EmmyLua `---@param name type` lines
// immediately above them. Parameters without an annotation default to `any`.
// Return types are not inferred; selene does not need them.
package selene

import (
	"os"
	"regexp"
	"strings"
)

var (
	paramRe = regexp.MustCompile(`^\s*---@param\s+(\w+)\s+(\S+)`)
	funcRe  = regexp.MustCompile(`^\s*function\s+([A-Za-z_][A-Za-z0-9_]*)\s*\(([^)]*)\)`)
)

// primitiveTypes maps Emmy type tokens to selene primitive names
var primitiveTypes = map[string]string{
	"string":   "string",
	"number":   "number",
	"integer":  "number",
	"bool":     "bool",
	"boolean":  "bool",
	"table":    "table",
	"nil":      "nil",
	"any":      "any",
	"function": "function",
	"...":      "...",
}

// ParsedFunction is one globally-exposed function found in a source file
type ParsedFunction struct {
	Name string

	// ArgTypes holds the raw Emmy type tokens in parameter order,
	// e.g. "string?", "table", "Vec3|nil"
	ArgTypes []string
}

// ParseContent scans file content for top-level function declarations and
// their preceding @param annotation runs. Pending annotations are discarded
// when a non-comment line intervenes before a declaration.
func ParseContent(content string) []ParsedFunction {
	var pending []string
	var results []ParsedFunction

	for _, line := range strings.Split(content, "\n") {
		if m := paramRe.FindStringSubmatch(line); m != nil {
			pending = append(pending, m[2])
			continue
		}

		if m := funcRe.FindStringSubmatch(line); m != nil {
			argcount := 0
			arglist := strings.TrimSpace(m[2])
			if arglist != "" {
				for _, item := range strings.Split(arglist, ",") {
					if strings.TrimSpace(item) != "" {
						argcount++
					}
				}
			}

			types := make([]string, 0, argcount)
			for i := 0; i < argcount; i++ {
				if i < len(pending) {
					types = append(types, pending[i])
				} else {
					types = append(types, "any")
				}
			}
			results = append(results, ParsedFunction{Name: m[1], ArgTypes: types})
			pending = nil
			continue
		}

		if len(pending) > 0 && !strings.HasPrefix(strings.TrimSpace(line), "--") {
			// new code chunk; stale annotations would mismatch
			pending = nil
		}
	}
	return results
}

// ParseFile reads and scans one source file. Unreadable files contribute
// nothing, in line with the bundler's best-effort file handling.
func ParseFile(path string) []ParsedFunction {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return ParseContent(string(data))
}

// Collect scans the given source files in order, skipping files whose base
// name starts with an underscore (internal/header files by convention).
func Collect(files []string) []ParsedFunction {
	var funcs []ParsedFunction
	for _, path := range files {
		base := strings.ToLower(baseName(path))
		if strings.HasPrefix(base, "_") {
			continue
		}
		funcs = append(funcs, ParseFile(path)...)
	}
	return funcs
}

func baseName(path string) string {
	if idx := strings.LastIndexAny(path, "/\\"); idx >= 0 {
		return path[idx+1:]
	}
	return path
}

// normalizeArgType turns one Emmy type token into a selene arg type plus an
// optionality flag. A trailing `?` marks the parameter optional; unions,
// tuples and array types stay intact as display types.
func normalizeArgType(token string) (interface{}, bool) {
	raw := strings.TrimSpace(token)
	if raw == "" {
		return "any", false
	}
	if raw == "..." {
		return "...", false
	}

	optional := false
	if strings.HasSuffix(raw, "?") {
		optional = true
		raw = strings.TrimSuffix(raw, "?")
	}

	if strings.ContainsAny(raw, "|,[]") {
		return map[string]string{"display": raw}, optional
	}

	if mapped, ok := primitiveTypes[strings.ToLower(raw)]; ok {
		return mapped, optional
	}
	return map[string]string{"display": raw}, optional
}
