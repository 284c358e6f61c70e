// Package require is the heuristic front end of the bundler: it scans Lua
// sources line by line for the leading require block that declares a file's
// dependencies, and strips that block when assembling the bundle.
//
// This is deliberately pattern-based, not a Lua parser. A require statement
// appearing outside the leading block is invisible to the dependency graph;
// that is a documented policy of the scanner, not a defect. Keeping all the
// pattern logic here means a real parser could replace this package without
// touching the graph or scheduling code.
package require

import (
	"os"
	"regexp"
	"strings"
)

var (
	// requireRe matches a line that is solely a require call with a single
	// quoted module identifier, e.g. `require("core.vec")`
	requireRe = regexp.MustCompile(`^\s*require\(["']([A-Za-z0-9_./-]+)["']\)\s*$`)

	// bareRequireRe additionally tolerates a trailing line comment; used by
	// the assembler's defensive sweep
	bareRequireRe = regexp.MustCompile(`^\s*require\(["'][A-Za-z0-9_./-]+["']\)\s*(--.*)?$`)

	commentRe = regexp.MustCompile(`^\s*--`)
	blankRe   = regexp.MustCompile(`^\s*$`)
)

// isComment reports whether the line is a `--` line comment
func isComment(line string) bool {
	return commentRe.MatchString(line)
}

// isBlank reports whether the line is empty or whitespace-only
func isBlank(line string) bool {
	return blankRe.MatchString(line)
}

// requireModule returns the module identifier if the line is solely a
// require statement, else the empty string
func requireModule(line string) string {
	m := requireRe.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	return m[1]
}

// IsBareRequire reports whether the line is a non-comment line consisting
// solely of a require statement, optionally followed by a trailing comment.
// The assembler's final sweep deletes such lines when stripping is enabled.
func IsBareRequire(line string) bool {
	if isComment(line) {
		return false
	}
	return bareRequireRe.MatchString(line)
}

// splitLines splits content into lines, each keeping its trailing newline.
// The final element carries no newline if the content does not end with one.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	var lines []string
	for {
		idx := strings.IndexByte(content, '\n')
		if idx < 0 {
			lines = append(lines, content)
			break
		}
		lines = append(lines, content[:idx+1])
		content = content[idx+1:]
		if content == "" {
			break
		}
	}
	return lines
}

// headerEnd returns the index of the first line after the file's
// documentation header:
//  1. leading blank lines are skipped
//  2. if the first non-blank line opens a `--[[` block comment, lines are
//     consumed up to and including the one containing `]]`
//  3. blanks, then consecutive `--` doc-comment lines, then blanks again
//     are skipped
func headerEnd(lines []string) int {
	i := 0
	for i < len(lines) && isBlank(lines[i]) {
		i++
	}
	if i < len(lines) && strings.Contains(lines[i], "--[[") {
		for i < len(lines) && !strings.Contains(lines[i], "]]") {
			i++
		}
		if i < len(lines) {
			i++ // move past the line containing ]]
		}
	}
	for i < len(lines) && isBlank(lines[i]) {
		i++
	}
	for i < len(lines) && isComment(lines[i]) {
		i++
	}
	for i < len(lines) && isBlank(lines[i]) {
		i++
	}
	return i
}

// Requires extracts the ordered module identifiers from the file's leading
// require block: starting at the header end, blank lines are skipped and
// require lines collected until the first line that is neither.
func Requires(content string) []string {
	lines := splitLines(content)
	var reqs []string

	idx := headerEnd(lines)
	for idx < len(lines) {
		if isBlank(lines[idx]) {
			idx++
			continue
		}
		mod := requireModule(lines[idx])
		if mod == "" {
			break
		}
		reqs = append(reqs, mod)
		idx++
	}
	return reqs
}

// ReadRequires reads the file and extracts its leading require block.
// A read failure yields an empty list and the error; callers treat the file
// as dependency-free and keep building (best-effort degradation).
func ReadRequires(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Requires(string(data)), nil
}

// StripLeading removes the contiguous run of require and blank lines that
// starts at the header end. Content without such a run is returned unchanged.
func StripLeading(content string) string {
	lines := splitLines(content)
	i := headerEnd(lines)
	j := i
	for j < len(lines) && (requireModule(lines[j]) != "" || isBlank(lines[j])) {
		j++
	}
	if j == i {
		return content
	}
	var b strings.Builder
	for _, line := range lines[:i] {
		b.WriteString(line)
	}
	for _, line := range lines[j:] {
		b.WriteString(line)
	}
	return b.String()
}
