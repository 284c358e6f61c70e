// Package stamp patches a version global into an already-built bundle.
package stamp

import (
	"os"
	"regexp"
	"strings"

	"lcb/internal/errors"
)

// DefaultGlobal is the version global stamped when the configuration
// does not override it
const DefaultGlobal = "HARNESS_VERSION"

// Action describes what the stamper did to the artifact
type Action string

const (
	// ActionReplaced means an existing assignment was rewritten in place
	ActionReplaced Action = "replaced"
	// ActionInserted means no assignment existed and one was added near the top
	ActionInserted Action = "inserted"
	// ActionUnchanged means the artifact already carried the exact assignment
	ActionUnchanged Action = "unchanged"
)

// Stamp sets `<global> = "<version>"` inside the bundle at artifactPath.
// The first existing assignment is replaced in place; when none exists the
// assignment is inserted at the top, after the first line if that line is
// the loader banner (`if log and log.info...`).
func Stamp(artifactPath string, global string, version string) (Action, error) {
	if global == "" {
		global = DefaultGlobal
	}

	data, err := os.ReadFile(artifactPath)
	if err != nil {
		return "", errors.NewBuildError(errors.ArtifactMissing,
			"bundle not found at "+artifactPath, err)
	}
	text := string(data)

	assignRe := regexp.MustCompile(`(?m)^[ \t]*` + regexp.QuoteMeta(global) + `[ \t]*=[ \t]*"[^"]*"[ \t]*$`)
	replacement := global + ` = "` + version + `"`

	if loc := assignRe.FindStringIndex(text); loc != nil {
		updated := text[:loc[0]] + replacement + text[loc[1]:]
		if updated == text {
			return ActionUnchanged, nil
		}
		if err := os.WriteFile(artifactPath, []byte(updated), 0644); err != nil {
			return "", errors.NewBuildError(errors.WriteFailed, "failed to write stamped bundle", err)
		}
		return ActionReplaced, nil
	}

	lines := splitAfterLines(text)
	insertIdx := 0
	if len(lines) > 0 && strings.HasPrefix(strings.TrimLeft(lines[0], " \t"), "if log and log.info") {
		insertIdx = 1
	}

	var b strings.Builder
	for _, line := range lines[:insertIdx] {
		b.WriteString(line)
	}
	b.WriteString(replacement + "\n")
	for _, line := range lines[insertIdx:] {
		b.WriteString(line)
	}

	if err := os.WriteFile(artifactPath, []byte(b.String()), 0644); err != nil {
		return "", errors.NewBuildError(errors.WriteFailed, "failed to write stamped bundle", err)
	}
	return ActionInserted, nil
}

func splitAfterLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
