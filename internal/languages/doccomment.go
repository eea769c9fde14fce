package languages

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// docStyle parameterizes doc-comment association for one language: which
// node kinds are comments, which are transparent (attributes, annotations,
// and preprocessor directives, skipped without breaking the run), which
// comment texts count as documentation, and how to strip their markup.
type docStyle struct {
	commentKinds map[string]bool
	transparent  map[string]bool
	isDoc        func(text string) bool
	clean        func(text string) string
}

// precedingDoc returns the documentation attached to siblings[idx]: the
// nearest contiguous run of doc-comment siblings directly above it. A blank
// line or a non-comment, non-transparent sibling ends the run.
func precedingDoc(siblings []*sitter.Node, idx int, source []byte, style docStyle) string {
	if idx <= 0 || idx >= len(siblings) {
		return ""
	}

	wantRow := int(siblings[idx].StartPosition().Row)
	var parts []string

	for i := idx - 1; i >= 0; i-- {
		prev := siblings[i]
		startRow := int(prev.StartPosition().Row)
		endRow := int(prev.EndPosition().Row)

		if style.transparent[prev.Kind()] {
			if endRow < wantRow-1 {
				break
			}
			wantRow = startRow
			continue
		}

		if !style.commentKinds[prev.Kind()] {
			break
		}
		if endRow < wantRow-1 {
			// blank line between comment and declaration
			break
		}

		text := nodeText(prev, source)
		if !style.isDoc(text) {
			break
		}
		parts = append(parts, style.clean(text))
		wantRow = startRow
	}

	// collected bottom-up; restore source order
	for l, r := 0, len(parts)-1; l < r; l, r = l+1, r-1 {
		parts[l], parts[r] = parts[r], parts[l]
	}

	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n")
}

// moduleDocFromLeading captures a file-level doc block: the leading run of
// doc comments at the top of the file, unless that run sits directly above
// the first declaration (in which case it documents the declaration, not
// the module).
func moduleDocFromLeading(root *sitter.Node, source []byte, style docStyle) string {
	var groups [][]string
	var current []string
	lastRow := -2
	firstDeclRow := -1

	for _, child := range childNodes(root) {
		kind := child.Kind()
		if style.transparent[kind] {
			continue
		}
		if style.commentKinds[kind] {
			text := nodeText(child, source)
			if !style.isDoc(text) {
				break
			}
			startRow := int(child.StartPosition().Row)
			if len(current) > 0 && startRow > lastRow+1 {
				groups = append(groups, current)
				current = nil
			}
			if cleaned := style.clean(text); cleaned != "" {
				current = append(current, cleaned)
			}
			lastRow = int(child.EndPosition().Row)
			continue
		}
		firstDeclRow = int(child.StartPosition().Row)
		break
	}

	if len(current) > 0 && (firstDeclRow == -1 || firstDeclRow > lastRow+1) {
		groups = append(groups, current)
	}
	if len(groups) == 0 {
		return ""
	}
	return strings.Join(groups[0], "\n")
}

// stripMarker removes the first matching comment marker plus one following
// space from a single comment line. Markers must be listed longest first.
func stripMarker(text string, markers ...string) string {
	text = strings.TrimSpace(text)
	for _, m := range markers {
		if strings.HasPrefix(text, m) {
			return strings.TrimPrefix(text[len(m):], " ")
		}
	}
	return text
}

// cleanBlockComment strips /* ... */ delimiters and interior * bullets,
// keeping blank lines and the block's internal structure.
func cleanBlockComment(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "/*")
	text = strings.TrimSuffix(text, "*/")

	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "*")
		line = strings.TrimPrefix(line, " ")
		cleaned = append(cleaned, line)
	}
	return strings.TrimSpace(strings.Join(cleaned, "\n"))
}

// cleanLineOrBlock handles languages whose doc comments are either // line
// runs or /* */ blocks; the markers are the line-comment prefixes to strip.
func cleanLineOrBlock(text string, markers ...string) string {
	if strings.HasPrefix(strings.TrimSpace(text), "/*") {
		return cleanBlockComment(text)
	}
	return stripMarker(text, markers...)
}
