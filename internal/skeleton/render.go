package skeleton

import (
	"strings"
)

// ToText renders the skeleton as compact human/LLM-readable text. With
// verbose=false only the first line of each class/method/function docstring
// is kept; with verbose=true the full docstrings are emitted. The module doc
// is always rendered first-line-only.
func (s *CodeSkeleton) ToText(verbose bool) string {
	var b strings.Builder

	b.WriteString("# " + s.FileName + " [" + s.Language + "]")

	if s.ModuleDoc != "" {
		b.WriteString("\nmodule: \"" + firstLine(s.ModuleDoc) + "\"")
	}

	if len(s.Imports) > 0 {
		b.WriteString("\nimports: " + strings.Join(s.Imports, ", "))
	}

	for _, c := range s.Classes {
		line := "class " + c.Name
		if len(c.Bases) > 0 {
			line += "(" + strings.Join(c.Bases, ", ") + ")"
		}
		b.WriteString("\n" + line)
		writeDocstring(&b, "  ", c.Docstring, verbose)

		for _, m := range c.Methods {
			b.WriteString("\n  + " + signatureLine(m))
			writeDocstring(&b, "    ", m.Docstring, verbose)
		}
	}

	for _, f := range s.Functions {
		b.WriteString("\ndef " + signatureLine(f))
		writeDocstring(&b, "  ", f.Docstring, verbose)
	}

	return b.String()
}

// signatureLine renders "name(params) -> ret" on a single visual line. Raw
// params may span multiple source lines; any embedded newlines are collapsed
// so the signature never breaks across lines.
func signatureLine(f FunctionSig) string {
	sig := f.Name + "(" + collapseNewlines(f.Params) + ")"
	if f.ReturnType != "" {
		sig += " -> " + collapseNewlines(f.ReturnType)
	}
	return sig
}

// writeDocstring emits a docstring under its owning line. Single-line
// content renders as `"""text"""`; multi-line content opens and closes the
// triple quotes on content lines, never on a line of their own.
func writeDocstring(b *strings.Builder, indent, doc string, verbose bool) {
	doc = strings.TrimSpace(doc)
	if doc == "" {
		return
	}

	if !verbose {
		b.WriteString("\n" + indent + `"""` + firstLine(doc) + `"""`)
		return
	}

	lines := strings.Split(doc, "\n")
	if len(lines) == 1 {
		b.WriteString("\n" + indent + `"""` + lines[0] + `"""`)
		return
	}

	b.WriteString("\n" + indent + `"""` + lines[0])
	for _, line := range lines[1 : len(lines)-1] {
		if strings.TrimSpace(line) == "" {
			b.WriteString("\n")
			continue
		}
		b.WriteString("\n" + indent + line)
	}
	b.WriteString("\n" + indent + lines[len(lines)-1] + `"""`)
}

// firstLine returns the first non-empty line of text, trimmed.
func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// collapseNewlines joins multi-line text onto one line, squeezing the
// whitespace around each break to a single space.
func collapseNewlines(text string) string {
	if !strings.Contains(text, "\n") {
		return text
	}
	lines := strings.Split(text, "\n")
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, " ")
}
