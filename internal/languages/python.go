package languages

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"github.com/skel-tools/skel/internal/skeleton"
)

// pythonExtractor extracts skeletons from Python files. Documentation comes
// from docstrings (the leading string expression of a module, class, or
// function body), not from comments.
type pythonExtractor struct {
	*treeSitterExtractor
}

// NewPython creates the Python extractor.
func NewPython() (Extractor, error) {
	base, err := newTreeSitterExtractor(sitter.NewLanguage(python.Language()), "Python")
	if err != nil {
		return nil, err
	}
	return &pythonExtractor{treeSitterExtractor: base}, nil
}

func (e *pythonExtractor) Extract(fileName, content string) (*skeleton.CodeSkeleton, error) {
	source := []byte(content)
	tree, err := e.parse(fileName, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	sk := e.newSkeleton(fileName)

	seenStatement := false
	for _, child := range childNodes(tree.RootNode()) {
		node := child
		if node.Kind() == "decorated_definition" {
			if inner := node.ChildByFieldName("definition"); inner != nil {
				node = inner
			}
		}

		switch node.Kind() {
		case "comment":
			continue
		case "expression_statement":
			// a leading string expression is the module docstring
			if !seenStatement {
				if doc := docstringFromStatement(node, source); doc != "" {
					sk.ModuleDoc = doc
				}
			}
		case "import_statement":
			e.extractImport(node, source, sk)
		case "import_from_statement":
			// kept verbatim: "from typing import List" is a distinct
			// import string from "import typing"
			sk.AddImport(strings.Join(strings.Fields(nodeText(node, source)), " "))
		case "class_definition":
			sk.Classes = append(sk.Classes, e.extractClass(node, source))
		case "function_definition":
			sk.Functions = append(sk.Functions, e.extractFunction(node, source))
		}
		seenStatement = true
	}

	return sk, nil
}

// extractImport records the dotted names of a plain import statement.
func (e *pythonExtractor) extractImport(node *sitter.Node, source []byte, sk *skeleton.CodeSkeleton) {
	for _, child := range childNodes(node) {
		switch child.Kind() {
		case "dotted_name":
			sk.AddImport(nodeText(child, source))
		case "aliased_import":
			sk.AddImport(fieldText(child, "name", source))
		}
	}
}

func (e *pythonExtractor) extractClass(node *sitter.Node, source []byte) skeleton.ClassSkeleton {
	cls := skeleton.ClassSkeleton{
		Name:      fieldText(node, "name", source),
		Docstring: bodyDocstring(node, source),
	}

	if supers := node.ChildByFieldName("superclasses"); supers != nil {
		for _, base := range childNodes(supers) {
			switch base.Kind() {
			case "identifier", "attribute", "subscript":
				cls.Bases = append(cls.Bases, nodeText(base, source))
			}
		}
	}

	if body := node.ChildByFieldName("body"); body != nil {
		for _, stmt := range childNodes(body) {
			fn := stmt
			if fn.Kind() == "decorated_definition" {
				if inner := fn.ChildByFieldName("definition"); inner != nil {
					fn = inner
				}
			}
			if fn.Kind() == "function_definition" {
				cls.Methods = append(cls.Methods, e.extractFunction(fn, source))
			}
		}
	}

	return cls
}

func (e *pythonExtractor) extractFunction(node *sitter.Node, source []byte) skeleton.FunctionSig {
	return skeleton.FunctionSig{
		Name:       fieldText(node, "name", source),
		Params:     stripParens(fieldText(node, "parameters", source)),
		ReturnType: fieldText(node, "return_type", source),
		Docstring:  bodyDocstring(node, source),
	}
}

// bodyDocstring returns the cleaned docstring of a definition's body: the
// string expression in its first statement, if any.
func bodyDocstring(node *sitter.Node, source []byte) string {
	body := node.ChildByFieldName("body")
	if body == nil || body.ChildCount() == 0 {
		return ""
	}
	return docstringFromStatement(body.Child(0), source)
}

// docstringFromStatement unwraps an expression_statement holding a string
// literal and cleans it. Returns "" for anything else.
func docstringFromStatement(stmt *sitter.Node, source []byte) string {
	if stmt == nil || stmt.Kind() != "expression_statement" || stmt.ChildCount() == 0 {
		return ""
	}
	str := stmt.Child(0)
	if str == nil || str.Kind() != "string" {
		return ""
	}
	return cleanPythonString(nodeText(str, source))
}

// cleanPythonString strips string prefixes and quote delimiters, then
// dedents continuation lines the way the runtime presents docstrings.
func cleanPythonString(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimLeft(raw, "rRbBuUfF")
	for _, quote := range []string{`"""`, "'''", `"`, "'"} {
		if strings.HasPrefix(raw, quote) && strings.HasSuffix(raw, quote) && len(raw) >= 2*len(quote) {
			raw = raw[len(quote) : len(raw)-len(quote)]
			break
		}
	}
	return dedent(raw)
}

// dedent removes the common leading whitespace of every line after the
// first, preserving relative indentation inside structured blocks.
func dedent(text string) string {
	lines := strings.Split(text, "\n")
	indent := -1
	for _, line := range lines[1:] {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		if width := len(line) - len(trimmed); indent == -1 || width < indent {
			indent = width
		}
	}
	if indent > 0 {
		for i, line := range lines[1:] {
			if len(line) >= indent {
				lines[i+1] = line[indent:]
			} else {
				lines[i+1] = strings.TrimLeft(line, " \t")
			}
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
