// Package languages contains the per-language skeleton extractors. Each
// extractor parses one file with its tree-sitter grammar and walks the
// concrete syntax tree into a skeleton.CodeSkeleton. Extractors may return
// errors on malformed input; converting those into graceful degradation is
// the dispatcher's job, not theirs.
package languages

import (
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/skel-tools/skel/internal/skeleton"
)

// Extractor is the single capability all language variants implement.
type Extractor interface {
	Extract(fileName, content string) (*skeleton.CodeSkeleton, error)
}

// treeSitterExtractor provides common tree-sitter parsing functionality.
type treeSitterExtractor struct {
	language *sitter.Language
	display  string
}

// newTreeSitterExtractor creates the shared base for a language. It fails
// when the grammar binding is unavailable or ABI-incompatible with the
// runtime library.
func newTreeSitterExtractor(language *sitter.Language, display string) (*treeSitterExtractor, error) {
	if language == nil {
		return nil, fmt.Errorf("%s grammar unavailable", display)
	}
	return &treeSitterExtractor{language: language, display: display}, nil
}

// parse parses source into a tree. The caller owns the returned tree and
// must Close it.
func (e *treeSitterExtractor) parse(fileName string, source []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(e.language); err != nil {
		return nil, fmt.Errorf("set %s grammar: %w", e.display, err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse %s file: %s", e.display, fileName)
	}
	return tree, nil
}

// newSkeleton creates an empty skeleton carrying this language's display name.
func (e *treeSitterExtractor) newSkeleton(fileName string) *skeleton.CodeSkeleton {
	return &skeleton.CodeSkeleton{
		FileName: fileName,
		Language: e.display,
	}
}

// nodeText extracts the text content of a tree-sitter node.
func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// childNodes returns the direct children of node in order.
func childNodes(node *sitter.Node) []*sitter.Node {
	if node == nil {
		return nil
	}
	count := int(node.ChildCount())
	children := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		children = append(children, node.Child(uint(i)))
	}
	return children
}

// findChildByType finds the first child node with the given type.
func findChildByType(node *sitter.Node, nodeType string) *sitter.Node {
	for _, child := range childNodes(node) {
		if child.Kind() == nodeType {
			return child
		}
	}
	return nil
}

// findChildrenByType finds all child nodes with the given type.
func findChildrenByType(node *sitter.Node, nodeType string) []*sitter.Node {
	var results []*sitter.Node
	for _, child := range childNodes(node) {
		if child.Kind() == nodeType {
			results = append(results, child)
		}
	}
	return results
}

// fieldText returns the text of a named field child, or "".
func fieldText(node *sitter.Node, field string, source []byte) string {
	if node == nil {
		return ""
	}
	return nodeText(node.ChildByFieldName(field), source)
}

// stripParens removes one outer pair of parentheses from raw parameter-list
// text, preserving everything between them verbatim.
func stripParens(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "(") && strings.HasSuffix(raw, ")") {
		raw = raw[1 : len(raw)-1]
	}
	return strings.TrimSpace(raw)
}
