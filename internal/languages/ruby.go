package languages

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	ruby "github.com/tree-sitter/tree-sitter-ruby/bindings/go"

	"github.com/skel-tools/skel/internal/skeleton"
)

// rubyExtractor extracts skeletons from Ruby files. require/require_relative
// calls count as imports; # comment runs are the documentation form.
type rubyExtractor struct {
	*treeSitterExtractor
}

// NewRuby creates the Ruby extractor.
func NewRuby() (Extractor, error) {
	base, err := newTreeSitterExtractor(sitter.NewLanguage(ruby.Language()), "Ruby")
	if err != nil {
		return nil, err
	}
	return &rubyExtractor{treeSitterExtractor: base}, nil
}

var rubyDoc = docStyle{
	commentKinds: map[string]bool{"comment": true},
	transparent:  map[string]bool{},
	isDoc: func(text string) bool {
		return strings.HasPrefix(strings.TrimSpace(text), "#")
	},
	clean: func(text string) string {
		return stripMarker(text, "#")
	},
}

func (e *rubyExtractor) Extract(fileName, content string) (*skeleton.CodeSkeleton, error) {
	source := []byte(content)
	tree, err := e.parse(fileName, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	sk := e.newSkeleton(fileName)
	sk.ModuleDoc = moduleDocFromLeading(root, source, rubyDoc)

	e.extractScope(childNodes(root), source, sk)
	return sk, nil
}

func (e *rubyExtractor) extractScope(siblings []*sitter.Node, source []byte, sk *skeleton.CodeSkeleton) {
	for i, child := range siblings {
		switch child.Kind() {
		case "call":
			e.extractRequire(child, source, sk)
		case "class", "module":
			doc := precedingDoc(siblings, i, source, rubyDoc)
			sk.Classes = append(sk.Classes, e.extractClass(child, source, doc))
		case "method":
			doc := precedingDoc(siblings, i, source, rubyDoc)
			sig := e.extractMethod(child, source)
			sig.Docstring = doc
			sk.Functions = append(sk.Functions, sig)
		}
	}
}

// extractRequire records the argument of require/require_relative calls.
func (e *rubyExtractor) extractRequire(node *sitter.Node, source []byte, sk *skeleton.CodeSkeleton) {
	method := fieldText(node, "method", source)
	if method != "require" && method != "require_relative" {
		return
	}
	args := node.ChildByFieldName("arguments")
	if args == nil {
		return
	}
	if str := findChildByType(args, "string"); str != nil {
		sk.AddImport(strings.Trim(nodeText(str, source), "\"'"))
	}
}

func (e *rubyExtractor) extractClass(node *sitter.Node, source []byte, doc string) skeleton.ClassSkeleton {
	cls := skeleton.ClassSkeleton{
		Name:      fieldText(node, "name", source),
		Docstring: doc,
	}

	if superclass := node.ChildByFieldName("superclass"); superclass != nil {
		if base := firstNamedChild(superclass); base != nil {
			cls.Bases = append(cls.Bases, nodeText(base, source))
		}
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		body = findChildByType(node, "body_statement")
	}
	if body != nil {
		members := childNodes(body)
		for i, member := range members {
			if member.Kind() != "method" {
				continue
			}
			sig := e.extractMethod(member, source)
			sig.Docstring = precedingDoc(members, i, source, rubyDoc)
			cls.Methods = append(cls.Methods, sig)
		}
	}

	return cls
}

func (e *rubyExtractor) extractMethod(node *sitter.Node, source []byte) skeleton.FunctionSig {
	return skeleton.FunctionSig{
		Name:   fieldText(node, "name", source),
		Params: stripParens(fieldText(node, "parameters", source)),
	}
}
