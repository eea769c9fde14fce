package languages

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	php "github.com/tree-sitter/tree-sitter-php/bindings/go"

	"github.com/skel-tools/skel/internal/skeleton"
)

// phpExtractor extracts skeletons from PHP files using phpdoc-style
// comments for documentation.
type phpExtractor struct {
	*treeSitterExtractor
}

// NewPHP creates the PHP extractor.
func NewPHP() (Extractor, error) {
	base, err := newTreeSitterExtractor(sitter.NewLanguage(php.LanguagePHP()), "PHP")
	if err != nil {
		return nil, err
	}
	return &phpExtractor{treeSitterExtractor: base}, nil
}

var phpDoc = docStyle{
	commentKinds: map[string]bool{"comment": true},
	transparent:  map[string]bool{"php_tag": true, "attribute_list": true},
	isDoc: func(text string) bool {
		text = strings.TrimSpace(text)
		return strings.HasPrefix(text, "/**") || strings.HasPrefix(text, "//") || strings.HasPrefix(text, "#")
	},
	clean: func(text string) string {
		if strings.HasPrefix(strings.TrimSpace(text), "#") {
			return stripMarker(text, "#")
		}
		return cleanLineOrBlock(text, "//")
	},
}

func (e *phpExtractor) Extract(fileName, content string) (*skeleton.CodeSkeleton, error) {
	source := []byte(content)
	tree, err := e.parse(fileName, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	sk := e.newSkeleton(fileName)
	sk.ModuleDoc = moduleDocFromLeading(root, source, phpDoc)

	siblings := childNodes(root)
	for i, child := range siblings {
		switch child.Kind() {
		case "namespace_use_declaration":
			for _, clause := range findChildrenByType(child, "namespace_use_clause") {
				if name := firstNamedChild(clause); name != nil {
					sk.AddImport(nodeText(name, source))
				}
			}
		case "class_declaration", "interface_declaration", "trait_declaration":
			doc := precedingDoc(siblings, i, source, phpDoc)
			sk.Classes = append(sk.Classes, e.extractClass(child, source, doc))
		case "function_definition":
			doc := precedingDoc(siblings, i, source, phpDoc)
			sig := e.extractFunction(child, source)
			sig.Docstring = doc
			sk.Functions = append(sk.Functions, sig)
		}
	}

	return sk, nil
}

func (e *phpExtractor) extractClass(node *sitter.Node, source []byte, doc string) skeleton.ClassSkeleton {
	cls := skeleton.ClassSkeleton{
		Name:      fieldText(node, "name", source),
		Docstring: doc,
	}

	for _, clause := range []string{"base_clause", "class_interface_clause"} {
		if list := findChildByType(node, clause); list != nil {
			for _, base := range childNodes(list) {
				if base.IsNamed() {
					cls.Bases = append(cls.Bases, nodeText(base, source))
				}
			}
		}
	}

	if body := node.ChildByFieldName("body"); body != nil {
		members := childNodes(body)
		for i, member := range members {
			if member.Kind() != "method_declaration" {
				continue
			}
			sig := e.extractFunction(member, source)
			sig.Docstring = precedingDoc(members, i, source, phpDoc)
			cls.Methods = append(cls.Methods, sig)
		}
	}

	return cls
}

func (e *phpExtractor) extractFunction(node *sitter.Node, source []byte) skeleton.FunctionSig {
	return skeleton.FunctionSig{
		Name:       fieldText(node, "name", source),
		Params:     stripParens(fieldText(node, "parameters", source)),
		ReturnType: stripTypeAnnotation(fieldText(node, "return_type", source)),
	}
}
