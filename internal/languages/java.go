package languages

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	java "github.com/tree-sitter/tree-sitter-java/bindings/go"

	"github.com/skel-tools/skel/internal/skeleton"
)

// javaExtractor extracts skeletons from Java files.
type javaExtractor struct {
	*treeSitterExtractor
}

// NewJava creates the Java extractor.
func NewJava() (Extractor, error) {
	base, err := newTreeSitterExtractor(sitter.NewLanguage(java.Language()), "Java")
	if err != nil {
		return nil, err
	}
	return &javaExtractor{treeSitterExtractor: base}, nil
}

var javaDoc = docStyle{
	commentKinds: map[string]bool{"block_comment": true, "line_comment": true},
	transparent:  map[string]bool{},
	isDoc: func(text string) bool {
		text = strings.TrimSpace(text)
		return strings.HasPrefix(text, "/**") || strings.HasPrefix(text, "//")
	},
	clean: func(text string) string {
		return cleanLineOrBlock(text, "///", "//")
	},
}

func (e *javaExtractor) Extract(fileName, content string) (*skeleton.CodeSkeleton, error) {
	source := []byte(content)
	tree, err := e.parse(fileName, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	sk := e.newSkeleton(fileName)
	sk.ModuleDoc = moduleDocFromLeading(root, source, javaDoc)

	siblings := childNodes(root)
	for i, child := range siblings {
		switch child.Kind() {
		case "import_declaration":
			e.extractImport(child, source, sk)
		case "class_declaration", "interface_declaration", "enum_declaration", "record_declaration":
			doc := precedingDoc(siblings, i, source, javaDoc)
			sk.Classes = append(sk.Classes, e.extractClass(child, source, doc))
		}
	}

	return sk, nil
}

func (e *javaExtractor) extractImport(node *sitter.Node, source []byte, sk *skeleton.CodeSkeleton) {
	target := ""
	for _, child := range childNodes(node) {
		switch child.Kind() {
		case "scoped_identifier", "identifier":
			target = nodeText(child, source)
		case "asterisk":
			if target != "" {
				target += ".*"
			}
		}
	}
	sk.AddImport(target)
}

func (e *javaExtractor) extractClass(node *sitter.Node, source []byte, doc string) skeleton.ClassSkeleton {
	cls := skeleton.ClassSkeleton{
		Name:      fieldText(node, "name", source),
		Docstring: doc,
	}

	// "extends X" for classes, "extends A, B" for interfaces
	if superclass := findChildByType(node, "superclass"); superclass != nil {
		for _, base := range childNodes(superclass) {
			if base.IsNamed() {
				cls.Bases = append(cls.Bases, nodeText(base, source))
			}
		}
	}
	for _, clause := range []string{"super_interfaces", "extends_interfaces"} {
		interfaces := findChildByType(node, clause)
		if interfaces == nil {
			continue
		}
		if list := findChildByType(interfaces, "type_list"); list != nil {
			for _, base := range childNodes(list) {
				if base.IsNamed() {
					cls.Bases = append(cls.Bases, nodeText(base, source))
				}
			}
		}
	}

	body := node.ChildByFieldName("body")
	if body != nil && body.Kind() == "enum_body" {
		body = findChildByType(body, "enum_body_declarations")
	}
	if body != nil {
		members := childNodes(body)
		for i, member := range members {
			switch member.Kind() {
			case "method_declaration", "constructor_declaration":
				methodDoc := precedingDoc(members, i, source, javaDoc)
				cls.Methods = append(cls.Methods, e.extractMethod(member, source, methodDoc))
			}
		}
	}

	return cls
}

func (e *javaExtractor) extractMethod(node *sitter.Node, source []byte, doc string) skeleton.FunctionSig {
	return skeleton.FunctionSig{
		Name:       fieldText(node, "name", source),
		Params:     stripParens(fieldText(node, "parameters", source)),
		ReturnType: fieldText(node, "type", source),
		Docstring:  doc,
	}
}
