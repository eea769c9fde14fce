package languages

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	golang "github.com/tree-sitter/tree-sitter-go/bindings/go"

	"github.com/skel-tools/skel/internal/skeleton"
)

// goExtractor extracts skeletons from Go files. Free functions and methods
// both go into the top-level functions list (a method's receiver is dropped
// from the params); struct and interface type declarations become classes.
type goExtractor struct {
	*treeSitterExtractor
}

// NewGo creates the Go extractor.
func NewGo() (Extractor, error) {
	base, err := newTreeSitterExtractor(sitter.NewLanguage(golang.Language()), "Go")
	if err != nil {
		return nil, err
	}
	return &goExtractor{treeSitterExtractor: base}, nil
}

var goDoc = docStyle{
	commentKinds: map[string]bool{"comment": true},
	transparent:  map[string]bool{},
	isDoc: func(text string) bool {
		text = strings.TrimSpace(text)
		return strings.HasPrefix(text, "//") || strings.HasPrefix(text, "/*")
	},
	clean: func(text string) string {
		return cleanLineOrBlock(text, "//")
	},
}

func (e *goExtractor) Extract(fileName, content string) (*skeleton.CodeSkeleton, error) {
	source := []byte(content)
	tree, err := e.parse(fileName, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	sk := e.newSkeleton(fileName)

	siblings := childNodes(root)
	for i, child := range siblings {
		switch child.Kind() {
		case "package_clause":
			// the doc block above the package clause is the file's doc
			sk.ModuleDoc = precedingDoc(siblings, i, source, goDoc)
		case "import_declaration":
			e.extractImports(child, source, sk)
		case "type_declaration":
			doc := precedingDoc(siblings, i, source, goDoc)
			e.extractTypes(child, source, doc, sk)
		case "function_declaration", "method_declaration":
			doc := precedingDoc(siblings, i, source, goDoc)
			sk.Functions = append(sk.Functions, skeleton.FunctionSig{
				Name:       fieldText(child, "name", source),
				Params:     stripParens(fieldText(child, "parameters", source)),
				ReturnType: fieldText(child, "result", source),
				Docstring:  doc,
			})
		}
	}

	return sk, nil
}

func (e *goExtractor) extractImports(node *sitter.Node, source []byte, sk *skeleton.CodeSkeleton) {
	specs := findChildrenByType(node, "import_spec")
	if list := findChildByType(node, "import_spec_list"); list != nil {
		specs = append(specs, findChildrenByType(list, "import_spec")...)
	}
	for _, spec := range specs {
		path := strings.Trim(fieldText(spec, "path", source), "\"`")
		sk.AddImport(path)
	}
}

// extractTypes walks the specs of a type declaration; struct and interface
// types become classes. A grouped declaration associates doc comments per
// spec inside the parentheses.
func (e *goExtractor) extractTypes(node *sitter.Node, source []byte, declDoc string, sk *skeleton.CodeSkeleton) {
	children := childNodes(node)
	specs := findChildrenByType(node, "type_spec")
	grouped := len(specs) > 1 || findChildByType(node, "(") != nil

	for i, child := range children {
		if child.Kind() != "type_spec" {
			continue
		}
		doc := declDoc
		if grouped {
			doc = precedingDoc(children, i, source, goDoc)
		}

		typeNode := child.ChildByFieldName("type")
		if typeNode == nil {
			continue
		}
		switch typeNode.Kind() {
		case "struct_type":
			sk.Classes = append(sk.Classes, skeleton.ClassSkeleton{
				Name:      fieldText(child, "name", source),
				Docstring: doc,
			})
		case "interface_type":
			cls := skeleton.ClassSkeleton{
				Name:      fieldText(child, "name", source),
				Docstring: doc,
			}
			e.extractInterfaceMethods(typeNode, source, &cls)
			sk.Classes = append(sk.Classes, cls)
		}
	}
}

func (e *goExtractor) extractInterfaceMethods(typeNode *sitter.Node, source []byte, cls *skeleton.ClassSkeleton) {
	members := childNodes(typeNode)
	for i, member := range members {
		switch member.Kind() {
		case "method_elem", "method_spec":
			cls.Methods = append(cls.Methods, skeleton.FunctionSig{
				Name:       fieldText(member, "name", source),
				Params:     stripParens(fieldText(member, "parameters", source)),
				ReturnType: fieldText(member, "result", source),
				Docstring:  precedingDoc(members, i, source, goDoc),
			})
		}
	}
}
