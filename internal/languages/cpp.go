package languages

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"

	"github.com/skel-tools/skel/internal/skeleton"
)

// cppExtractor handles C and C++ with one implementation on the C++
// grammar. A .h header may hold either language, and the C++ grammar
// parses plain C declarations as well; the display name is "C/C++" for
// every extension.
type cppExtractor struct {
	*treeSitterExtractor
}

// NewCpp creates the C/C++ extractor.
func NewCpp() (Extractor, error) {
	base, err := newTreeSitterExtractor(sitter.NewLanguage(cpp.Language()), "C/C++")
	if err != nil {
		return nil, err
	}
	return &cppExtractor{treeSitterExtractor: base}, nil
}

var cppDocStyle = docStyle{
	commentKinds: map[string]bool{"comment": true},
	transparent: map[string]bool{
		"access_specifier": true,
		"preproc_call":     true,
		"preproc_def":      true,
		"preproc_ifdef":    true,
		"preproc_if":       true,
		"preproc_else":     true,
		"attribute_declaration": true,
	},
	isDoc: func(text string) bool {
		text = strings.TrimSpace(text)
		return strings.HasPrefix(text, "/*") || strings.HasPrefix(text, "//")
	},
	clean: func(text string) string {
		return cleanLineOrBlock(text, "///", "//!", "//")
	},
}

func (e *cppExtractor) Extract(fileName, content string) (*skeleton.CodeSkeleton, error) {
	source := []byte(content)
	tree, err := e.parse(fileName, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	sk := e.newSkeleton(fileName)
	sk.ModuleDoc = moduleDocFromLeading(root, source, cppDocStyle)

	e.extractScope(childNodes(root), source, sk)
	return sk, nil
}

// extractScope walks one declaration scope (the translation unit or a
// namespace body, which is flattened to top level).
func (e *cppExtractor) extractScope(siblings []*sitter.Node, source []byte, sk *skeleton.CodeSkeleton) {
	for i, child := range siblings {
		node := child
		if node.Kind() == "template_declaration" {
			if inner := templateInner(node); inner != nil {
				node = inner
			}
		}

		switch node.Kind() {
		case "preproc_include":
			sk.AddImport(includeTarget(node, source))
		case "namespace_definition", "linkage_specification":
			if body := node.ChildByFieldName("body"); body != nil {
				e.extractScope(childNodes(body), source, sk)
			}
		case "class_specifier", "struct_specifier", "union_specifier":
			if node.ChildByFieldName("body") != nil {
				doc := precedingDoc(siblings, i, source, cppDocStyle)
				sk.Classes = append(sk.Classes, e.extractClass(node, source, doc))
			}
		case "function_definition":
			if sig, ok := e.functionSig(node, source); ok {
				sig.Docstring = precedingDoc(siblings, i, source, cppDocStyle)
				sk.Functions = append(sk.Functions, sig)
			}
		case "declaration", "type_definition":
			doc := precedingDoc(siblings, i, source, cppDocStyle)
			e.extractDeclaration(node, source, doc, sk)
		}
	}
}

// extractDeclaration handles top-level declarations: typedef'd or plain
// struct/class definitions, and function prototypes as found in headers.
func (e *cppExtractor) extractDeclaration(node *sitter.Node, source []byte, doc string, sk *skeleton.CodeSkeleton) {
	for _, kind := range []string{"class_specifier", "struct_specifier", "union_specifier"} {
		spec := findChildByType(node, kind)
		if spec == nil || spec.ChildByFieldName("body") == nil {
			continue
		}
		cls := e.extractClass(spec, source, doc)
		if cls.Name == "" {
			// anonymous "typedef struct { ... } Name;"
			cls.Name = fieldText(node, "declarator", source)
		}
		if cls.Name != "" {
			sk.Classes = append(sk.Classes, cls)
		}
		return
	}

	if sig, ok := e.functionSig(node, source); ok {
		sig.Docstring = doc
		sk.Functions = append(sk.Functions, sig)
	}
}

func (e *cppExtractor) extractClass(node *sitter.Node, source []byte, doc string) skeleton.ClassSkeleton {
	cls := skeleton.ClassSkeleton{
		Name:      fieldText(node, "name", source),
		Docstring: doc,
	}

	if baseClause := findChildByType(node, "base_class_clause"); baseClause != nil {
		for _, base := range childNodes(baseClause) {
			switch base.Kind() {
			case "type_identifier", "qualified_identifier", "template_type":
				cls.Bases = append(cls.Bases, nodeText(base, source))
			}
		}
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return cls
	}
	members := childNodes(body)
	for i, member := range members {
		inner := member
		if inner.Kind() == "template_declaration" {
			if t := templateInner(inner); t != nil {
				inner = t
			}
		}
		switch inner.Kind() {
		case "function_definition", "field_declaration", "declaration":
			if sig, ok := e.functionSig(inner, source); ok {
				sig.Docstring = precedingDoc(members, i, source, cppDocStyle)
				cls.Methods = append(cls.Methods, sig)
			}
		}
	}

	return cls
}

// functionSig digs through pointer/reference declarators to the function
// declarator, if the node has one. Non-function declarations report !ok.
func (e *cppExtractor) functionSig(node *sitter.Node, source []byte) (skeleton.FunctionSig, bool) {
	returnType := fieldText(node, "type", source)
	decl := node.ChildByFieldName("declarator")

	for decl != nil {
		switch decl.Kind() {
		case "pointer_declarator":
			returnType += "*"
			decl = decl.ChildByFieldName("declarator")
		case "reference_declarator":
			returnType += "&"
			decl = firstNamedChild(decl)
		case "function_declarator":
			name := fieldText(decl, "declarator", source)
			if name == "" {
				return skeleton.FunctionSig{}, false
			}
			return skeleton.FunctionSig{
				Name:       name,
				Params:     stripParens(fieldText(decl, "parameters", source)),
				ReturnType: returnType,
			}, true
		default:
			return skeleton.FunctionSig{}, false
		}
	}
	return skeleton.FunctionSig{}, false
}

// includeTarget strips the <> or "" delimiters from an include path.
func includeTarget(node *sitter.Node, source []byte) string {
	path := strings.TrimSpace(fieldText(node, "path", source))
	return strings.Trim(path, `<>"`)
}

// templateInner returns the declaration a template wraps.
func templateInner(node *sitter.Node) *sitter.Node {
	for _, kind := range []string{"class_specifier", "struct_specifier", "function_definition", "declaration"} {
		if inner := findChildByType(node, kind); inner != nil {
			return inner
		}
	}
	return nil
}

// firstNamedChild returns the first named child of node, or nil.
func firstNamedChild(node *sitter.Node) *sitter.Node {
	for _, child := range childNodes(node) {
		if child.IsNamed() {
			return child
		}
	}
	return nil
}
