package languages

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/skel-tools/skel/internal/skeleton"
)

// jstsExtractor handles JavaScript and TypeScript with one implementation
// parameterized by grammar; the two languages share their declaration
// shapes and the JSDoc convention.
type jstsExtractor struct {
	*treeSitterExtractor
}

// NewJavaScript creates the JavaScript extractor (also used for .jsx).
func NewJavaScript() (Extractor, error) {
	base, err := newTreeSitterExtractor(sitter.NewLanguage(javascript.Language()), "JavaScript")
	if err != nil {
		return nil, err
	}
	return &jstsExtractor{treeSitterExtractor: base}, nil
}

// NewTypeScript creates the TypeScript extractor (also used for .tsx).
func NewTypeScript() (Extractor, error) {
	base, err := newTreeSitterExtractor(sitter.NewLanguage(typescript.LanguageTypescript()), "TypeScript")
	if err != nil {
		return nil, err
	}
	return &jstsExtractor{treeSitterExtractor: base}, nil
}

var jsDoc = docStyle{
	commentKinds: map[string]bool{"comment": true},
	transparent:  map[string]bool{"hash_bang_line": true, "decorator": true},
	isDoc: func(text string) bool {
		return strings.HasPrefix(strings.TrimSpace(text), "/**")
	},
	clean: cleanBlockComment,
}

func (e *jstsExtractor) Extract(fileName, content string) (*skeleton.CodeSkeleton, error) {
	source := []byte(content)
	tree, err := e.parse(fileName, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	sk := e.newSkeleton(fileName)
	sk.ModuleDoc = moduleDocFromLeading(root, source, jsDoc)

	siblings := childNodes(root)
	for i, child := range siblings {
		node := child
		if node.Kind() == "export_statement" {
			if decl := node.ChildByFieldName("declaration"); decl != nil {
				node = decl
			}
		}

		switch node.Kind() {
		case "import_statement":
			if src := node.ChildByFieldName("source"); src != nil {
				sk.AddImport(strings.Trim(nodeText(src, source), "\"'`"))
			}
		case "class_declaration":
			doc := precedingDoc(siblings, i, source, jsDoc)
			sk.Classes = append(sk.Classes, e.extractClass(node, source, doc))
		case "interface_declaration":
			doc := precedingDoc(siblings, i, source, jsDoc)
			sk.Classes = append(sk.Classes, e.extractInterface(node, source, doc))
		case "function_declaration", "generator_function_declaration":
			doc := precedingDoc(siblings, i, source, jsDoc)
			sk.Functions = append(sk.Functions, e.extractFunction(node, source, doc))
		case "lexical_declaration", "variable_declaration":
			doc := precedingDoc(siblings, i, source, jsDoc)
			e.extractDeclaredFunctions(node, source, doc, sk)
		}
	}

	return sk, nil
}

func (e *jstsExtractor) extractClass(node *sitter.Node, source []byte, doc string) skeleton.ClassSkeleton {
	cls := skeleton.ClassSkeleton{
		Name:      fieldText(node, "name", source),
		Bases:     e.classBases(node, source),
		Docstring: doc,
	}

	if body := node.ChildByFieldName("body"); body != nil {
		members := childNodes(body)
		for i, member := range members {
			if member.Kind() != "method_definition" {
				continue
			}
			methodDoc := precedingDoc(members, i, source, jsDoc)
			cls.Methods = append(cls.Methods, skeleton.FunctionSig{
				Name:       fieldText(member, "name", source),
				Params:     stripParens(fieldText(member, "parameters", source)),
				ReturnType: stripTypeAnnotation(fieldText(member, "return_type", source)),
				Docstring:  methodDoc,
			})
		}
	}

	return cls
}

// extractInterface handles TypeScript interface declarations; their method
// signatures become the skeleton's methods.
func (e *jstsExtractor) extractInterface(node *sitter.Node, source []byte, doc string) skeleton.ClassSkeleton {
	cls := skeleton.ClassSkeleton{
		Name:      fieldText(node, "name", source),
		Docstring: doc,
	}
	if extends := findChildByType(node, "extends_type_clause"); extends != nil {
		for _, base := range childNodes(extends) {
			if base.IsNamed() {
				cls.Bases = append(cls.Bases, nodeText(base, source))
			}
		}
	}

	if body := node.ChildByFieldName("body"); body != nil {
		members := childNodes(body)
		for i, member := range members {
			if member.Kind() != "method_signature" {
				continue
			}
			methodDoc := precedingDoc(members, i, source, jsDoc)
			cls.Methods = append(cls.Methods, skeleton.FunctionSig{
				Name:       fieldText(member, "name", source),
				Params:     stripParens(fieldText(member, "parameters", source)),
				ReturnType: stripTypeAnnotation(fieldText(member, "return_type", source)),
				Docstring:  methodDoc,
			})
		}
	}

	return cls
}

// classBases reads the extends/implements lists from a class_heritage node.
// JavaScript exposes the extended expression directly; TypeScript nests it
// inside extends_clause/implements_clause.
func (e *jstsExtractor) classBases(node *sitter.Node, source []byte) []string {
	heritage := findChildByType(node, "class_heritage")
	if heritage == nil {
		return nil
	}

	var bases []string
	for _, child := range childNodes(heritage) {
		switch child.Kind() {
		case "extends_clause", "implements_clause":
			for _, base := range childNodes(child) {
				if !base.IsNamed() || base.Kind() == "type_arguments" {
					continue
				}
				if base.Kind() == "generic_type" {
					// drop the type arguments, keep the bare name
					bases = append(bases, fieldText(base, "name", source))
					continue
				}
				bases = append(bases, nodeText(base, source))
			}
		default:
			if child.IsNamed() {
				bases = append(bases, nodeText(child, source))
			}
		}
	}
	return bases
}

func (e *jstsExtractor) extractFunction(node *sitter.Node, source []byte, doc string) skeleton.FunctionSig {
	return skeleton.FunctionSig{
		Name:       fieldText(node, "name", source),
		Params:     stripParens(fieldText(node, "parameters", source)),
		ReturnType: stripTypeAnnotation(fieldText(node, "return_type", source)),
		Docstring:  doc,
	}
}

// extractDeclaredFunctions pulls function-valued const/let/var declarators
// (arrow functions and function expressions) into the functions list.
func (e *jstsExtractor) extractDeclaredFunctions(node *sitter.Node, source []byte, doc string, sk *skeleton.CodeSkeleton) {
	for _, declarator := range findChildrenByType(node, "variable_declarator") {
		value := declarator.ChildByFieldName("value")
		if value == nil {
			continue
		}
		switch value.Kind() {
		case "arrow_function", "function_expression", "function", "generator_function":
		default:
			continue
		}

		params := stripParens(fieldText(value, "parameters", source))
		if params == "" {
			// single-parameter arrow without parentheses
			params = fieldText(value, "parameter", source)
		}
		sk.Functions = append(sk.Functions, skeleton.FunctionSig{
			Name:       fieldText(declarator, "name", source),
			Params:     params,
			ReturnType: stripTypeAnnotation(fieldText(value, "return_type", source)),
			Docstring:  doc,
		})
	}
}

// stripTypeAnnotation drops the leading ":" a type_annotation node carries.
func stripTypeAnnotation(text string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), ":"))
}
