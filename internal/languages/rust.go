package languages

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"

	"github.com/skel-tools/skel/internal/skeleton"
)

// rustExtractor extracts skeletons from Rust files. A struct and its impl
// blocks stay separate: "struct Store" carries the type docs and no
// methods, "impl Store" carries the functions declared in that block.
type rustExtractor struct {
	*treeSitterExtractor
}

// NewRust creates the Rust extractor.
func NewRust() (Extractor, error) {
	base, err := newTreeSitterExtractor(sitter.NewLanguage(rust.Language()), "Rust")
	if err != nil {
		return nil, err
	}
	return &rustExtractor{treeSitterExtractor: base}, nil
}

var rustDoc = docStyle{
	commentKinds: map[string]bool{"line_comment": true, "block_comment": true},
	transparent:  map[string]bool{"attribute_item": true, "inner_attribute_item": true},
	isDoc: func(text string) bool {
		text = strings.TrimSpace(text)
		return strings.HasPrefix(text, "///") || strings.HasPrefix(text, "/**")
	},
	clean: func(text string) string {
		return cleanLineOrBlock(text, "///")
	},
}

func (e *rustExtractor) Extract(fileName, content string) (*skeleton.CodeSkeleton, error) {
	source := []byte(content)
	tree, err := e.parse(fileName, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	sk := e.newSkeleton(fileName)
	sk.ModuleDoc = e.innerDoc(root, source)

	siblings := childNodes(root)
	for i, child := range siblings {
		switch child.Kind() {
		case "use_declaration":
			sk.AddImport(fieldText(child, "argument", source))
		case "struct_item", "enum_item", "union_item":
			doc := precedingDoc(siblings, i, source, rustDoc)
			sk.Classes = append(sk.Classes, skeleton.ClassSkeleton{
				Name:      fieldText(child, "name", source),
				Docstring: doc,
			})
		case "trait_item":
			doc := precedingDoc(siblings, i, source, rustDoc)
			cls := skeleton.ClassSkeleton{
				Name:      fieldText(child, "name", source),
				Docstring: doc,
			}
			e.extractBodyFunctions(child, source, &cls)
			sk.Classes = append(sk.Classes, cls)
		case "impl_item":
			doc := precedingDoc(siblings, i, source, rustDoc)
			cls := skeleton.ClassSkeleton{
				Name:      e.implName(child, source),
				Docstring: doc,
			}
			e.extractBodyFunctions(child, source, &cls)
			sk.Classes = append(sk.Classes, cls)
		case "function_item":
			doc := precedingDoc(siblings, i, source, rustDoc)
			sig := e.extractFunction(child, source)
			sig.Docstring = doc
			sk.Functions = append(sk.Functions, sig)
		}
	}

	return sk, nil
}

// implName renders "impl Type", or "impl Trait for Type" for trait impls.
func (e *rustExtractor) implName(node *sitter.Node, source []byte) string {
	typeName := fieldText(node, "type", source)
	if trait := fieldText(node, "trait", source); trait != "" {
		return "impl " + trait + " for " + typeName
	}
	return "impl " + typeName
}

// extractBodyFunctions collects the functions declared in an impl or trait
// body, doc association included.
func (e *rustExtractor) extractBodyFunctions(node *sitter.Node, source []byte, cls *skeleton.ClassSkeleton) {
	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}
	members := childNodes(body)
	for i, member := range members {
		switch member.Kind() {
		case "function_item", "function_signature_item":
			sig := e.extractFunction(member, source)
			sig.Docstring = precedingDoc(members, i, source, rustDoc)
			cls.Methods = append(cls.Methods, sig)
		}
	}
}

func (e *rustExtractor) extractFunction(node *sitter.Node, source []byte) skeleton.FunctionSig {
	return skeleton.FunctionSig{
		Name:       fieldText(node, "name", source),
		Params:     stripParens(fieldText(node, "parameters", source)),
		ReturnType: fieldText(node, "return_type", source),
	}
}

// innerDoc collects the leading //! run that documents the file itself.
func (e *rustExtractor) innerDoc(root *sitter.Node, source []byte) string {
	var lines []string
	for _, child := range childNodes(root) {
		kind := child.Kind()
		if kind == "inner_attribute_item" {
			continue
		}
		if kind != "line_comment" && kind != "block_comment" {
			break
		}
		text := strings.TrimSpace(nodeText(child, source))
		switch {
		case strings.HasPrefix(text, "//!"):
			lines = append(lines, stripMarker(text, "//!"))
		case strings.HasPrefix(text, "/*!"):
			lines = append(lines, cleanBlockComment(strings.TrimPrefix(text, "/*!")))
		default:
			// outer docs here belong to the first item
			return strings.TrimSpace(strings.Join(lines, "\n"))
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
