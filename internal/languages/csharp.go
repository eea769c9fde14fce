package languages

import (
	"regexp"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	csharp "github.com/tree-sitter/tree-sitter-c-sharp/bindings/go"

	"github.com/skel-tools/skel/internal/skeleton"
)

// csharpExtractor extracts skeletons from C# files. XML doc comments are
// reduced to their text content; classes declared inside (file-scoped or
// braced) namespaces are flattened to top level.
type csharpExtractor struct {
	*treeSitterExtractor
}

// NewCSharp creates the C# extractor.
func NewCSharp() (Extractor, error) {
	base, err := newTreeSitterExtractor(sitter.NewLanguage(csharp.Language()), "C#")
	if err != nil {
		return nil, err
	}
	return &csharpExtractor{treeSitterExtractor: base}, nil
}

var xmlTagPattern = regexp.MustCompile(`</?[a-zA-Z][a-zA-Z0-9]*(\s+[^>]*)?/?>`)

var csharpDoc = docStyle{
	commentKinds: map[string]bool{"comment": true},
	transparent: map[string]bool{
		"preproc_if":        true,
		"preproc_else":      true,
		"preproc_region":    true,
		"preproc_endregion": true,
		"preproc_nullable":  true,
		"preproc_pragma":    true,
	},
	isDoc: func(text string) bool {
		text = strings.TrimSpace(text)
		return strings.HasPrefix(text, "///") || strings.HasPrefix(text, "/**")
	},
	clean: cleanXMLDoc,
}

// cleanXMLDoc strips /// or /** */ markers, removes XML tags keeping their
// text content, and collapses whitespace runs within each comment node.
func cleanXMLDoc(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "///") {
		var cleaned []string
		for _, line := range strings.Split(text, "\n") {
			if line = stripMarker(line, "///"); line != "" {
				cleaned = append(cleaned, line)
			}
		}
		text = strings.Join(cleaned, " ")
	} else if strings.HasPrefix(text, "/*") {
		text = cleanBlockComment(text)
	}
	text = xmlTagPattern.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}

func (e *csharpExtractor) Extract(fileName, content string) (*skeleton.CodeSkeleton, error) {
	source := []byte(content)
	tree, err := e.parse(fileName, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	sk := e.newSkeleton(fileName)
	sk.ModuleDoc = moduleDocFromLeading(root, source, csharpDoc)

	e.extractScope(childNodes(root), source, sk)
	return sk, nil
}

// extractScope walks a declaration scope, descending into namespaces so
// their classes surface at the top level.
func (e *csharpExtractor) extractScope(siblings []*sitter.Node, source []byte, sk *skeleton.CodeSkeleton) {
	for i, child := range siblings {
		switch child.Kind() {
		case "using_directive":
			for _, sub := range childNodes(child) {
				switch sub.Kind() {
				case "identifier", "qualified_name":
					sk.AddImport(nodeText(sub, source))
				}
			}
		case "namespace_declaration", "file_scoped_namespace_declaration":
			if body := findChildByType(child, "declaration_list"); body != nil {
				e.extractScope(childNodes(body), source, sk)
			} else {
				e.extractScope(childNodes(child), source, sk)
			}
		case "class_declaration", "interface_declaration", "struct_declaration", "record_declaration":
			doc := precedingDoc(siblings, i, source, csharpDoc)
			sk.Classes = append(sk.Classes, e.extractClass(child, source, doc))
		}
	}
}

func (e *csharpExtractor) extractClass(node *sitter.Node, source []byte, doc string) skeleton.ClassSkeleton {
	cls := skeleton.ClassSkeleton{
		Name:      e.declarationName(node, source),
		Docstring: doc,
	}

	if baseList := findChildByType(node, "base_list"); baseList != nil {
		for _, base := range childNodes(baseList) {
			switch base.Kind() {
			case "identifier", "qualified_name", "generic_name":
				cls.Bases = append(cls.Bases, nodeText(base, source))
			}
		}
	}

	body := findChildByType(node, "declaration_list")
	if body == nil {
		return cls
	}
	members := childNodes(body)
	for i, member := range members {
		switch member.Kind() {
		case "method_declaration", "constructor_declaration":
			memberDoc := precedingDoc(members, i, source, csharpDoc)
			cls.Methods = append(cls.Methods, e.extractMethod(member, source, memberDoc))
		case "property_declaration":
			memberDoc := precedingDoc(members, i, source, csharpDoc)
			cls.Methods = append(cls.Methods, e.extractProperty(member, source, memberDoc))
		}
	}

	return cls
}

// declarationName prefers the grammar's name field and falls back to the
// first plain identifier child.
func (e *csharpExtractor) declarationName(node *sitter.Node, source []byte) string {
	if name := fieldText(node, "name", source); name != "" {
		return name
	}
	return nodeText(findChildByType(node, "identifier"), source)
}

func (e *csharpExtractor) extractMethod(node *sitter.Node, source []byte, doc string) skeleton.FunctionSig {
	returnType := fieldText(node, "returns", source)
	if returnType == "" {
		returnType = fieldText(node, "type", source)
	}

	params := fieldText(node, "parameters", source)
	if params == "" {
		params = nodeText(findChildByType(node, "parameter_list"), source)
	}

	return skeleton.FunctionSig{
		Name:       e.declarationName(node, source),
		Params:     stripParens(params),
		ReturnType: returnType,
		Docstring:  doc,
	}
}

// extractProperty renders a property as a FunctionSig whose params field
// describes the available accessors, e.g. "{ get set }".
func (e *csharpExtractor) extractProperty(node *sitter.Node, source []byte, doc string) skeleton.FunctionSig {
	var accessors []string
	if list := findChildByType(node, "accessor_list"); list != nil {
		for _, accessor := range findChildrenByType(list, "accessor_declaration") {
			name := fieldText(accessor, "name", source)
			if name == "" {
				for _, sub := range childNodes(accessor) {
					if k := sub.Kind(); k == "get" || k == "set" || k == "init" {
						name = k
						break
					}
				}
			}
			switch name {
			case "get", "set", "init":
				accessors = append(accessors, name)
			}
		}
	}

	params := ""
	if len(accessors) > 0 {
		params = "{ " + strings.Join(accessors, " ") + " }"
	}

	return skeleton.FunctionSig{
		Name:       e.declarationName(node, source),
		Params:     params,
		ReturnType: fieldText(node, "type", source),
		Docstring:  doc,
	}
}
