// Package skeleton holds the structural summary of a parsed source file:
// imports, class-like declarations, function signatures, and their
// documentation. Values are built once by a language extractor and are not
// mutated afterwards.
package skeleton

// FunctionSig describes a single function, method, or property accessor.
type FunctionSig struct {
	// Name is the declared identifier.
	Name string
	// Params is the raw parameter-list text with the outer parentheses
	// stripped. Language-native syntax is preserved verbatim, including
	// embedded newlines; the renderer compacts those.
	Params string
	// ReturnType is the declared return type, or "" when absent/inferred.
	ReturnType string
	// Docstring is the associated documentation with comment markers
	// stripped. May span multiple lines; "" when none.
	Docstring string
}

// ClassSkeleton describes a class, interface, struct, record, trait, or a
// language-specific equivalent (a Rust impl block appears as a class named
// "impl <Type>").
type ClassSkeleton struct {
	Name string
	// Bases are the parent types in declaration order, empty if none.
	Bases     []string
	Docstring string
	// Methods preserve declaration order.
	Methods []FunctionSig
}

// CodeSkeleton is the full structural summary of one file.
type CodeSkeleton struct {
	// FileName is echoed from the caller; it is never validated against a
	// filesystem.
	FileName string
	// Language is the human-readable display name, e.g. "Python" or "C/C++".
	Language string
	// ModuleDoc is the file/module-level documentation, "" when none.
	ModuleDoc string
	// Imports are the import/using/include targets in first-occurrence
	// order, deduplicated by exact string equality.
	Imports []string
	// Classes preserve declaration order. Namespace-nested classes are
	// flattened to the top level.
	Classes []ClassSkeleton
	// Functions are the top-level functions (and, for Go, methods) in
	// declaration order.
	Functions []FunctionSig
}

// AddImport appends imp unless an identical string is already present.
func (s *CodeSkeleton) AddImport(imp string) {
	if imp == "" {
		return
	}
	for _, existing := range s.Imports {
		if existing == imp {
			return
		}
	}
	s.Imports = append(s.Imports, imp)
}
