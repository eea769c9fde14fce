// Package extractor is the front door for skeleton extraction: it detects
// the language from a file name, lazily constructs and caches the matching
// language extractor, and absorbs every failure into a graceful "no result"
// so callers can fall back to a more expensive summarizer.
package extractor

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"

	"github.com/skel-tools/skel/internal/languages"
	"github.com/skel-tools/skel/internal/skeleton"
)

// extensionLanguages maps a lowercase file extension to its language key.
// Every C/C++ extension parses with the C++ grammar: a .h header may hold
// C++ declarations, and the C++ grammar handles plain C declarations too,
// while the reverse silently drops classes.
var extensionLanguages = map[string]string{
	".py":   "python",
	".js":   "javascript",
	".jsx":  "javascript",
	".ts":   "typescript",
	".tsx":  "typescript",
	".java": "java",
	".c":    "cpp",
	".h":    "cpp",
	".cpp":  "cpp",
	".cc":   "cpp",
	".hpp":  "cpp",
	".rs":   "rust",
	".go":   "go",
	".cs":   "csharp",
	".php":  "php",
	".rb":   "ruby",
}

// registry maps a language key to its extractor constructor. The language
// set is closed, so plain factory dispatch replaces any dynamic loading.
var registry = map[string]func() (languages.Extractor, error){
	"python":     languages.NewPython,
	"javascript": languages.NewJavaScript,
	"typescript": languages.NewTypeScript,
	"java":       languages.NewJava,
	"cpp":        languages.NewCpp,
	"rust":       languages.NewRust,
	"go":         languages.NewGo,
	"csharp":     languages.NewCSharp,
	"php":        languages.NewPHP,
	"ruby":       languages.NewRuby,
}

// cacheEntry is one tri-state cache slot: a missing map entry means
// unattempted, unavailable=true means construction failed once and will not
// be retried, otherwise ext holds the live extractor.
type cacheEntry struct {
	ext         languages.Extractor
	unavailable bool
}

// Dispatcher resolves file names to language extractors and renders
// skeleton text. It is safe for concurrent use.
type Dispatcher struct {
	mu    sync.Mutex
	cache map[string]cacheEntry
}

// New creates a Dispatcher with an empty extractor cache.
func New() *Dispatcher {
	return &Dispatcher{cache: make(map[string]cacheEntry)}
}

// ExtractSkeleton parses content and renders its structural skeleton.
// ok is false when the language is unsupported, its extractor is
// unavailable, or extraction fails; it never panics and never returns an
// error to the caller.
func (d *Dispatcher) ExtractSkeleton(fileName, content string, verbose bool) (text string, ok bool) {
	lang := detectLanguage(fileName)
	if lang == "" {
		return "", false
	}

	ext := d.extractorFor(lang)
	if ext == nil {
		return "", false
	}

	sk, err := safeExtract(ext, fileName, content)
	if err != nil {
		log.Printf("Warning: skeleton extraction failed for %s (language: %s): %v\n", fileName, lang, err)
		return "", false
	}

	return sk.ToText(verbose), true
}

// Supported reports whether the file name's extension maps to a known
// language.
func (d *Dispatcher) Supported(fileName string) bool {
	return detectLanguage(fileName) != ""
}

// extractorFor returns the cached extractor for a language key,
// constructing it on first use. A failed construction is logged once and
// memoized as unavailable so later calls short-circuit.
func (d *Dispatcher) extractorFor(lang string) languages.Extractor {
	d.mu.Lock()
	defer d.mu.Unlock()

	if entry, found := d.cache[lang]; found {
		return entry.ext
	}

	construct, known := registry[lang]
	if !known {
		d.cache[lang] = cacheEntry{unavailable: true}
		return nil
	}

	ext, err := construct()
	if err != nil {
		log.Printf("Warning: skeleton extractor unavailable for language %s: %v\n", lang, err)
		d.cache[lang] = cacheEntry{unavailable: true}
		return nil
	}
	d.cache[lang] = cacheEntry{ext: ext}
	return ext
}

// safeExtract invokes the extractor, converting a panic from an unexpected
// tree shape into an ordinary error.
func safeExtract(ext languages.Extractor, fileName, content string) (sk *skeleton.CodeSkeleton, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during extraction: %v", r)
		}
	}()

	sk, err = ext.Extract(fileName, content)
	if err == nil && sk == nil {
		err = fmt.Errorf("extractor returned no skeleton")
	}
	return sk, err
}

// detectLanguage maps a file name to its language key, or "" when the
// extension is unknown.
func detectLanguage(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return extensionLanguages[ext]
}

var (
	defaultDispatcher *Dispatcher
	defaultOnce       sync.Once
)

// Default returns the process-wide Dispatcher, created on first use. Its
// extractor cache is shared by every call for the life of the process.
func Default() *Dispatcher {
	defaultOnce.Do(func() {
		defaultDispatcher = New()
	})
	return defaultDispatcher
}

// ExtractSkeleton runs on the process-wide default Dispatcher.
func ExtractSkeleton(fileName, content string, verbose bool) (string, bool) {
	return Default().ExtractSkeleton(fileName, content, verbose)
}
