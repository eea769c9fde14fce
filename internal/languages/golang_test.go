package languages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goSample = `// Package httpserve hosts the request handlers.
package httpserve

import (
	"context"
	"net/http"
)

// Server owns the listener and handler set.
type Server struct {
	addr string
}

// Handler responds to a single request.
type Handler interface {
	// Handle processes one request.
	Handle(ctx context.Context, req *http.Request) error
}

// NewServer builds a Server listening on addr.
func NewServer(addr string) *Server {
	return &Server{addr: addr}
}

// Start runs the accept loop until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	return nil
}
`

func TestGoExtract(t *testing.T) {
	t.Parallel()

	ext, err := NewGo()
	require.NoError(t, err)

	sk, err := ext.Extract("server.go", goSample)
	require.NoError(t, err)

	assert.Equal(t, "Go", sk.Language)
	assert.Equal(t, "Package httpserve hosts the request handlers.", sk.ModuleDoc)
	assert.Equal(t, []string{"context", "net/http"}, sk.Imports)

	require.Len(t, sk.Classes, 2)
	assert.Equal(t, "Server", sk.Classes[0].Name)
	assert.Equal(t, "Server owns the listener and handler set.", sk.Classes[0].Docstring)
	assert.Empty(t, sk.Classes[0].Methods)

	iface := sk.Classes[1]
	assert.Equal(t, "Handler", iface.Name)
	require.Len(t, iface.Methods, 1)
	assert.Equal(t, "Handle", iface.Methods[0].Name)
	assert.Equal(t, "ctx context.Context, req *http.Request", iface.Methods[0].Params)
	assert.Equal(t, "error", iface.Methods[0].ReturnType)
	assert.Equal(t, "Handle processes one request.", iface.Methods[0].Docstring)
}

// Methods land in the top-level function list with the receiver dropped.
func TestGoExtract_MethodsAreFunctionsWithoutReceiver(t *testing.T) {
	t.Parallel()

	ext, err := NewGo()
	require.NoError(t, err)

	sk, err := ext.Extract("server.go", goSample)
	require.NoError(t, err)

	require.Len(t, sk.Functions, 2)

	assert.Equal(t, "NewServer", sk.Functions[0].Name)
	assert.Equal(t, "addr string", sk.Functions[0].Params)
	assert.Equal(t, "*Server", sk.Functions[0].ReturnType)

	start := sk.Functions[1]
	assert.Equal(t, "Start", start.Name)
	assert.Equal(t, "ctx context.Context", start.Params)
	assert.NotContains(t, start.Params, "s *Server")
	assert.Equal(t, "error", start.ReturnType)
	assert.Equal(t, "Start runs the accept loop until ctx is done.", start.Docstring)
}

func TestGoExtract_GroupedTypeDeclarations(t *testing.T) {
	t.Parallel()

	ext, err := NewGo()
	require.NoError(t, err)

	src := `package kinds

type (
	// Point is a 2D coordinate.
	Point struct{ X, Y int }

	// Size is a width and height pair.
	Size struct{ W, H int }
)
`
	sk, err := ext.Extract("kinds.go", src)
	require.NoError(t, err)

	require.Len(t, sk.Classes, 2)
	assert.Equal(t, "Point", sk.Classes[0].Name)
	assert.Equal(t, "Point is a 2D coordinate.", sk.Classes[0].Docstring)
	assert.Equal(t, "Size", sk.Classes[1].Name)
	assert.Equal(t, "Size is a width and height pair.", sk.Classes[1].Docstring)
}

func TestGoExtract_SingleImportAndAlias(t *testing.T) {
	t.Parallel()

	ext, err := NewGo()
	require.NoError(t, err)

	src := `package p

import "fmt"
import stdlog "log"
`
	sk, err := ext.Extract("p.go", src)
	require.NoError(t, err)
	assert.Equal(t, []string{"fmt", "log"}, sk.Imports)
}

// A blank line between a comment block and the declaration detaches it.
func TestGoExtract_DetachedCommentIsNotDoc(t *testing.T) {
	t.Parallel()

	ext, err := NewGo()
	require.NoError(t, err)

	src := `package p

// Stray remark.

func Run() {}
`
	sk, err := ext.Extract("p.go", src)
	require.NoError(t, err)
	require.Len(t, sk.Functions, 1)
	assert.Empty(t, sk.Functions[0].Docstring)
}

func TestGoExtract_TypeAliasIgnored(t *testing.T) {
	t.Parallel()

	ext, err := NewGo()
	require.NoError(t, err)

	sk, err := ext.Extract("p.go", "package p\n\ntype ID = string\n\ntype Count int\n")
	require.NoError(t, err)
	assert.Empty(t, sk.Classes)
}
