package languages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const csharpSample = `using System;
using System.Collections.Generic;

namespace Example.Math
{
    /// <summary>
    /// Performs basic arithmetic.
    /// </summary>
    public class Calculator : CalculatorBase, IDisposable
    {
        /// <summary>
        /// Gets or sets the working precision.
        /// </summary>
        public int Precision { get; set; }

        public string Name { get; }

        /// <summary>
        /// Adds two numbers.
        /// </summary>
        /// <param name="a">First operand.</param>
        public double Add(double a, double b)
        {
            return a + b;
        }

        public void Dispose() { }
    }
}
`

func TestCSharpExtract(t *testing.T) {
	t.Parallel()

	ext, err := NewCSharp()
	require.NoError(t, err)

	sk, err := ext.Extract("Calculator.cs", csharpSample)
	require.NoError(t, err)

	assert.Equal(t, "C#", sk.Language)
	assert.Equal(t, []string{"System", "System.Collections.Generic"}, sk.Imports)

	require.Len(t, sk.Classes, 1)
	cls := sk.Classes[0]
	assert.Equal(t, "Calculator", cls.Name)
	assert.Equal(t, []string{"CalculatorBase", "IDisposable"}, cls.Bases)
	assert.Equal(t, "Performs basic arithmetic.", cls.Docstring)

	require.Len(t, cls.Methods, 4)

	precision := cls.Methods[0]
	assert.Equal(t, "Precision", precision.Name)
	assert.Equal(t, "{ get set }", precision.Params)
	assert.Equal(t, "int", precision.ReturnType)
	assert.Equal(t, "Gets or sets the working precision.", precision.Docstring)

	name := cls.Methods[1]
	assert.Equal(t, "Name", name.Name)
	assert.Equal(t, "{ get }", name.Params)
	assert.Equal(t, "string", name.ReturnType)

	add := cls.Methods[2]
	assert.Equal(t, "Add", add.Name)
	assert.Equal(t, "double a, double b", add.Params)
	assert.Equal(t, "double", add.ReturnType)
	assert.Contains(t, add.Docstring, "Adds two numbers.")
	assert.Contains(t, add.Docstring, "First operand.")
	// XML tags are stripped from the doc text
	assert.NotContains(t, add.Docstring, "<summary>")
	assert.NotContains(t, add.Docstring, "<param")

	assert.Equal(t, "Dispose", cls.Methods[3].Name)
	assert.Equal(t, "void", cls.Methods[3].ReturnType)
}

// File-scoped namespaces flatten the same way braced ones do.
func TestCSharpExtract_FileScopedNamespace(t *testing.T) {
	t.Parallel()

	ext, err := NewCSharp()
	require.NoError(t, err)

	src := `namespace Example.Models;

/// <summary>A stored record.</summary>
public record Entry(string Key, string Value);

public interface IRepository
{
    /// <summary>Finds an entry by key.</summary>
    Entry Find(string key);
}
`
	sk, err := ext.Extract("Entry.cs", src)
	require.NoError(t, err)

	require.Len(t, sk.Classes, 2)
	assert.Equal(t, "Entry", sk.Classes[0].Name)
	assert.Equal(t, "A stored record.", sk.Classes[0].Docstring)

	repo := sk.Classes[1]
	assert.Equal(t, "IRepository", repo.Name)
	require.Len(t, repo.Methods, 1)
	assert.Equal(t, "Find", repo.Methods[0].Name)
	assert.Equal(t, "string key", repo.Methods[0].Params)
	assert.Equal(t, "Entry", repo.Methods[0].ReturnType)
	assert.Equal(t, "Finds an entry by key.", repo.Methods[0].Docstring)
}

func TestCSharpExtract_StructAndConstructor(t *testing.T) {
	t.Parallel()

	ext, err := NewCSharp()
	require.NoError(t, err)

	src := `public struct Point
{
    /// <summary>Creates a point.</summary>
    public Point(int x, int y) { X = x; Y = y; }

    public int X { get; init; }
    public int Y { get; init; }
}
`
	sk, err := ext.Extract("Point.cs", src)
	require.NoError(t, err)

	require.Len(t, sk.Classes, 1)
	cls := sk.Classes[0]
	assert.Equal(t, "Point", cls.Name)
	require.Len(t, cls.Methods, 3)
	assert.Equal(t, "Point", cls.Methods[0].Name)
	assert.Equal(t, "int x, int y", cls.Methods[0].Params)
	assert.Equal(t, "Creates a point.", cls.Methods[0].Docstring)
	assert.Equal(t, "{ get init }", cls.Methods[1].Params)
}
