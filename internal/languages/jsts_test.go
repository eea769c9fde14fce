package languages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsSample = `/**
 * Counter widgets for the dashboard.
 */

import React from 'react';
import { render } from 'react-dom';
import { useState } from 'react';

/**
 * Tracks a running total.
 */
export class Counter extends Component {
  /**
   * Adds n to the total.
   */
  add(n) {
    this.total += n;
  }

  reset() {
    this.total = 0;
  }
}

/**
 * Formats a count for display.
 */
export function formatCount(count, unit) {
  return count + ' ' + unit;
}

/** Doubles the input. */
const double = (x) => x * 2;

const increment = n => n + 1;
`

func TestJavaScriptExtract(t *testing.T) {
	t.Parallel()

	ext, err := NewJavaScript()
	require.NoError(t, err)

	sk, err := ext.Extract("counter.js", jsSample)
	require.NoError(t, err)

	assert.Equal(t, "JavaScript", sk.Language)
	assert.Equal(t, "Counter widgets for the dashboard.", sk.ModuleDoc)

	// 'react' is imported twice but recorded once
	assert.Equal(t, []string{"react", "react-dom"}, sk.Imports)

	require.Len(t, sk.Classes, 1)
	cls := sk.Classes[0]
	assert.Equal(t, "Counter", cls.Name)
	assert.Equal(t, []string{"Component"}, cls.Bases)
	assert.Equal(t, "Tracks a running total.", cls.Docstring)

	require.Len(t, cls.Methods, 2)
	assert.Equal(t, "add", cls.Methods[0].Name)
	assert.Equal(t, "n", cls.Methods[0].Params)
	assert.Equal(t, "Adds n to the total.", cls.Methods[0].Docstring)
	assert.Equal(t, "reset", cls.Methods[1].Name)
	assert.Empty(t, cls.Methods[1].Docstring)

	require.Len(t, sk.Functions, 3)
	assert.Equal(t, "formatCount", sk.Functions[0].Name)
	assert.Equal(t, "count, unit", sk.Functions[0].Params)
	assert.Equal(t, "Formats a count for display.", sk.Functions[0].Docstring)

	assert.Equal(t, "double", sk.Functions[1].Name)
	assert.Equal(t, "x", sk.Functions[1].Params)
	assert.Equal(t, "Doubles the input.", sk.Functions[1].Docstring)

	// unparenthesized single-parameter arrow
	assert.Equal(t, "increment", sk.Functions[2].Name)
	assert.Equal(t, "n", sk.Functions[2].Params)
}

// Plain // comments never become documentation in JS/TS.
func TestJavaScriptExtract_LineCommentsIgnored(t *testing.T) {
	t.Parallel()

	ext, err := NewJavaScript()
	require.NoError(t, err)

	src := "// not a doc comment\nfunction f() {}\n"
	sk, err := ext.Extract("f.js", src)
	require.NoError(t, err)
	assert.Empty(t, sk.ModuleDoc)
	require.Len(t, sk.Functions, 1)
	assert.Empty(t, sk.Functions[0].Docstring)
}

const tsSample = `import { Injectable } from '@angular/core';

/**
 * Persists and lists todo items.
 */
export class TodoService implements Storage<Todo> {
  /**
   * Returns every stored todo.
   */
  list(): Todo[] {
    return [];
  }

  add(item: Todo, position?: number): void {}
}

export interface Todo extends Entity {
  /** Marks the item complete. */
  complete(): void;
}

export function byId(id: string): Todo | undefined {
  return undefined;
}
`

func TestTypeScriptExtract(t *testing.T) {
	t.Parallel()

	ext, err := NewTypeScript()
	require.NoError(t, err)

	sk, err := ext.Extract("todo.ts", tsSample)
	require.NoError(t, err)

	assert.Equal(t, "TypeScript", sk.Language)
	assert.Equal(t, []string{"@angular/core"}, sk.Imports)

	require.Len(t, sk.Classes, 2)

	svc := sk.Classes[0]
	assert.Equal(t, "TodoService", svc.Name)
	assert.Equal(t, []string{"Storage"}, svc.Bases)
	assert.Equal(t, "Persists and lists todo items.", svc.Docstring)
	require.Len(t, svc.Methods, 2)
	assert.Equal(t, "list", svc.Methods[0].Name)
	assert.Equal(t, "Todo[]", svc.Methods[0].ReturnType)
	assert.Equal(t, "Returns every stored todo.", svc.Methods[0].Docstring)
	assert.Equal(t, "add", svc.Methods[1].Name)
	assert.Equal(t, "item: Todo, position?: number", svc.Methods[1].Params)
	assert.Equal(t, "void", svc.Methods[1].ReturnType)

	iface := sk.Classes[1]
	assert.Equal(t, "Todo", iface.Name)
	assert.Equal(t, []string{"Entity"}, iface.Bases)
	require.Len(t, iface.Methods, 1)
	assert.Equal(t, "complete", iface.Methods[0].Name)
	assert.Equal(t, "void", iface.Methods[0].ReturnType)
	assert.Equal(t, "Marks the item complete.", iface.Methods[0].Docstring)

	require.Len(t, sk.Functions, 1)
	assert.Equal(t, "byId", sk.Functions[0].Name)
	assert.Equal(t, "id: string", sk.Functions[0].Params)
	assert.Equal(t, "Todo | undefined", sk.Functions[0].ReturnType)
}
