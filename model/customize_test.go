// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomize_ConstraintIsolation(t *testing.T) {
	d := New("Address", KindComplex, "acme.crm")

	nd, err := d.Customize(map[string]any{"min_occurs": 1})
	require.NoError(t, err)

	assert.NotSame(t, d.Attrs, nd.Attrs)
	assert.NotSame(t, d.Ann, nd.Ann)
	assert.EqualValues(t, 1, nd.Attrs.MinOccurs)
	assert.EqualValues(t, 0, d.Attrs.MinOccurs)

	// Mutating the result never affects the original.
	nd.Attrs.SetNillable(false)
	nd.Attrs.Translations["de"] = "Adresse"
	assert.True(t, d.Attrs.Nillable())
	assert.Empty(t, d.Attrs.Translations)
}

func TestCustomize_NeverMutatesCaller(t *testing.T) {
	d := New("Address", KindComplex, "acme.crm")

	_, err := d.Customize(map[string]any{
		"doc":      "postal address",
		"pk":       true,
		"logged":   false,
		"sub_name": "addr",
	})
	require.NoError(t, err)

	assert.Empty(t, d.Ann.Doc)
	assert.Empty(t, d.Attrs.ColumnArgs.Kwargs)
	assert.True(t, d.Attrs.Logged)
	assert.Empty(t, d.Attrs.SubName)
}

func TestCustomize_Chained(t *testing.T) {
	d := New("Person", KindComplex, "acme.crm")

	first, err := d.Customize(map[string]any{"min_occurs": 1})
	require.NoError(t, err)
	second, err := first.Customize(map[string]any{"logged": false})
	require.NoError(t, err)

	assert.EqualValues(t, 1, second.Attrs.MinOccurs)
	assert.False(t, second.Attrs.Logged)

	// orig always points at the base of the chain.
	assert.Same(t, d, first.Orig())
	assert.Same(t, d, second.Orig())
	assert.Nil(t, d.Orig())
}

func TestCustomize_Annotations(t *testing.T) {
	d := New("Person", KindComplex, "acme.crm")

	nd, err := d.Customize(map[string]any{
		"doc":     "a person",
		"appinfo": 42,
	})
	require.NoError(t, err)

	assert.Equal(t, "a person", nd.Ann.Doc)
	assert.Equal(t, 42, nd.Ann.AppInfo)
}

func TestCustomize_UseParentDocCarriesOver(t *testing.T) {
	d := New("Person", KindComplex, "acme.crm")
	d.Ann.UseParentDoc = true

	nd, err := d.Customize(map[string]any{"min_occurs": 1})
	require.NoError(t, err)

	assert.True(t, nd.Ann.UseParentDoc)

	// The annotation records stay independent.
	nd.Ann.UseParentDoc = false
	assert.True(t, d.Ann.UseParentDoc)
}

func TestCustomize_ColumnArgs(t *testing.T) {
	d := New("ID", KindInteger, "acme.crm")

	nd, err := d.Customize(map[string]any{
		"pk":            true,
		"fk":            "person.id",
		"autoincrement": true,
		"onupdate":      "now()",
	})
	require.NoError(t, err)

	assert.Equal(t, true, nd.Attrs.ColumnArgs.Kwargs["primary_key"])
	assert.Equal(t, true, nd.Attrs.ColumnArgs.Kwargs["autoincrement"])
	assert.Equal(t, "now()", nd.Attrs.ColumnArgs.Kwargs["onupdate"])
	require.Len(t, nd.Attrs.ColumnArgs.Args, 1)
	assert.Equal(t, ForeignKey{Ref: "person.id"}, nd.Attrs.ColumnArgs.Args[0])
}

func TestCustomize_ProtAttrs(t *testing.T) {
	d := New("Secret", KindString, "acme.crm")

	nd, err := d.Customize(map[string]any{
		"pa": map[string]any{
			"xml,json": map[string]any{"logged": false},
			"xml":      map[string]any{"logged": true},
		},
	})
	require.NoError(t, err)

	got, ok := nd.Attrs.ProtAttrs.Get("xml")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"logged": true}, got)

	got, ok = nd.Attrs.ProtAttrs.Get("json")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"logged": false}, got)
}

func TestCustomize_MaxOccursUnbounded(t *testing.T) {
	d := New("Tag", KindString, "acme.crm")

	tests := []struct {
		name  string
		value any
	}{
		{name: "string unbounded", value: "unbounded"},
		{name: "string inf", value: "inf"},
		{name: "float infinity", value: math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nd, err := d.Customize(map[string]any{"max_occurs": tt.value})
			require.NoError(t, err)
			assert.Equal(t, Unbounded, nd.Attrs.MaxOccurs)
		})
	}
}

func TestCustomize_MaxOccursNumeric(t *testing.T) {
	d := New("Tag", KindString, "acme.crm")

	nd, err := d.Customize(map[string]any{"max_occurs": 5})
	require.NoError(t, err)
	assert.EqualValues(t, 5, nd.Attrs.MaxOccurs)

	_, err = d.Customize(map[string]any{"max_occurs": 0})
	assert.Error(t, err)
}

func TestCustomize_NullableAliases(t *testing.T) {
	d := New("Name", KindString, "acme.crm")

	nd, err := d.Customize(map[string]any{"nullable": false})
	require.NoError(t, err)
	assert.False(t, nd.Attrs.Nillable())
	assert.False(t, nd.Attrs.Nullable())

	nd, err = d.Customize(map[string]any{"nillable": false})
	require.NoError(t, err)
	assert.False(t, nd.Attrs.Nullable())

	nd, err = d.Customize(map[string]any{"nullable": true, "nillable": true})
	require.NoError(t, err)
	assert.True(t, nd.Attrs.Nillable())
}

func TestCustomize_ConflictingAliases(t *testing.T) {
	d := New("Name", KindString, "acme.crm")

	_, err := d.Customize(map[string]any{"nullable": true, "nillable": false})
	require.Error(t, err)

	var cerr *ConfigurationError
	assert.ErrorAs(t, err, &cerr)
}

func TestCustomize_ReservedKeysSkipped(t *testing.T) {
	d := New("Name", KindComplex, "acme.crm")

	nd, err := d.Customize(map[string]any{"_internal": "ignored"})
	require.NoError(t, err)
	assert.NotNil(t, nd)
}

func TestCustomize_UnknownKey(t *testing.T) {
	d := New("Name", KindString, "acme.crm")

	_, err := d.Customize(map[string]any{"no_such_constraint": 1})
	require.Error(t, err)

	var cerr *ConfigurationError
	assert.ErrorAs(t, err, &cerr)
	assert.Contains(t, err.Error(), "no_such_constraint")
}

func TestCustomize_InvalidPattern(t *testing.T) {
	d := New("Code", KindString, "acme.crm")

	_, err := d.Customize(map[string]any{"pattern": `[`})
	require.Error(t, err)

	var perr *PatternError
	assert.ErrorAs(t, err, &perr)
}

func TestCustomize_StoreAs(t *testing.T) {
	d := New("Payload", KindComplex, "acme.crm")

	nd, err := d.Customize(map[string]any{"store_as": "json"})
	require.NoError(t, err)
	assert.Equal(t, NewJSONOptions(), nd.Attrs.StoreAs)

	_, err = d.Customize(map[string]any{"store_as": 42})
	assert.Error(t, err)
}

func TestCustomize_StoreAsJSONWrappersRejected(t *testing.T) {
	d := New("Payload", KindComplex, "acme.crm")

	_, err := d.Customize(map[string]any{"store_as": JSONOptions{ComplexAs: "map"}})
	require.Error(t, err)

	var cerr *ConfigurationError
	assert.ErrorAs(t, err, &cerr)
	assert.Contains(t, err.Error(), "IgnoreWrappers")
}

func TestCustomize_SimpleValues(t *testing.T) {
	d := New("Color", KindString, "acme.paint")

	nd, err := d.Customize(map[string]any{
		"values": []any{"red", "green", "blue"},
	})
	require.NoError(t, err)

	// A constrained value set makes the descriptor non-default: it now
	// extends its base and derives a fresh type name later.
	assert.Same(t, d, nd.Extends())
	assert.Same(t, d, nd.Orig())
	assert.Equal(t, "Color", nd.TypeName())
	assert.Equal(t, "acme.paint", nd.Namespace())
}

func TestCustomize_SimpleTypeName(t *testing.T) {
	d := New("Color", KindString, "acme.paint")

	nd, err := d.Customize(map[string]any{
		"values":    []any{"red", "green"},
		"type_name": "PrimaryColor",
	})
	require.NoError(t, err)

	assert.Equal(t, "PrimaryColor", nd.TypeName())
	assert.Same(t, d, nd.Extends())
}

func TestCustomize_SimpleDefaultKeepsNamespace(t *testing.T) {
	d := New("Token", KindString, "acme.auth")

	// No value constraint: the result is still a default descriptor and
	// keeps the schema namespace instead of reclaiming it.
	nd, err := d.Customize(map[string]any{"min_occurs": 1})
	require.NoError(t, err)

	assert.Nil(t, nd.Extends())
	assert.Equal(t, d.Namespace(), nd.Namespace())
}

func TestCustomize_SimpleNamespaceOverride(t *testing.T) {
	d := New("Status", KindString, "")

	nd, err := d.Customize(map[string]any{
		"values":     []any{"on", "off"},
		NamespaceKey: "acme.devices",
	})
	require.NoError(t, err)

	assert.Equal(t, "acme.devices", nd.Namespace())
}

func TestCustomize_SimpleUnresolvableNamespace(t *testing.T) {
	d := New("Status", KindString, "")

	_, err := d.Customize(map[string]any{"values": []any{"on", "off"}})
	require.Error(t, err)

	var cerr *ConfigurationError
	assert.ErrorAs(t, err, &cerr)
}

func TestValidateNative_Values(t *testing.T) {
	d := New("Color", KindString, "acme.paint")
	nd, err := d.Customize(map[string]any{
		"values":   []any{"red", "green"},
		"nillable": true,
	})
	require.NoError(t, err)

	assert.True(t, nd.ValidateNative("red"))
	assert.False(t, nd.ValidateNative("purple"))
	assert.True(t, nd.ValidateNative(nil))

	strict, err := nd.Customize(map[string]any{"nillable": false})
	require.NoError(t, err)
	assert.False(t, strict.ValidateNative(nil))
}

func TestValidateNative_Unconstrained(t *testing.T) {
	d := New("Name", KindString, "acme.crm")

	assert.True(t, d.ValidateNative("anything"))
	assert.True(t, d.ValidateNative(nil))
}

func TestValidateString(t *testing.T) {
	d := New("Code", KindString, "acme.crm")
	nd, err := d.Customize(map[string]any{
		"pattern":  `^[A-Z]{3}$`,
		"nillable": false,
	})
	require.NoError(t, err)

	assert.True(t, nd.ValidateString("ABC"))
	assert.False(t, nd.ValidateString("abc"))
	assert.False(t, nd.ValidateString(nil))

	assert.True(t, d.ValidateString(nil))
}
