// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package model

import (
	"math"
	"regexp"
	"strings"
	"sync/atomic"

	"github.com/dacolabs/typedesc/xmlns"
)

// Unbounded is the canonical max_occurs value for an unlimited number of
// occurrences. Numeric comparisons like MaxOccurs > 1 keep working.
const Unbounded int64 = math.MaxInt64

var nullableDefault atomic.Bool

func init() {
	nullableDefault.Store(true)
}

// SetNullableDefault installs the process-wide nullability default used by
// descriptors whose nillable constraint was never set explicitly. It is
// meant to be called once during process initialization.
func SetNullableDefault(v bool) {
	nullableDefault.Store(v)
}

// NullableDefault returns the process-wide nullability default.
func NullableDefault() bool {
	return nullableDefault.Load()
}

// ProtocolAttrs maps a protocol key to protocol-specific overrides.
type ProtocolAttrs map[string]any

// DecodeProtAttrs flattens a prot_attrs mapping. A key may name a single
// protocol or a comma-separated group ("xml,json"); group entries are
// expanded first, then plain keys are applied, overwriting any value they
// share with an expanded group member.
func DecodeProtAttrs(d map[string]any) ProtocolAttrs {
	out := make(ProtocolAttrs, len(d))
	for k, v := range d {
		if !strings.Contains(k, ",") {
			continue
		}
		for _, sub := range strings.Split(k, ",") {
			if sub = strings.TrimSpace(sub); sub != "" {
				out[sub] = v
			}
		}
	}
	for k, v := range d {
		if !strings.Contains(k, ",") {
			out[k] = v
		}
	}
	return out
}

// Get looks up the overrides for a protocol key. Exact matches win; dotted
// keys fall back to their parent, so "xml.soap11" resolves to an entry
// registered under "xml" when no more specific entry exists.
func (pa ProtocolAttrs) Get(key string) (any, bool) {
	for {
		if v, ok := pa[key]; ok {
			return v, true
		}
		i := strings.LastIndexByte(key, '.')
		if i < 0 {
			return nil, false
		}
		key = key[:i]
	}
}

// ForeignKey is the marker appended to a ColumnArgs bundle by the
// foreign_key customization. The table-mapping layer interprets it.
type ForeignKey struct {
	Ref string
}

// ColumnArgs is the opaque positional/keyword argument bundle accumulated
// by pk, fk, autoincrement and friends. Downstream mapping code is solely
// responsible for interpreting it.
type ColumnArgs struct {
	Args   []any
	Kwargs map[string]any
}

func newColumnArgs() ColumnArgs {
	return ColumnArgs{Kwargs: make(map[string]any)}
}

// Attributes holds the constraints for a type descriptor. A derived
// descriptor gets its own copy; see derive.
type Attributes struct {
	// nillable is tri-state: nil defers to the process-wide default.
	// nullable is an alias, served by the same field.
	nillable *bool

	// Default is the value used when the input is nil.
	Default any

	// DefaultFactory produces the value used when the input is nil. It
	// takes precedence over Default when both are set.
	DefaultFactory func() any

	// MinOccurs set to 1 makes the object mandatory. Note that a present
	// object can still be null or empty.
	MinOccurs int64

	// MaxOccurs greater than 1 implies a collection as the native
	// representation. Unbounded allows any number of occurrences.
	MaxOccurs int64

	pattern   string
	patternRe *regexp.Regexp

	// Values is the set of permitted values. Empty means unconstrained.
	Values []any

	// SchemaTag is the tag used when adding this type as a child of a
	// complex type in the schema document.
	SchemaTag string

	// SubNS overrides the namespace used for this field's name when it is
	// serialized under a complex type.
	SubNS string

	// SubName overrides the string used as field name when this type is
	// serialized under a complex type.
	SubName string

	ProtAttrs ProtocolAttrs

	// Translations maps locale codes to translations of the field name.
	Translations map[string]string

	// StoreAs selects and parameterizes the serialization strategy for
	// this field's contents.
	StoreAs StoreAs

	// ORM-facing hints, pass-through only.
	Unique     any
	Index      any
	DBType     string
	TableName  string
	ColumnArgs ColumnArgs

	ExcMapper    bool
	ExcTable     bool
	ExcInterface bool

	// Logged set to false excludes this object from log output.
	Logged bool

	// ReadOnly prevents the attribute from being initialized from outside
	// values.
	ReadOnly bool

	// EmptyIsNone treats empty incoming values ("" for strings) as nil.
	EmptyIsNone bool

	// Order, when set, is the insertion position of this field in its
	// parent's field list.
	Order *int

	// XMLChoiceGroup shares a <choice> tag between fields carrying the
	// same value.
	XMLChoiceGroup string

	// wrapper marks container types whose tag is elided when rendering
	// documents.
	wrapper bool
}

func newAttributes() *Attributes {
	return &Attributes{
		MinOccurs:    0,
		MaxOccurs:    1,
		SchemaTag:    "{" + xmlns.XSD + "}element",
		Logged:       true,
		Translations: make(map[string]string),
		ColumnArgs:   newColumnArgs(),
	}
}

// Nillable reports whether null values are permitted, falling back to the
// process-wide default when never set explicitly.
func (a *Attributes) Nillable() bool {
	if a.nillable != nil {
		return *a.nillable
	}
	return NullableDefault()
}

// Nullable is a synonym for Nillable.
func (a *Attributes) Nullable() bool {
	return a.Nillable()
}

// SetNillable sets the nillable constraint explicitly. The nullable alias
// observes the same value.
func (a *Attributes) SetNillable(v bool) {
	a.nillable = &v
}

// SetNullable is a synonym for SetNillable.
func (a *Attributes) SetNullable(v bool) {
	a.SetNillable(v)
}

// NillableSet reports whether the constraint was set explicitly.
func (a *Attributes) NillableSet() bool {
	return a.nillable != nil
}

// Wrapper reports whether the type is a wrapper whose tag is elided when
// rendering documents.
func (a *Attributes) Wrapper() bool {
	return a.wrapper
}

// SetWrapper marks or unmarks the type as a wrapper.
func (a *Attributes) SetWrapper(v bool) {
	a.wrapper = v
}

// Pattern returns the constraint pattern, or "" when unset.
func (a *Attributes) Pattern() string {
	return a.pattern
}

// SetPattern compiles and installs the constraint pattern. An invalid
// expression fails with a PatternError immediately.
func (a *Attributes) SetPattern(p string) error {
	if p == "" {
		a.pattern, a.patternRe = "", nil
		return nil
	}
	re, err := regexp.Compile(p)
	if err != nil {
		return &PatternError{Pattern: p, Err: err}
	}
	a.pattern, a.patternRe = p, re
	return nil
}

// MatchesPattern reports whether s matches the compiled pattern. An unset
// pattern matches everything.
func (a *Attributes) MatchesPattern(s string) bool {
	if a.patternRe == nil {
		return true
	}
	return a.patternRe.MatchString(s)
}

// derive copies the constraint record for a customized descriptor.
// Translations and ColumnArgs are reinitialized to fresh empty containers
// so derived descriptors never share mutable collections with their
// parent, and the explicit nillable value is re-applied without aliasing
// the parent's storage.
func (a *Attributes) derive() *Attributes {
	na := *a
	na.Translations = make(map[string]string)
	na.ColumnArgs = newColumnArgs()
	if a.nillable != nil {
		v := *a.nillable
		na.nillable = &v
	}
	return &na
}
