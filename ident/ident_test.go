package ident_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/componolit/rflx-verify/ident"
)

func TestNewPanicsOnEmpty(t *testing.T) {
	r := require.New(t)
	r.Panics(func() { ident.New() })
}

func TestStringJoinsWithDoubleColon(t *testing.T) {
	r := require.New(t)
	id := ident.New("Pkg", "Message")
	r.Equal("Pkg::Message", id.String())
}

func TestPackageAndName(t *testing.T) {
	r := require.New(t)
	id := ident.New("Pkg", "Message")
	r.Equal("Pkg", id.Package().String())
	r.Equal("Message", id.Name())

	single := ident.New("Message")
	r.True(single.Package().IsZero())
}

func TestEqualAndLess(t *testing.T) {
	r := require.New(t)
	a := ident.New("A", "X")
	b := ident.New("A", "X")
	c := ident.New("A", "Y")
	r.True(a.Equal(b))
	r.False(a.Equal(c))
	r.True(a.Less(c))
	r.False(c.Less(a))
}

func TestWithSuffixAndPrefix(t *testing.T) {
	r := require.New(t)
	id := ident.New("Pkg", "Field")
	r.Equal("Pkg::Field_suffix", id.WithSuffix("_suffix").String())
	r.Equal("Pkg::prefix_Field", id.WithPrefix("prefix_").String())
}

func TestLocationStringHandlesNilReceiver(t *testing.T) {
	r := require.New(t)
	var loc *ident.Location
	r.Equal("<unknown location>", loc.String())

	loc = &ident.Location{File: "msg.rflx", Start: ident.Position{Line: 1, Column: 1}, End: ident.Position{Line: 1, Column: 5}}
	r.Contains(loc.String(), "msg.rflx")
}
