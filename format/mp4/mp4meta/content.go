// Package mp4meta
// Created by RTT.
// Author: teocci@yandex.com on 2021-Nov-02
package mp4meta

import (
	"io"
)

type ContentKind uint8

const (
	// ContentEmpty is an absent body.
	ContentEmpty ContentKind = iota
	// ContentAtoms is an ordered list of child atoms.
	ContentAtoms
	// ContentRawData is a payload with no datatype head; the enclosing
	// atom's tag implies the type.
	ContentRawData
	// ContentTypedData is a payload behind an 8 byte datatype head,
	// found inside data atoms.
	ContentTypedData
)

// Content is the body of an atom: child atoms, a data payload, or
// nothing. Builder methods take the value and return the updated value,
// so construction chains without a mutable accumulator.
type Content struct {
	kind  ContentKind
	atoms []Atom
	data  Data
}

func EmptyContent() Content {
	return Content{}
}

// AtomsContent returns a container body with no children yet.
func AtomsContent() Content {
	return Content{kind: ContentAtoms}
}

// AtomContent returns a container body holding the one atom.
func AtomContent(a Atom) Content {
	return Content{kind: ContentAtoms, atoms: []Atom{a}}
}

// DataAtomContent returns a container body holding an empty data atom.
func DataAtomContent() Content {
	return AtomContent(DataAtom())
}

// DataAtomContentWith returns a container body holding a data atom
// carrying d.
func DataAtomContentWith(d Data) Content {
	return AtomContent(DataAtomWith(d))
}

// AtomContentWith returns a container body holding a new atom built from
// tag, offset and content.
func AtomContentWith(tag Tag, offset int, content Content) Content {
	return AtomContent(AtomWith(tag, offset, content))
}

func RawDataContent(d Data) Content {
	return Content{kind: ContentRawData, data: d}
}

func TypedDataContent(d Data) Content {
	return Content{kind: ContentTypedData, data: d}
}

// AddAtom appends a child if the receiver is a container, otherwise it
// returns the receiver unchanged.
func (c Content) AddAtom(a Atom) Content {
	if c.kind == ContentAtoms {
		c.atoms = append(c.atoms, a)
	}
	return c
}

func (c Content) AddDataAtom() Content {
	return c.AddAtom(DataAtom())
}

func (c Content) AddAtomWith(tag Tag, offset int, content Content) Content {
	return c.AddAtom(AtomWith(tag, offset, content))
}

func (c Content) Kind() ContentKind {
	return c.kind
}

// Children returns the child atoms of a container body.
func (c Content) Children() []Atom {
	return c.atoms
}

// Data returns the payload of a raw or typed data body.
func (c Content) Data() (Data, bool) {
	if c.kind == ContentRawData || c.kind == ContentTypedData {
		return c.data, true
	}
	return Data{}, false
}

// Len returns the serialized length in bytes.
func (c Content) Len() (n int) {
	switch c.kind {
	case ContentAtoms:
		for _, a := range c.atoms {
			n += a.Len()
		}
	case ContentTypedData:
		n = 8 + c.data.Len()
	case ContentRawData:
		n = c.data.Len()
	}
	return
}

// Parse reads length bytes from r into the body. A container reads
// sibling atoms until the budget is consumed; data bodies decode their
// payload; an empty body reads nothing regardless of length.
func (c *Content) Parse(r io.ReadSeeker, length int) error {
	switch c.kind {
	case ContentAtoms:
		atoms, err := ParseAtoms(r, length)
		if err != nil {
			return err
		}
		c.atoms = append(c.atoms, atoms...)
	case ContentRawData, ContentTypedData:
		return c.data.Parse(r, length)
	}
	return nil
}

// WriteTo serializes the body to w in document order.
func (c Content) WriteTo(w io.Writer) error {
	switch c.kind {
	case ContentAtoms:
		for _, a := range c.atoms {
			if err := a.WriteTo(w); err != nil {
				return err
			}
		}
	case ContentRawData:
		return c.data.WriteRaw(w)
	case ContentTypedData:
		return c.data.WriteTyped(w)
	}
	return nil
}

// Equal reports variant-aware equality. An empty body and a childless
// container are not equal.
func (c Content) Equal(other Content) bool {
	if c.kind != other.kind {
		return false
	}
	switch c.kind {
	case ContentAtoms:
		if len(c.atoms) != len(other.atoms) {
			return false
		}
		for i := range c.atoms {
			if !c.atoms[i].Equal(other.atoms[i]) {
				return false
			}
		}
	case ContentRawData, ContentTypedData:
		return c.data.Equal(other.data)
	}
	return true
}
