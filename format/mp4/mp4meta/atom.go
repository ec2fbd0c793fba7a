// Package mp4meta
// Created by RTT.
// Author: teocci@yandex.com on 2021-Nov-03
package mp4meta

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/teocci/go-mp4meta/utils/bits/pio"
)

type Tag uint32

func (t Tag) String() string {
	var b [4]byte
	pio.PutU32BE(b[:], uint32(t))
	for i := 0; i < 4; i++ {
		if b[i] == 0 {
			b[i] = ' '
		}
	}
	return string(b[:])
}

func StringToTag(tag string) Tag {
	var b [4]byte
	copy(b[:], []byte(tag))
	return Tag(pio.U32BE(b[:]))
}

const FTYP = Tag(0x66747970)
const MOOV = Tag(0x6d6f6f76)
const MDAT = Tag(0x6d646174)
const FREE = Tag(0x66726565)
const UDTA = Tag(0x75647461)
const META = Tag(0x6d657461)
const HDLR = Tag(0x68646c72)
const ILST = Tag(0x696c7374)
const DATA = Tag(0x64617461)
const UUID = Tag(0x75756964)

// iTunes style metadata item tags found inside ilst.
const NAM = Tag(0xa96e616d)  // ©nam title
const ART = Tag(0xa9415254)  // ©ART artist
const AART = Tag(0x61415254) // aART album artist
const ALB = Tag(0xa9616c62)  // ©alb album
const GEN = Tag(0xa967656e)  // ©gen genre
const DAY = Tag(0xa9646179)  // ©day year
const CMT = Tag(0xa9636d74)  // ©cmt comment
const WRT = Tag(0xa9777274)  // ©wrt composer
const TOO = Tag(0xa9746f6f)  // ©too encoder
const LYR = Tag(0xa96c7972)  // ©lyr lyrics
const GRP = Tag(0xa9677270)  // ©grp grouping
const TRKN = Tag(0x74726b6e) // trkn track number
const DISK = Tag(0x6469736b) // disk disc number
const COVR = Tag(0x636f7672) // covr artwork
const TMPO = Tag(0x746d706f) // tmpo bpm
const CPIL = Tag(0x6370696c) // cpil compilation
const RTNG = Tag(0x72746e67) // rtng advisory rating
const DESC = Tag(0x64657363) // desc description
const CATG = Tag(0x63617467) // catg category

// Atom is one tagged record: a fourcc, a fixed skip-offset covering
// version/flags bytes not modeled here, and a body. Extended-type uuid
// atoms additionally carry their 16 byte usertype.
type Atom struct {
	tag      Tag
	offset   int
	usertype uuid.UUID
	content  Content
}

// AtomWith builds an atom from tag, skip-offset and content.
func AtomWith(tag Tag, offset int, content Content) Atom {
	return Atom{tag: tag, offset: offset, content: content}
}

// DataAtom returns a data atom whose payload is still waiting on the
// type code from its head.
func DataAtom() Atom {
	return AtomWith(DATA, 0, TypedDataContent(Unparsed(TYPED)))
}

// DataAtomWith returns a data atom carrying d.
func DataAtomWith(d Data) Atom {
	return AtomWith(DATA, 0, TypedDataContent(d))
}

// UUIDAtomWith builds an extended-type atom from usertype and content.
func UUIDAtomWith(usertype uuid.UUID, content Content) Atom {
	return Atom{tag: UUID, usertype: usertype, content: content}
}

func (a Atom) Tag() Tag {
	return a.tag
}

func (a Atom) Offset() int {
	return a.offset
}

func (a Atom) Usertype() uuid.UUID {
	return a.usertype
}

func (a Atom) Content() Content {
	return a.content
}

func (a Atom) Children() []Atom {
	return a.content.Children()
}

// Len returns the total serialized length: 8 byte header, usertype for
// uuid atoms, skip-offset padding, then the body.
func (a Atom) Len() (n int) {
	n = 8 + a.offset + a.content.Len()
	if a.tag == UUID {
		n += 16
	}
	return
}

func (a Atom) Equal(other Atom) bool {
	return a.tag == other.tag &&
		a.offset == other.offset &&
		a.usertype == other.usertype &&
		a.content.Equal(other.content)
}

// WriteTo serializes the atom: size, fourcc, usertype for uuid atoms,
// zeroed skip-offset bytes, body.
func (a Atom) WriteTo(w io.Writer) error {
	var hd [8]byte
	pio.PutU32BE(hd[0:], uint32(a.Len()))
	pio.PutU32BE(hd[4:], uint32(a.tag))
	if _, err := w.Write(hd[:]); err != nil {
		return ioErr("write atom header", err)
	}
	if a.tag == UUID {
		ut := a.usertype
		if _, err := w.Write(ut[:]); err != nil {
			return ioErr("write atom usertype", err)
		}
	}
	if a.offset > 0 {
		if _, err := w.Write(make([]byte, a.offset)); err != nil {
			return ioErr("write atom offset", err)
		}
	}
	return a.content.WriteTo(w)
}

// template describes how a known tag's body parses.
type template struct {
	offset  int
	content func() Content
}

func typedDataContent() Content {
	return TypedDataContent(Unparsed(TYPED))
}

// The metadata hierarchy moov.udta.meta.ilst plus the item tags. The
// meta atom carries 4 version/flags bytes before its children.
var templates = map[Tag]template{
	MOOV: {0, AtomsContent},
	UDTA: {0, AtomsContent},
	META: {4, AtomsContent},
	ILST: {0, AtomsContent},
	DATA: {0, typedDataContent},
	NAM:  {0, AtomsContent},
	ART:  {0, AtomsContent},
	AART: {0, AtomsContent},
	ALB:  {0, AtomsContent},
	GEN:  {0, AtomsContent},
	DAY:  {0, AtomsContent},
	CMT:  {0, AtomsContent},
	WRT:  {0, AtomsContent},
	TOO:  {0, AtomsContent},
	LYR:  {0, AtomsContent},
	GRP:  {0, AtomsContent},
	TRKN: {0, AtomsContent},
	DISK: {0, AtomsContent},
	COVR: {0, AtomsContent},
	TMPO: {0, AtomsContent},
	CPIL: {0, AtomsContent},
	RTNG: {0, AtomsContent},
	DESC: {0, AtomsContent},
	CATG: {0, AtomsContent},
}

// ParseAtoms reads sibling atoms from r until exactly length bytes are
// consumed. Known tags parse per the template table; unknown tags keep
// their payload verbatim so the file writes back unchanged.
func ParseAtoms(r io.ReadSeeker, length int) (atoms []Atom, err error) {
	var parsed int
	for parsed < length {
		if length-parsed < 8 {
			return nil, parseErr("atom header exceeds parent budget")
		}
		var hd [8]byte
		if _, err = io.ReadFull(r, hd[:]); err != nil {
			return nil, ioErr("read atom header", err)
		}
		size := int(pio.U32BE(hd[0:]))
		tag := Tag(pio.U32BE(hd[4:]))
		if size < 8 || size > length-parsed {
			return nil, parseErr("invalid atom size")
		}

		var atom Atom
		if atom, err = parseAtom(r, tag, size-8); err != nil {
			return nil, err
		}
		atoms = append(atoms, atom)
		parsed += size
	}
	return
}

func parseAtom(r io.ReadSeeker, tag Tag, body int) (a Atom, err error) {
	if tag == UUID {
		if body < 16 {
			err = parseErr("uuid atom too short")
			return
		}
		var ut [16]byte
		if _, err = io.ReadFull(r, ut[:]); err != nil {
			err = ioErr("read atom usertype", err)
			return
		}
		var u uuid.UUID
		if u, err = uuid.FromBytes(ut[:]); err != nil {
			err = parseErr("invalid atom usertype")
			return
		}
		a = Atom{tag: UUID, usertype: u, content: RawDataContent(Unparsed(RESERVED))}
		err = a.content.Parse(r, body-16)
		return
	}

	tpl, known := templates[tag]
	if !known {
		a = Atom{tag: tag, content: RawDataContent(Unparsed(RESERVED))}
		err = a.content.Parse(r, body)
		return
	}

	if body < tpl.offset {
		err = parseErr("atom body shorter than offset")
		return
	}
	a = Atom{tag: tag, offset: tpl.offset, content: tpl.content()}
	if tpl.offset > 0 {
		if _, err = r.Seek(int64(tpl.offset), io.SeekCurrent); err != nil {
			err = ioErr("skip atom offset", err)
			return
		}
	}
	err = a.content.Parse(r, body-tpl.offset)
	return
}

// FindAtom walks atoms along path and returns the first match, or nil.
func FindAtom(atoms []Atom, path ...Tag) *Atom {
	if len(path) == 0 {
		return nil
	}
	for i := range atoms {
		if atoms[i].tag != path[0] {
			continue
		}
		if len(path) == 1 {
			return &atoms[i]
		}
		if r := FindAtom(atoms[i].content.atoms, path[1:]...); r != nil {
			return r
		}
	}
	return nil
}

func printatom(out io.Writer, a Atom, depth int) {
	fmt.Fprintf(out,
		"%s%s size=%d",
		strings.Repeat(" ", depth*2), a.tag, a.Len(),
	)
	if a.tag == UUID {
		fmt.Fprint(out, " usertype=", a.usertype)
	}
	if d, ok := a.content.Data(); ok {
		fmt.Fprint(out, " ", d.String())
	}
	fmt.Fprintln(out)

	for _, child := range a.content.atoms {
		printatom(out, child, depth+1)
	}
}

// FprintAtoms dumps the atom tree to out, one atom per line.
func FprintAtoms(out io.Writer, atoms []Atom) {
	for _, a := range atoms {
		printatom(out, a, 0)
	}
}
