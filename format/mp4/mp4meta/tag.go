// Package mp4meta
// Created by RTT.
// Author: teocci@yandex.com on 2021-Nov-05
package mp4meta

import (
	"io"

	"github.com/teocci/go-mp4meta/utils/bits/pio"
)

// Tags is the friendly-field view over a file's atom list. Reading
// parses every top-level atom; unknown atoms keep their bytes, so
// WriteTo reproduces the whole file with the edited metadata spliced
// in. Re-serializing shifts atoms after the metadata when its size
// changes, so editing is safe for files whose moov follows mdat; chunk
// offset fixup for the opposite layout is not done here.
type Tags struct {
	atoms []Atom
}

func NewTags() *Tags {
	return &Tags{}
}

// ReadTags parses the whole stream into a tag view.
func ReadTags(r io.ReadSeeker) (*Tags, error) {
	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, ioErr("seek stream end", err)
	}
	if _, err = r.Seek(0, io.SeekStart); err != nil {
		return nil, ioErr("seek stream start", err)
	}
	atoms, err := ParseAtoms(r, int(size))
	if err != nil {
		return nil, err
	}
	return &Tags{atoms: atoms}, nil
}

func (t *Tags) Atoms() []Atom {
	return t.atoms
}

func (t *Tags) Len() (n int) {
	for _, a := range t.atoms {
		n += a.Len()
	}
	return
}

// WriteTo serializes every atom back to w in document order.
func (t *Tags) WriteTo(w io.Writer) error {
	for _, a := range t.atoms {
		if err := a.WriteTo(w); err != nil {
			return err
		}
	}
	return nil
}

// DumpAtoms prints the atom tree, one atom per line.
func (t *Tags) DumpAtoms(w io.Writer) {
	FprintAtoms(w, t.atoms)
}

func (t *Tags) Title() string       { return t.text(NAM) }
func (t *Tags) Artist() string      { return t.text(ART) }
func (t *Tags) AlbumArtist() string { return t.text(AART) }
func (t *Tags) Album() string       { return t.text(ALB) }
func (t *Tags) Genre() string       { return t.text(GEN) }
func (t *Tags) Year() string        { return t.text(DAY) }
func (t *Tags) Comment() string     { return t.text(CMT) }
func (t *Tags) Composer() string    { return t.text(WRT) }
func (t *Tags) Lyrics() string      { return t.text(LYR) }
func (t *Tags) Grouping() string    { return t.text(GRP) }

func (t *Tags) TrackNumber() (num, total int) {
	return t.pair(TRKN)
}

func (t *Tags) DiscNumber() (num, total int) {
	return t.pair(DISK)
}

// Artwork returns the cover art payload, a Jpeg or Png value.
func (t *Tags) Artwork() (Data, bool) {
	d, ok := t.data(COVR)
	if !ok {
		return Data{}, false
	}
	if k := d.Kind(); k != JPEG && k != PNG {
		return Data{}, false
	}
	return d, true
}

func (t *Tags) SetTitle(s string)       { t.set(NAM, Utf8(s)) }
func (t *Tags) SetArtist(s string)      { t.set(ART, Utf8(s)) }
func (t *Tags) SetAlbumArtist(s string) { t.set(AART, Utf8(s)) }
func (t *Tags) SetAlbum(s string)       { t.set(ALB, Utf8(s)) }
func (t *Tags) SetGenre(s string)       { t.set(GEN, Utf8(s)) }
func (t *Tags) SetYear(s string)        { t.set(DAY, Utf8(s)) }
func (t *Tags) SetComment(s string)     { t.set(CMT, Utf8(s)) }
func (t *Tags) SetComposer(s string)    { t.set(WRT, Utf8(s)) }
func (t *Tags) SetLyrics(s string)      { t.set(LYR, Utf8(s)) }
func (t *Tags) SetGrouping(s string)    { t.set(GRP, Utf8(s)) }

func (t *Tags) SetTrackNumber(num, total int) {
	b := make([]byte, 8)
	pio.PutU16BE(b[2:], uint16(num))
	pio.PutU16BE(b[4:], uint16(total))
	t.set(TRKN, Reserved(b))
}

func (t *Tags) SetDiscNumber(num, total int) {
	b := make([]byte, 6)
	pio.PutU16BE(b[2:], uint16(num))
	pio.PutU16BE(b[4:], uint16(total))
	t.set(DISK, Reserved(b))
}

// SetArtwork replaces the cover art; d should be a Jpeg or Png value.
func (t *Tags) SetArtwork(d Data) {
	t.set(COVR, d)
}

// Remove drops the metadata item with the tag, if present.
func (t *Tags) Remove(tag Tag) {
	ilst := FindAtom(t.atoms, MOOV, UDTA, META, ILST)
	if ilst == nil {
		return
	}
	kept := ilst.content.atoms[:0]
	for _, a := range ilst.content.atoms {
		if a.tag != tag {
			kept = append(kept, a)
		}
	}
	ilst.content.atoms = kept
}

func (t *Tags) text(tag Tag) string {
	d, ok := t.data(tag)
	if !ok {
		return ""
	}
	return d.Text()
}

func (t *Tags) pair(tag Tag) (num, total int) {
	d, ok := t.data(tag)
	if !ok || d.Kind() != RESERVED {
		return
	}
	b := d.Bytes()
	if len(b) < 6 {
		return
	}
	num = int(pio.U16BE(b[2:]))
	total = int(pio.U16BE(b[4:]))
	return
}

func (t *Tags) data(tag Tag) (Data, bool) {
	item := FindAtom(t.atoms, MOOV, UDTA, META, ILST, tag)
	if item == nil {
		return Data{}, false
	}
	da := FindAtom(item.content.atoms, DATA)
	if da == nil {
		return Data{}, false
	}
	return da.content.Data()
}

func (t *Tags) set(tag Tag, d Data) {
	ilst := t.ensureIlst()
	for i := range ilst.content.atoms {
		if ilst.content.atoms[i].tag == tag {
			ilst.content.atoms[i] = AtomWith(tag, 0, DataAtomContentWith(d))
			return
		}
	}
	ilst.content = ilst.content.AddAtomWith(tag, 0, DataAtomContentWith(d))
}

func (t *Tags) ensureIlst() *Atom {
	moov := findOrAppend(&t.atoms, MOOV, 0)
	udta := findOrAppend(&moov.content.atoms, UDTA, 0)
	meta := findOrAppend(&udta.content.atoms, META, 4)
	if FindAtom(meta.content.atoms, HDLR) == nil {
		meta.content = meta.content.AddAtom(mdirHandlerAtom())
	}
	return findOrAppend(&meta.content.atoms, ILST, 0)
}

func findOrAppend(atoms *[]Atom, tag Tag, offset int) *Atom {
	for i := range *atoms {
		if (*atoms)[i].tag == tag && (*atoms)[i].content.kind == ContentAtoms {
			return &(*atoms)[i]
		}
	}
	*atoms = append(*atoms, AtomWith(tag, offset, AtomsContent()))
	return &(*atoms)[len(*atoms)-1]
}

// mdirHandlerAtom is the metadata handler reference players expect
// ahead of ilst in a freshly built meta atom.
func mdirHandlerAtom() Atom {
	b := make([]byte, 25)
	copy(b[8:], "mdirappl")
	return AtomWith(HDLR, 0, RawDataContent(Reserved(b)))
}
