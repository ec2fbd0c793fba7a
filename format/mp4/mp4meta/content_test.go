package mp4meta

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContentLen(t *testing.T) {
	require.Equal(t, 0, EmptyContent().Len())
	require.Equal(t, 0, AtomsContent().Len())
	require.Equal(t, 2, RawDataContent(Utf8("AB")).Len())
	require.Equal(t, 10, TypedDataContent(Utf8("AB")).Len())

	a := DataAtomWith(Utf8("AB"))  // 8 head + 8 datatype head + 2
	b := DataAtomWith(Reserved([]byte{1, 2, 3}))
	c := AtomsContent().AddAtom(a).AddAtom(b)
	require.Equal(t, a.Len()+b.Len(), c.Len())
	require.Equal(t, 18, a.Len())
}

func TestContentBuilderChain(t *testing.T) {
	c := AtomsContent().
		AddAtomWith(NAM, 0, DataAtomContentWith(Utf8("x"))).
		AddDataAtom()
	require.Len(t, c.Children(), 2)
	require.Equal(t, NAM, c.Children()[0].Tag())
	require.Equal(t, DATA, c.Children()[1].Tag())

	// adding to a non-container is a no-op
	e := EmptyContent().AddAtom(DataAtom())
	require.True(t, e.Equal(EmptyContent()))

	r := RawDataContent(Utf8("y")).AddDataAtom()
	require.True(t, r.Equal(RawDataContent(Utf8("y"))))
}

func TestContentEqualVariantAware(t *testing.T) {
	require.False(t, EmptyContent().Equal(AtomsContent()))
	require.False(t, AtomsContent().Equal(EmptyContent()))
	require.True(t, EmptyContent().Equal(EmptyContent()))

	d := Utf8("AB")
	require.False(t, RawDataContent(d).Equal(TypedDataContent(d)))
	require.True(t, TypedDataContent(d).Equal(TypedDataContent(Utf8("AB"))))

	one := AtomContent(DataAtomWith(d))
	two := AtomContent(DataAtomWith(Utf8("ZZ")))
	require.False(t, one.Equal(two))
}

func TestContentTypedDataRoundTrip(t *testing.T) {
	c := TypedDataContent(Utf16("naïve"))

	var buf bytes.Buffer
	require.NoError(t, c.WriteTo(&buf))
	require.Equal(t, c.Len(), buf.Len())

	parsed := TypedDataContent(Unparsed(TYPED))
	require.NoError(t, parsed.Parse(bytes.NewReader(buf.Bytes()), buf.Len()))
	require.True(t, parsed.Equal(c))
}

func TestContentEmptyParseIgnoresLength(t *testing.T) {
	c := EmptyContent()
	require.NoError(t, c.Parse(bytes.NewReader(nil), 128))
	require.Equal(t, 0, c.Len())
}
