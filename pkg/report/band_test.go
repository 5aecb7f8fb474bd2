package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(elements []ReportElement) []string {
	result := make([]string, len(elements))
	for i, e := range elements {
		result[i] = e.Name()
	}
	return result
}

func namedLabel(name string) *Element {
	e := NewLabel(name)
	e.SetName(name)
	return e
}

func TestBandAddElementAt(t *testing.T) {
	tests := []struct {
		name     string
		position int
		want     []string
		wantErr  error
	}{
		{name: "front", position: 0, want: []string{"x", "a", "b"}},
		{name: "middle", position: 1, want: []string{"a", "x", "b"}},
		{name: "end", position: 2, want: []string{"a", "b", "x"}},
		{name: "negative", position: -1, want: []string{"a", "b"}, wantErr: ErrIndexOutOfBounds},
		{name: "past end", position: 3, want: []string{"a", "b"}, wantErr: ErrIndexOutOfBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			band := NewBand()
			require.NoError(t, band.AddElements(namedLabel("a"), namedLabel("b")))
			x := namedLabel("x")
			err := band.AddElementAt(tt.position, x)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.True(t, IsStructureError(err), "error %T is not a StructureError", err)
				assert.Nil(t, x.Parent(), "rejected element got a parent")
			} else {
				require.NoError(t, err)
				assert.Equal(t, Section(band), x.Parent(), "added element has the wrong parent")
			}
			assert.Equal(t, tt.want, names(band.Elements()))
		})
	}
}

func TestBandRejectsNil(t *testing.T) {
	band := NewBand()
	var typedNil *Band
	tests := []struct {
		name string
		add  func() error
	}{
		{name: "nil interface", add: func() error { return band.AddElement(nil) }},
		{name: "typed nil", add: func() error { return band.AddElement(typedNil) }},
		{name: "set nil", add: func() error {
			if err := band.AddElement(NewLabel("a")); err != nil {
				return err
			}
			return band.SetElementAt(0, nil)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.add(), ErrNilElement)
		})
	}
}

func TestSingleParentInvariant(t *testing.T) {
	a := NewBand()
	b := NewBand()
	e := namedLabel("e")
	require.NoError(t, b.AddElement(e))

	require.NoError(t, a.AddElement(e))
	assert.Equal(t, Section(a), e.Parent())
	assert.Zero(t, b.ElementCount(), "previous parent still lists the element")
	assert.Equal(t, -1, b.IndexOf(e))

	// Moving into a fixed slot detaches from the band as well.
	g := NewRelationalGroup()
	header := NewGroupHeader()
	require.NoError(t, a.AddElement(header))
	require.NoError(t, g.SetHeader(header))
	assert.Equal(t, -1, a.IndexOf(header), "slot assignment did not move the header")
	assert.Equal(t, Section(g), header.Parent())
}

func TestReAddToSameBandIsNoop(t *testing.T) {
	band := NewBand()
	a, b := namedLabel("a"), namedLabel("b")
	require.NoError(t, band.AddElements(a, b))
	before := band.ChangeTracker()

	require.NoError(t, band.AddElementAt(0, b))
	require.NoError(t, band.SetElementAt(0, b))
	assert.Equal(t, []string{"a", "b"}, names(band.Elements()))
	assert.Equal(t, before, band.ChangeTracker(), "no-op re-add changed the tracker")
}

func TestCycleRejection(t *testing.T) {
	outer := NewBand()
	inner := NewBand()
	leaf := namedLabel("leaf")
	require.NoError(t, outer.AddElement(inner))
	require.NoError(t, inner.AddElement(leaf))

	tests := []struct {
		name string
		add  func() error
	}{
		{name: "self", add: func() error { return outer.AddElement(outer) }},
		{name: "parent into child", add: func() error { return inner.AddElement(outer) }},
		{name: "set parent into child", add: func() error { return inner.SetElementAt(0, outer) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outerTracker, innerTracker := outer.ChangeTracker(), inner.ChangeTracker()
			require.ErrorIs(t, tt.add(), ErrLoopDetected)

			assert.Nil(t, outer.Parent())
			assert.Equal(t, Section(outer), inner.Parent())
			assert.Equal(t, Section(inner), leaf.Parent())
			assert.Equal(t, 1, outer.ElementCount())
			assert.Equal(t, 1, inner.ElementCount())
			assert.Equal(t, outerTracker, outer.ChangeTracker(), "rejected change fired notifications")
			assert.Equal(t, innerTracker, inner.ChangeTracker(), "rejected change fired notifications")
		})
	}
}

func TestCycleRejectionInReport(t *testing.T) {
	r := sampleReport(t)
	assert.ErrorIs(t, r.ItemBand().AddElement(r), ErrLoopDetected, "adding the report below itself")

	region := r.GroupByName("Region").(*RelationalGroup)
	holder := region.Parent().(*SubGroupBody)
	assert.ErrorIs(t, region.SetBody(holder), ErrLoopDetected, "nesting a body below itself")
	assert.Equal(t, Section(holder), region.Parent(), "tree changed after rejected body")
	assert.Equal(t, TopLevelGroup(region), holder.Group())
}

func TestBandRemoveAndSet(t *testing.T) {
	band := NewBand()
	a, b, c := namedLabel("a"), namedLabel("b"), namedLabel("c")
	require.NoError(t, band.AddElements(a, b))

	require.NoError(t, band.SetElementAt(1, c))
	assert.Nil(t, b.Parent(), "SetElementAt did not release the replaced element")
	assert.Equal(t, Section(band), c.Parent())

	band.RemoveElement(a)
	assert.Nil(t, a.Parent(), "removed element kept its parent")
	band.RemoveElement(b) // not a child: ignored
	assert.Equal(t, []string{"c"}, names(band.Elements()))

	assert.ErrorIs(t, band.RemoveElementAt(5), ErrIndexOutOfBounds)
	assert.Nil(t, band.ElementAt(5))
	assert.Nil(t, band.ElementAt(-1))
	assert.Equal(t, ReportElement(c), band.ElementByName("c"))
}

func TestBandRemoveReleasesSlot(t *testing.T) {
	band := NewBand()
	a, b, c := namedLabel("a"), namedLabel("b"), namedLabel("c")
	require.NoError(t, band.AddElements(a, b, c))

	require.NoError(t, band.RemoveElementAt(0))
	require.Len(t, band.elements, 2)
	tail := band.elements[:cap(band.elements)]
	for i := len(band.elements); i < len(tail); i++ {
		assert.Nil(t, tail[i], "removed slot %d still references an element", i)
	}

	band.RemoveElement(c)
	tail = band.elements[:cap(band.elements)]
	for i := len(band.elements); i < len(tail); i++ {
		assert.Nil(t, tail[i], "removed slot %d still references an element", i)
	}
	assert.Equal(t, []string{"b"}, names(band.Elements()))
}

func TestBandElementsCache(t *testing.T) {
	band := NewBand()
	require.NoError(t, band.AddElement(namedLabel("a")))
	first := band.Elements()
	second := band.Elements()
	assert.Same(t, &first[0], &second[0], "Elements() rebuilt an unchanged cache")

	require.NoError(t, band.AddElement(namedLabel("b")))
	assert.Len(t, first, 1, "structural change modified a previously returned slice")
	assert.Len(t, band.Elements(), 2)
}

func TestPageBandFlags(t *testing.T) {
	header := NewPageHeader()
	assert.True(t, header.IsDisplayOnFirstPage())
	assert.True(t, header.IsDisplayOnLastPage())
	header.SetDisplayOnFirstPage(false)
	assert.False(t, header.IsDisplayOnFirstPage(), "SetDisplayOnFirstPage(false) had no effect")

	gh := NewGroupHeader()
	gh.SetRepeat(true)
	assert.True(t, gh.Clone().(*GroupHeader).IsRepeat(), "repeat flag lost on clone")
}
