package gff

import (
	"testing"

	"github.com/andastra/gff/format"
	"github.com/andastra/gff/tree"
	"github.com/stretchr/testify/require"
)

func TestTopLevelRoundTrip(t *testing.T) {
	doc := New("UTC ")
	doc.Root.MustSet("Tag", format.TypeString, "c_bantha").
		MustSet("CurrentHitPoints", format.TypeShort, int16(20))

	items := tree.NewList()
	items.Append(0).MustSet("InventoryRes", format.TypeResRef, tree.ResRef("g_w_blaster01"))
	doc.Root.MustSet("ItemList", format.TypeList, items)

	data, err := Encode(doc)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)

	require.True(t, Equal(doc, decoded))
	require.Equal(t, "c_bantha", decoded.Root.String("Tag", ""))
	require.Equal(t, int16(20), decoded.Root.Short("CurrentHitPoints", 0))
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte("not a gff file"))
	require.Error(t, err)
}
