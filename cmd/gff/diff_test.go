package main

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/andastra/gff/format"
	"github.com/andastra/gff/tree"
)

func TestDiffDocuments(t *testing.T) {
	color.NoColor = true

	t.Run("Identical documents produce no lines", func(t *testing.T) {
		a := tree.New("GFF ")
		a.Root.MustSet("Tag", format.TypeString, "door01")
		b := tree.New("GFF ")
		b.Root.MustSet("Tag", format.TypeString, "door01")

		require.Empty(t, diffDocuments(a, b))
	})

	t.Run("Struct id mismatch is reported", func(t *testing.T) {
		a := tree.New("GFF ")
		b := tree.New("GFF ")
		b.Root.SetID(7)

		require.Equal(t,
			[]string{"~ /: struct id 4294967295 vs 7"},
			diffDocuments(a, b))
	})

	t.Run("Nested struct id mismatch carries the path", func(t *testing.T) {
		a := tree.New("GIT ")
		listA := tree.NewList()
		listA.Append(1)
		a.Root.MustSet("CreatureList", format.TypeList, listA)

		b := tree.New("GIT ")
		listB := tree.NewList()
		listB.Append(2)
		b.Root.MustSet("CreatureList", format.TypeList, listB)

		require.Equal(t,
			[]string{"~ /CreatureList[0]/: struct id 1 vs 2"},
			diffDocuments(a, b))
	})

	t.Run("Field presence, type and value", func(t *testing.T) {
		a := tree.New("UTC ")
		a.Root.MustSet("Tag", format.TypeString, "a").
			MustSet("HP", format.TypeShort, int16(10)).
			MustSet("OnlyA", format.TypeByte, uint8(1))

		b := tree.New("UTC ")
		b.Root.MustSet("Tag", format.TypeString, "b").
			MustSet("HP", format.TypeDWord, uint32(10)).
			MustSet("OnlyB", format.TypeByte, uint8(1))

		lines := diffDocuments(a, b)
		require.Equal(t, []string{
			`~ /Tag: "a" vs "b"`,
			"~ /HP: type Short vs DWord",
			"- /OnlyA (Byte) only in A",
			"+ /OnlyB (Byte) only in B",
		}, lines)
	})

	t.Run("List length mismatch", func(t *testing.T) {
		a := tree.New("GIT ")
		listA := tree.NewList()
		listA.Append(0)
		listA.Append(0)
		a.Root.MustSet("L", format.TypeList, listA)

		b := tree.New("GIT ")
		listB := tree.NewList()
		listB.Append(0)
		b.Root.MustSet("L", format.TypeList, listB)

		require.Equal(t,
			[]string{"~ /L: list length 2 vs 1"},
			diffDocuments(a, b))
	})
}
