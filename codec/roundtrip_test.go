package codec

import (
	"testing"

	"github.com/andastra/gff/format"
	"github.com/andastra/gff/tree"
	"github.com/stretchr/testify/require"
)

// roundTrip encodes doc, decodes the bytes, and requires deep equality.
func roundTrip(t *testing.T, doc *tree.Document) *tree.Document {
	t.Helper()

	data, err := Encode(doc)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	require.True(t, tree.Equal(doc, decoded), "decode(encode(doc)) must deep-equal doc")

	return decoded
}

// buildKitchenSink exercises every field type plus nested structs and lists.
func buildKitchenSink(t *testing.T) *tree.Document {
	t.Helper()

	doc := tree.New("UTC ")
	root := doc.Root
	root.SetID(0xFFFFFFFF)

	set := func(label string, typ format.FieldType, value any) {
		require.NoError(t, root.Set(label, typ, value))
	}

	set("Byte", format.TypeByte, uint8(200))
	set("Char", format.TypeChar, int8(-5))
	set("Word", format.TypeWord, uint16(60000))
	set("Short", format.TypeShort, int16(-12345))
	set("DWord", format.TypeDWord, uint32(4000000000))
	set("Int", format.TypeInt, int32(-2000000000))
	set("DWord64", format.TypeDWord64, uint64(0xDEADBEEFCAFEF00D))
	set("Int64", format.TypeInt64, int64(-9000000000000))
	set("Float", format.TypeFloat, float32(1.5))
	set("Double", format.TypeDouble, 2.718281828)
	set("String", format.TypeString, "The Ebon Hawk")
	set("TemplateResRef", format.TypeResRef, tree.ResRef("p_hk47"))
	set("Data", format.TypeBinary, []byte{0x01, 0x02, 0x00, 0xFF})
	set("Position", format.TypeVector3, tree.Vector3{X: 12.5, Y: -3.25, Z: 0.125})
	set("Orientation", format.TypeVector4, tree.Vector4{X: 0, Y: 0, Z: 0.7071, W: 0.7071})

	var name tree.LocString
	name = tree.StringRef(31360)
	name.SetText(0, tree.GenderMasculine, "HK-47")
	set("FirstName", format.TypeLocString, name)

	var desc tree.LocString
	desc.SetText(0, tree.GenderMasculine, "Statement: a droid.")
	desc.SetText(2, tree.GenderFeminine, "Un droïde.")
	set("Description", format.TypeLocString, desc)

	sub := tree.NewStruct(7)
	require.NoError(t, sub.Set("Skill", format.TypeByte, uint8(3)))
	set("SkillList", format.TypeStruct, sub)

	items := tree.NewList()
	for i, res := range []string{"g_w_blaster01", "g_i_medkit02", ""} {
		item := items.Append(uint32(i))
		require.NoError(t, item.Set("InventoryRes", format.TypeResRef, tree.ResRef(res)))
		require.NoError(t, item.Set("Repos_PosX", format.TypeWord, uint16(i)))
	}
	set("ItemList", format.TypeList, items)

	return doc
}

func TestRoundTrip_KitchenSink(t *testing.T) {
	doc := buildKitchenSink(t)
	decoded := roundTrip(t, doc)

	// Spot-check a few values on the decoded side.
	require.Equal(t, uint64(0xDEADBEEFCAFEF00D), decoded.Root.DWord64("DWord64", 0))
	require.Equal(t, tree.ResRef("p_hk47"), decoded.Root.ResRef("TemplateResRef", ""))
	require.Equal(t, tree.Vector3{X: 12.5, Y: -3.25, Z: 0.125}, decoded.Root.Vector3("Position", tree.Vector3{}))

	name := decoded.Root.LocString("FirstName")
	require.NotNil(t, name.Ref)
	require.Equal(t, uint32(31360), *name.Ref)
	require.Equal(t, "HK-47", name.First(""))

	desc := decoded.Root.LocString("Description")
	require.Nil(t, desc.Ref, "absent string ref must decode to an explicit no-reference")
	require.Equal(t, "Un droïde.", desc.Text(2, tree.GenderFeminine, ""))

	items := decoded.Root.List("ItemList")
	require.NotNil(t, items)
	require.Equal(t, 3, items.Len())
	require.Equal(t, tree.ResRef("g_i_medkit02"), items.At(1).ResRef("InventoryRes", ""))
}

func TestRoundTrip_ReEncodeIdempotence(t *testing.T) {
	doc := buildKitchenSink(t)

	first, err := Encode(doc)
	require.NoError(t, err)
	decoded1, err := Decode(first)
	require.NoError(t, err)

	second, err := Encode(decoded1)
	require.NoError(t, err)
	decoded2, err := Decode(second)
	require.NoError(t, err)

	require.True(t, tree.Equal(decoded1, decoded2))
	require.Equal(t, decoded1.Fingerprint(), decoded2.Fingerprint())

	// This encoder is deterministic on a freshly decoded tree, so the
	// second generation of bytes is stable as well.
	third, err := Encode(decoded2)
	require.NoError(t, err)
	require.Equal(t, second, third)
}

func TestRoundTrip_ListOfResRefs(t *testing.T) {
	doc := tree.New("GIT ")

	list := tree.NewList()
	for i := 0; i < 3; i++ {
		entry := list.Append(uint32(i))
		require.NoError(t, entry.Set("TemplateResRef", format.TypeResRef, tree.ResRef("c_bantha")))
	}
	require.NoError(t, doc.Root.Set("CreatureList", format.TypeList, list))

	decoded := roundTrip(t, doc)

	got := decoded.Root.List("CreatureList")
	require.NotNil(t, got)
	require.Equal(t, 3, got.Len())
	for i := 0; i < got.Len(); i++ {
		require.Equal(t, tree.ResRef("c_bantha"), got.At(i).ResRef("TemplateResRef", ""))
	}
}

func TestRoundTrip_DeepNesting(t *testing.T) {
	doc := tree.New("DLG ")
	current := doc.Root
	for i := 0; i < 100; i++ {
		next := tree.NewStruct(uint32(i))
		require.NoError(t, next.Set("Depth", format.TypeInt, int32(i)))
		require.NoError(t, current.Set("Reply", format.TypeStruct, next))
		current = next
	}

	roundTrip(t, doc)

	t.Run("Decoder depth bound on genuine nesting", func(t *testing.T) {
		data, err := Encode(doc)
		require.NoError(t, err)

		_, err = Decode(data, WithMaxDepth(10))
		require.Error(t, err)
	})
}

func TestRoundTrip_EmptyContainers(t *testing.T) {
	doc := tree.New("ARE ")
	require.NoError(t, doc.Root.Set("EmptyList", format.TypeList, tree.NewList()))
	require.NoError(t, doc.Root.Set("EmptyStruct", format.TypeStruct, tree.NewStruct(99)))
	require.NoError(t, doc.Root.Set("EmptyString", format.TypeString, ""))
	require.NoError(t, doc.Root.Set("EmptyBlob", format.TypeBinary, []byte{}))

	decoded := roundTrip(t, doc)

	require.Equal(t, 0, decoded.Root.List("EmptyList").Len())
	require.Equal(t, uint32(99), decoded.Root.Struct("EmptyStruct").ID())
}

func TestDecode_NodeLimit(t *testing.T) {
	// A document with many list entries trips a small node bound.
	doc := tree.New("GIT ")
	list := tree.NewList()
	for i := 0; i < 50; i++ {
		list.Append(uint32(i))
	}
	require.NoError(t, doc.Root.Set("L", format.TypeList, list))

	data, err := Encode(doc)
	require.NoError(t, err)

	_, err = Decode(data, WithMaxNodes(10))
	require.Error(t, err)

	_, err = Decode(data)
	require.NoError(t, err)
}
