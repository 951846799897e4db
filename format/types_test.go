package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFieldType_Valid(t *testing.T) {
	for tag := FieldType(0); tag < 18; tag++ {
		require.True(t, tag.Valid(), "tag %d should be valid", tag)
	}

	require.False(t, FieldType(18).Valid())
	require.False(t, FieldType(255).Valid())
	require.False(t, FieldType(0xFFFFFFFF).Valid())
}

func TestFieldType_StoredInline(t *testing.T) {
	inline := []FieldType{TypeByte, TypeChar, TypeWord, TypeShort, TypeDWord, TypeInt, TypeFloat}
	for _, tag := range inline {
		require.True(t, tag.StoredInline(), "%s should be inline", tag)
		require.False(t, tag.InFieldDataArena(), "%s should not be in the arena", tag)
	}

	arena := []FieldType{
		TypeDWord64, TypeInt64, TypeDouble, TypeString, TypeResRef,
		TypeLocString, TypeBinary, TypeVector4, TypeVector3,
	}
	for _, tag := range arena {
		require.False(t, tag.StoredInline(), "%s should not be inline", tag)
		require.True(t, tag.InFieldDataArena(), "%s should be in the arena", tag)
	}

	// Struct and List are neither inline values nor arena payloads: their
	// slots hold a struct index and a list-indices offset respectively.
	require.False(t, TypeStruct.StoredInline())
	require.False(t, TypeStruct.InFieldDataArena())
	require.False(t, TypeList.StoredInline())
	require.False(t, TypeList.InFieldDataArena())
}

func TestFieldType_String(t *testing.T) {
	require.Equal(t, "Byte", TypeByte.String())
	require.Equal(t, "LocString", TypeLocString.String())
	require.Equal(t, "Vector3", TypeVector3.String())
	require.Equal(t, "Unknown", FieldType(42).String())
}
