package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzePackage_FindsPrimitiveFields(t *testing.T) {
	structs, err := AnalyzePackage("testdata")
	require.NoError(t, err)
	require.Len(t, structs, 1)

	s := structs[0]
	assert.Equal(t, "Account", s.Name)
	assert.Len(t, s.Fields, 4)

	byName := map[string]GenField{}
	for _, f := range s.Fields {
		byName[f.Name] = f
	}
	assert.Equal(t, "id", byName["ID"].JSONName)
	assert.Equal(t, "string", byName["ID"].TypeName)
	assert.True(t, byName["Notes"].Nullable)
	assert.True(t, byName["Notes"].OmitEmpty)
}

func TestCodeGenerator_RendersSchemaConstructor(t *testing.T) {
	structs, err := AnalyzePackage("testdata")
	require.NoError(t, err)

	g := NewCodeGenerator(&GeneratorConfig{Verbose: false})
	src := g.renderFile("testdata", structs)

	assert.Contains(t, src, "func NewAccountClassSchema() *jsonbind.ClassSchema[Account]")
	assert.Contains(t, src, `Name: "id"`)
	assert.Contains(t, src, "jsonbind.ParseString(c)")
	assert.Contains(t, src, "jsonbind.WriteFloat(w, v.Score)")
	assert.True(t, strings.Contains(src, "Nullable: true"))
}

func TestPrimitiveHooks_UnknownTypeFallsBack(t *testing.T) {
	_, ok := primitiveHooks("map[string]any")
	assert.False(t, ok)
}
