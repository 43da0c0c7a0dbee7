package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBilingualTextPlainStringResolvesForAnyLanguage(t *testing.T) {
	var b BilingualText
	require.NoError(t, json.Unmarshal([]byte(`"abc"`), &b))

	assert.Equal(t, "abc", b.Resolve("en"))
	assert.Equal(t, "abc", b.Resolve("cn"))
	assert.Equal(t, "abc", b.Resolve("whatever"))
}

func TestBilingualTextObjectResolvesWithCNFallback(t *testing.T) {
	var b BilingualText
	require.NoError(t, json.Unmarshal([]byte(`{"cn":"甲","en":"B"}`), &b))

	assert.Equal(t, "B", b.Resolve("en"))
	assert.Equal(t, "甲", b.Resolve("cn"))
	assert.Equal(t, "甲", b.Resolve("ja"), "Unsupported language keys fall back to cn")
}

func TestBilingualTextMissingEnglishFallsBack(t *testing.T) {
	var b BilingualText
	require.NoError(t, json.Unmarshal([]byte(`{"cn":"只有中文"}`), &b))

	assert.Equal(t, "只有中文", b.Resolve("en"))
}

func TestBilingualTextRoundTripsInArrivalShape(t *testing.T) {
	var plain BilingualText
	require.NoError(t, json.Unmarshal([]byte(`"abc"`), &plain))
	out, err := json.Marshal(plain)
	require.NoError(t, err)
	assert.JSONEq(t, `"abc"`, string(out), "Plain strings must not widen into objects")

	var obj BilingualText
	require.NoError(t, json.Unmarshal([]byte(`{"cn":"甲","en":"B"}`), &obj))
	out, err = json.Marshal(obj)
	require.NoError(t, err)
	assert.JSONEq(t, `{"cn":"甲","en":"B"}`, string(out))
}

func TestBilingualTextRejectsOtherShapes(t *testing.T) {
	var b BilingualText
	assert.Error(t, json.Unmarshal([]byte(`42`), &b))
	assert.Error(t, json.Unmarshal([]byte(`["a"]`), &b))
}

func TestBilingualTextIsZero(t *testing.T) {
	assert.True(t, BilingualText{}.IsZero())
	assert.False(t, PlainText("x").IsZero())
	assert.False(t, Bilingual("甲", "").IsZero())
}
