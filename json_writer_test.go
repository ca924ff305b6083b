package stockboard

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJsonObjectWriter(t *testing.T) {
	t.Run("empty object", func(t *testing.T) {
		var w jsonObjectWriter
		got, err := w.MarshalJSON()
		require.NoError(t, err)
		assert.Equal(t, "{}", string(got))
	})

	t.Run("keeps insertion order", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("z", 1).Append("a", "hello").Append("m", true)
		got, err := w.MarshalJSON()
		require.NoError(t, err)
		assert.Equal(t, `{"z":1,"a":"hello","m":true}`, string(got))
	})

	t.Run("escapes keys", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append(`a"b`, 1)
		got, err := w.MarshalJSON()
		require.NoError(t, err)
		assert.True(t, json.Valid(got))
	})

	t.Run("raw values", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("a", json.RawMessage(`{"c":3}`))
		got, err := w.MarshalJSON()
		require.NoError(t, err)
		assert.Equal(t, `{"a":{"c":3}}`, string(got))
	})

	t.Run("optional fields", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("a", 0) // a zero value is still added by Append.
		w.Optional("b", "")
		w.Optional("c", 0)
		w.Optional("d", "hello")
		got, err := w.MarshalJSON()
		require.NoError(t, err)
		assert.Equal(t, `{"a":0,"d":"hello"}`, string(got))
	})

	t.Run("error is sticky", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("bad", make(chan int))
		w.Append("ok", 1)
		_, err := w.MarshalJSON()
		assert.Error(t, err)
	})
}
