package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileRefList_Value(t *testing.T) {
	t.Run("nil list marshals as empty array", func(t *testing.T) {
		var l FileRefList

		v, err := l.Value()

		assert.NoError(t, err)
		assert.JSONEq(t, `[]`, string(v.([]byte)))
	})

	t.Run("entries keep original field names", func(t *testing.T) {
		l := FileRefList{{BlobKey: "uploads/u/k.png", URL: "https://cdn/k", FileName: "k.png"}}

		v, err := l.Value()

		assert.NoError(t, err)
		assert.JSONEq(t, `[{"blobKey":"uploads/u/k.png","url":"https://cdn/k","fileName":"k.png"}]`, string(v.([]byte)))
	})
}

func TestFileRefList_Scan(t *testing.T) {
	t.Run("bytes", func(t *testing.T) {
		var l FileRefList
		err := l.Scan([]byte(`[{"blobKey":"a","url":"b","fileName":"c"}]`))

		assert.NoError(t, err)
		assert.Equal(t, FileRefList{{BlobKey: "a", URL: "b", FileName: "c"}}, l)
	})

	t.Run("string", func(t *testing.T) {
		var l FileRefList
		err := l.Scan(`[]`)

		assert.NoError(t, err)
		assert.Empty(t, l)
	})

	t.Run("nil column yields empty list", func(t *testing.T) {
		var l FileRefList
		err := l.Scan(nil)

		assert.NoError(t, err)
		assert.NotNil(t, l)
		assert.Empty(t, l)
	})

	t.Run("unsupported type rejected", func(t *testing.T) {
		var l FileRefList
		err := l.Scan(42)

		assert.Error(t, err)
	})
}
