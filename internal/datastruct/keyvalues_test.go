package datastruct

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyValue(t *testing.T) {
	t.Run("ordered with duplicates", func(t *testing.T) {
		kv := NewKeyValue(8)
		require.True(t, kv.Add("Accept", "text/html"))
		require.True(t, kv.Add("Host", "localhost"))
		require.True(t, kv.Add("accept", "text/plain"))

		require.Equal(t, 3, kv.Len())
		require.Equal(t, []Pair{
			{Key: "Accept", Value: "text/html"},
			{Key: "Host", Value: "localhost"},
			{Key: "accept", Value: "text/plain"},
		}, kv.pairs)
		require.Equal(t, []string{"text/html", "text/plain"}, kv.Values("ACCEPT"))
	})

	t.Run("values", func(t *testing.T) {
		kv := NewKeyValue(8)
		kv.Add("Connection", "keep-alive")
		kv.Add("connection", "close")

		require.Equal(t, []string{"keep-alive", "close"}, kv.Values("CONNECTION"))
		require.Nil(t, kv.Values("Upgrade"))
	})

	t.Run("limit", func(t *testing.T) {
		kv := NewKeyValue(2)
		require.True(t, kv.Add("a", "1"))
		require.True(t, kv.Add("b", "2"))
		require.False(t, kv.Add("c", "3"))
		require.Equal(t, 2, kv.Len())
		require.Equal(t, 2, kv.Limit())
		require.Nil(t, kv.Values("c"))
	})

	t.Run("clear", func(t *testing.T) {
		kv := NewKeyValue(2)
		kv.Add("a", "1")
		kv.Add("b", "2")
		kv.Clear()
		require.Zero(t, kv.Len())
		require.Nil(t, kv.Values("a"))
		require.True(t, kv.Add("c", "3"))
	})
}
