package reactor

import (
	"bytes"
	"testing"

	"github.com/indigo-web/reactor/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestApp_Tune(t *testing.T) {
	cfg := config.Default()
	cfg.Static.Root = "/srv/www"
	cfg.Headers.Number.Maximal = 0

	app := New().Tune(cfg)
	require.Equal(t, "/srv/www", app.Config().Static.Root)
	require.Equal(t, config.Default().Headers.Number.Maximal, app.Config().Headers.Number.Maximal)
}

func TestNewLogger(t *testing.T) {
	t.Run("level", func(t *testing.T) {
		out := new(bytes.Buffer)
		log, err := NewLogger(config.Log{Level: "warn"}, out)
		require.NoError(t, err)

		log.Info().Msg("hidden")
		require.Empty(t, out.String())
		log.Warn().Str("conn", "abc").Msg("shown")
		require.Contains(t, out.String(), `"conn":"abc"`)
		require.Contains(t, out.String(), `"message":"shown"`)
	})

	t.Run("console", func(t *testing.T) {
		out := new(bytes.Buffer)
		log, err := NewLogger(config.Log{Level: "info", Console: true}, out)
		require.NoError(t, err)

		log.Info().Msg("listening")
		require.Contains(t, out.String(), "listening")
		require.NotContains(t, out.String(), `"message"`)
	})

	t.Run("bad level", func(t *testing.T) {
		_, err := NewLogger(config.Log{Level: "loud"}, new(bytes.Buffer))
		require.Error(t, err)
	})

	t.Run("disabled", func(t *testing.T) {
		log, err := NewLogger(config.Log{Level: "disabled"}, new(bytes.Buffer))
		require.NoError(t, err)
		require.Equal(t, zerolog.Disabled, log.GetLevel())
	})
}
