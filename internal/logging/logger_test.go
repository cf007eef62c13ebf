// SPDX-License-Identifier: MIT

package logging_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/riemann/internal/logging"
)

func TestNew(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "log.json")
	l, err := logging.New(logging.Config{Level: "warn", OutputPaths: []string{path}})
	require.NoError(t, err)
	require.False(t, l.Core().Enabled(zapcore.InfoLevel))
	require.True(t, l.Core().Enabled(zapcore.WarnLevel))

	child := l.With(zap.String("case", "a"))
	require.NotNil(t, child.Logger)
	_ = l.Sync()
}

func TestNew_BadLevel(t *testing.T) {
	t.Parallel()

	_, err := logging.New(logging.Config{Level: "loud"})
	require.Error(t, err)
}

func TestDefaults(t *testing.T) {
	t.Parallel()

	def, err := logging.New(logging.DefaultConfig())
	require.NoError(t, err)
	require.True(t, def.Core().Enabled(zapcore.InfoLevel))
	nop := logging.Nop()
	require.False(t, nop.Core().Enabled(zapcore.ErrorLevel))

	dev, err := logging.New(logging.Config{Level: "debug", Development: true})
	require.NoError(t, err)
	require.True(t, dev.Core().Enabled(zapcore.DebugLevel))
}
