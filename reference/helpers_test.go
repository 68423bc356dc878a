package reference

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wippyai/datapin/internal/enginetest"
	"github.com/wippyai/datapin/staging"
	"github.com/wippyai/datapin/transcoder"
	"github.com/wippyai/datapin/wire"
)

func setup(t *testing.T) (*enginetest.Engine, Env) {
	t.Helper()
	stager, err := staging.New(staging.Config{Dir: t.TempDir(), Local: true})
	require.NoError(t, err)
	t.Cleanup(func() { stager.Close() })

	fake := enginetest.New(t)
	return fake, Env{
		Engine:  fake,
		Encoder: transcoder.NewEncoder(stager),
		Decoder: transcoder.NewDecoder(stager),
	}
}

func info(t *testing.T, env Env, name string) wire.ElementInfo {
	t.Helper()
	i, err := env.Engine.ElementByName(context.Background(), &wire.ElementName{Name: name})
	require.NoError(t, err)
	return *i
}

func openReference(t *testing.T, env Env, name string) *Reference {
	t.Helper()
	r, err := New(env, info(t, env, name))
	require.NoError(t, err)
	return r
}

func openArray(t *testing.T, env Env, name string) *Array {
	t.Helper()
	a, err := NewArray(env, info(t, env, name))
	require.NoError(t, err)
	return a
}
