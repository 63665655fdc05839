package buildspec

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DrW3RK/parachain-node/chainspec"
	"github.com/DrW3RK/parachain-node/config"
	"github.com/DrW3RK/parachain-node/log"
)

func writeRuntime(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "runtime.wasm")
	require.NoError(t, os.WriteFile(path, []byte{0x00, 0x61, 0x73, 0x6d}, 0o600))
	return path
}

func TestBuildLive(t *testing.T) {
	var out bytes.Buffer
	err := Build(&out, "live", writeRuntime(t), config.DefaultConfig(), log.NewNopLogger())
	require.NoError(t, err)

	spec, err := chainspec.FromJSON(out.Bytes())
	require.NoError(t, err)
	require.Equal(t, "live", spec.ID)
	require.Equal(t, []byte{0x00, 0x61, 0x73, 0x6d}, spec.Code)

	ext, ok := chainspec.TryGetExtensions(json.RawMessage(out.Bytes()))
	require.True(t, ok)
	require.Equal(t, chainspec.Extensions{RelayChain: "paseo", ParaID: 4540}, *ext)
}

func TestBuildUsesLiveOverrides(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ChainSpec.Live.ParaID = 2000

	var out bytes.Buffer
	require.NoError(t, Build(&out, "live", writeRuntime(t), cfg, log.NewNopLogger()))

	spec, err := chainspec.FromJSON(out.Bytes())
	require.NoError(t, err)
	require.Equal(t, uint32(2000), spec.Extensions.ParaID)
	doc, err := spec.Genesis.Document()
	require.NoError(t, err)
	require.Equal(t, uint32(2000), doc.ParachainInfo.ParachainID)
}

func TestBuildWithoutRuntime(t *testing.T) {
	for _, chainID := range []string{"dev", "local", "live"} {
		var out bytes.Buffer
		err := Build(&out, chainID, "", nil, log.NewNopLogger())
		require.ErrorIs(t, err, chainspec.ErrMissingRuntimeCode, chainID)
		require.Zero(t, out.Len())
	}
}

func TestBuildMissingRuntimeFile(t *testing.T) {
	var out bytes.Buffer
	err := Build(&out, "dev", filepath.Join(t.TempDir(), "missing.wasm"), nil, log.NewNopLogger())
	require.Error(t, err)
	require.Zero(t, out.Len())
}

func TestBuildFromSpecFile(t *testing.T) {
	var first bytes.Buffer
	require.NoError(t, Build(&first, "dev", writeRuntime(t), nil, log.NewNopLogger()))

	path := filepath.Join(t.TempDir(), "dev.json")
	require.NoError(t, os.WriteFile(path, first.Bytes(), 0o600))

	// A spec file carries its own code.
	var second bytes.Buffer
	require.NoError(t, Build(&second, path, "", nil, log.NewNopLogger()))
	require.JSONEq(t, first.String(), second.String())
}

func TestBuildToOutput(t *testing.T) {
	dir := t.TempDir()
	runtime := writeRuntime(t)

	var want bytes.Buffer
	require.NoError(t, Build(&want, "local", runtime, nil, log.NewNopLogger()))

	path := filepath.Join(dir, "local.json")
	require.NoError(t, buildToOutput(path, "local", runtime, nil, log.NewNopLogger()))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, want.String(), string(got))

	err = buildToOutput(filepath.Join(dir, "missing", "local.json"), "local", runtime, nil, log.NewNopLogger())
	require.ErrorContains(t, err, "opening output")

	err = buildToOutput(filepath.Join(dir, "dev.json"), "dev", "", nil, log.NewNopLogger())
	require.ErrorIs(t, err, chainspec.ErrMissingRuntimeCode)
}
