package cosmos

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, v := range []string{EnvKey, EnvEndpoint, EnvDatabase, EnvContainer, EnvDevicesContainer} {
		t.Setenv(v, "")
	}
}

func setAll(t *testing.T) {
	t.Helper()
	t.Setenv(EnvKey, "c2VjcmV0")
	t.Setenv(EnvEndpoint, "https://example.documents.azure.com:443/")
	t.Setenv(EnvDatabase, "loans-db")
	t.Setenv(EnvContainer, "loans")
}

func TestFromEnv_ReportsEveryMissingVariable(t *testing.T) {
	clearEnv(t)

	_, err := FromEnv()
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, []string{EnvKey, EnvEndpoint, EnvDatabase, EnvContainer}, cfgErr.Missing)
	assert.Contains(t, cfgErr.Error(), EnvKey)
}

func TestFromEnv_PartiallyMissing(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvKey, "c2VjcmV0")
	t.Setenv(EnvDatabase, "loans-db")

	_, err := FromEnv()
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, []string{EnvEndpoint, EnvContainer}, cfgErr.Missing)
}

func TestFromEnv_Complete(t *testing.T) {
	clearEnv(t)
	setAll(t)

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "loans", cfg.Container)
	// デバイスカタログのコンテナ名は既定値が入る
	assert.Equal(t, "products", cfg.DevicesContainer)

	t.Setenv(EnvDevicesContainer, "catalogue")
	cfg, err = FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "catalogue", cfg.DevicesContainer)
}

func TestProvider_MissingConfigIsTypedAndCached(t *testing.T) {
	clearEnv(t)

	p := NewProvider()
	_, err := p.LoansContainer()
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)

	// 後から環境変数を足しても、同じハンドルは最初の結果を返し続ける
	setAll(t)
	_, err2 := p.LoansContainer()
	assert.ErrorAs(t, err2, &cfgErr)
}

func TestProvider_ConnectsOnce(t *testing.T) {
	clearEnv(t)
	setAll(t)

	// キーが base64 として不正だと資格情報の構築で落ちる。
	// 同じ Provider は同じエラーを返し続ける。
	t.Setenv(EnvKey, "%%%not-base64%%%")
	p := NewProvider()
	_, err := p.LoansContainer()
	require.Error(t, err)
	var cfgErr *ConfigError
	assert.False(t, errors.As(err, &cfgErr), "credential errors are not config errors")

	_, err2 := p.DevicesContainer()
	assert.Equal(t, err, err2)
}
