package cli_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	upyun "github.com/upyun-contrib/upyun-go"
	"github.com/upyun-contrib/upyun-go/cli"
)

func TestConfigFile_Profiles(t *testing.T) {
	t.Run("add and get", func(t *testing.T) {
		cfg := &cli.ConfigFile{}
		require.NoError(t, cfg.AddProfile(cli.Profile{Name: "prod", Bucket: "b1", Operator: "op"}))
		require.NoError(t, cfg.AddProfile(cli.Profile{Name: "staging", Bucket: "b2", Operator: "op"}))

		p, err := cfg.GetProfile("staging")
		require.NoError(t, err)
		assert.Equal(t, "b2", p.Bucket)
	})

	t.Run("duplicate add", func(t *testing.T) {
		cfg := &cli.ConfigFile{}
		require.NoError(t, cfg.AddProfile(cli.Profile{Name: "prod"}))
		assert.ErrorIs(t, cfg.AddProfile(cli.Profile{Name: "prod"}), cli.ErrProfileExists)
	})

	t.Run("default selection", func(t *testing.T) {
		cfg := &cli.ConfigFile{Profiles: []cli.Profile{
			{Name: "a"},
			{Name: "b", Default: true},
		}}

		p, err := cfg.GetProfile("")
		require.NoError(t, err)
		assert.Equal(t, "b", p.Name)

		require.NoError(t, cfg.SetDefault("a"))
		p, err = cfg.GetDefaultProfile()
		require.NoError(t, err)
		assert.Equal(t, "a", p.Name)
		assert.False(t, cfg.Profiles[1].Default, "previous default is cleared")
	})

	t.Run("first profile wins when none marked", func(t *testing.T) {
		cfg := &cli.ConfigFile{Profiles: []cli.Profile{{Name: "only"}}}
		p, err := cfg.GetDefaultProfile()
		require.NoError(t, err)
		assert.Equal(t, "only", p.Name)
	})

	t.Run("remove", func(t *testing.T) {
		cfg := &cli.ConfigFile{Profiles: []cli.Profile{{Name: "a"}, {Name: "b"}}}
		require.NoError(t, cfg.RemoveProfile("a"))
		assert.Equal(t, []string{"b"}, cfg.ProfileNames())
		assert.ErrorIs(t, cfg.RemoveProfile("a"), cli.ErrProfileNotFound)
	})

	t.Run("empty file", func(t *testing.T) {
		cfg := &cli.ConfigFile{}
		_, err := cfg.GetProfile("any")
		assert.ErrorIs(t, err, cli.ErrNoProfiles)
	})
}

func TestConfigFile_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := &cli.ConfigFile{Profiles: []cli.Profile{
		{Name: "prod", Bucket: "mybucket", Operator: "op", Password: "pw", Endpoint: "telecom", UseHTTPS: true, Default: true},
	}}
	require.NoError(t, cfg.Save(path))

	loaded, err := cli.LoadConfigFile(path)
	require.NoError(t, err)
	require.Len(t, loaded.Profiles, 1)
	assert.Equal(t, cfg.Profiles[0], loaded.Profiles[0])
}

func TestConfig_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cfg := &cli.Config{Bucket: "b", Operator: "o", Password: "p", Endpoint: "cnc"}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("missing credentials", func(t *testing.T) {
		cfg := &cli.Config{Bucket: "b"}
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown endpoint", func(t *testing.T) {
		cfg := &cli.Config{Bucket: "b", Operator: "o", Password: "p", Endpoint: "bogus"}
		assert.Error(t, cfg.Validate())
	})
}

func TestConfig_ClientConfig(t *testing.T) {
	cfg := &cli.Config{Bucket: "b", Operator: "o", Password: "p", Endpoint: "ctt", UseHTTPS: true}
	clientCfg, err := cfg.ClientConfig()
	require.NoError(t, err)
	assert.Equal(t, upyun.EndpointCtt, clientCfg.Endpoint)
	assert.True(t, clientCfg.UseHTTPS)
	assert.Equal(t, "b", clientCfg.Bucket)
}

func TestMergeConfig(t *testing.T) {
	fileCfg := &cli.Config{Bucket: "file-bucket", Operator: "file-op", Password: "file-pw"}
	envCfg := &cli.Config{Operator: "env-op"}
	flagCfg := &cli.Config{Password: "flag-pw", UseHTTPS: true}

	merged := cli.MergeConfig(fileCfg, envCfg, flagCfg)
	assert.Equal(t, "file-bucket", merged.Bucket)
	assert.Equal(t, "env-op", merged.Operator)
	assert.Equal(t, "flag-pw", merged.Password)
	assert.True(t, merged.UseHTTPS)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("UPYUN_BUCKET", "envbucket")
	t.Setenv("UPYUN_OPERATOR", "envop")
	t.Setenv("UPYUN_PASSWORD", "envpw")
	t.Setenv("UPYUN_ENDPOINT", "telecom")
	t.Setenv("UPYUN_HTTPS", "true")

	cfg := cli.ConfigFromEnv()
	assert.Equal(t, "envbucket", cfg.Bucket)
	assert.Equal(t, "envop", cfg.Operator)
	assert.Equal(t, "envpw", cfg.Password)
	assert.Equal(t, "telecom", cfg.Endpoint)
	assert.True(t, cfg.UseHTTPS)
}
