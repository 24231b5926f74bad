package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_EnvDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.Equal(t, "change-me", cfg.APIKey)
	require.Equal(t, `^\d{4,6}$`, cfg.OrderIDRegex)
	require.True(t, cfg.EnforceIPAllowlist)
	require.Equal(t, []string{"34.228.46.223", "34.230.166.144"}, cfg.AllowedProxyIPs)
	require.Equal(t, "support", cfg.SupportContact)

	require.True(t, cfg.Commerce.Enable)
	require.Equal(t, "https://api.commerce7.com/v1", cfg.Commerce.BaseURL)
	require.Equal(t, 3, cfg.Commerce.TimeoutS)
	require.Equal(t, ShapeSearchDetail, cfg.Commerce.Shape)

	require.False(t, cfg.Shipping.Enable)
	require.Equal(t, ModeEnrichment, cfg.Shipping.Mode)
	require.Equal(t, "https://developer.wineshipping.com/api/v3.1", cfg.Shipping.BaseURL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("API_KEY", "secret")
	t.Setenv("ORDER_ID_REGEX", `^#?\d{4,6}$`)
	t.Setenv("ENFORCE_IP_ALLOWLIST", "false")
	t.Setenv("ALLOWED_PROXY_IPS", "1.2.3.4, 5.6.7.8")
	t.Setenv("SUPPORT_CONTACT", "help@winery.example")
	t.Setenv("C7_APP_ID", "app")
	t.Setenv("C7_API_SHAPE", ShapeSearchEmbedded)
	t.Setenv("WS_ENABLE", "true")
	t.Setenv("WS_API_KEY", "ws-key")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "secret", cfg.APIKey)
	require.Equal(t, `^#?\d{4,6}$`, cfg.OrderIDRegex)
	require.False(t, cfg.EnforceIPAllowlist)
	require.Equal(t, []string{"1.2.3.4", "5.6.7.8"}, cfg.AllowedProxyIPs)
	require.Equal(t, "help@winery.example", cfg.SupportContact)
	require.Equal(t, ShapeSearchEmbedded, cfg.Commerce.Shape)
	require.True(t, cfg.Shipping.Enable)
	require.Equal(t, "ws-key", cfg.Shipping.APIKey)
}

func TestLoad_YAMLFileWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http_addr: ":9090"
api_key: from-file
support_contact: the tasting room
`), 0o600))

	t.Setenv("API_KEY", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTPAddr)
	require.Equal(t, "from-env", cfg.APIKey)
	require.Equal(t, "the tasting room", cfg.SupportContact)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/does/not/exist.yaml")
	require.Error(t, err)
}

func TestValidate_Combinations(t *testing.T) {
	t.Setenv("C7_API_SHAPE", "weird")
	_, err := Load("")
	require.Error(t, err)
	t.Setenv("C7_API_SHAPE", ShapeSearchDetail)

	t.Setenv("WS_MODE", "weird")
	_, err = Load("")
	require.Error(t, err)

	// Commerce off demands sole-source shipping.
	t.Setenv("WS_MODE", ModeEnrichment)
	t.Setenv("C7_ENABLE", "false")
	_, err = Load("")
	require.Error(t, err)

	// Sole-source demands the shipping integration on.
	t.Setenv("WS_MODE", ModeSoleSource)
	t.Setenv("WS_ENABLE", "false")
	_, err = Load("")
	require.Error(t, err)

	// Sole-source alongside an enabled commerce system is a hybrid the
	// service does not run; the modes are alternate deployments.
	t.Setenv("WS_ENABLE", "true")
	t.Setenv("C7_ENABLE", "true")
	_, err = Load("")
	require.Error(t, err)

	t.Setenv("C7_ENABLE", "false")
	cfg, err := Load("")
	require.NoError(t, err)
	require.False(t, cfg.Commerce.Enable)
	require.Equal(t, ModeSoleSource, cfg.Shipping.Mode)
}
