package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	secerrors "github.com/provos/terraform-secure/pkg/errors"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	validYAML := `llm:
  provider: openai
  model: gpt-4o-mini
  api_key_env: OPENAI_API_KEY
  temperature: 0.1
cache:
  enabled: false
terraform:
  binary: tofu
`

	invalidYAML := `llm: [not, a, mapping`

	badProvider := `llm:
  provider: bedrock
  model: claude
`

	cases := []struct {
		name     string
		contents string
		assert   func(t *testing.T, settings *Settings, err error)
	}{
		{
			name:     "valid settings are parsed over defaults",
			contents: validYAML,
			assert: func(t *testing.T, settings *Settings, err error) {
				require.NoError(t, err)
				require.Equal(t, "openai", settings.LLM.Provider)
				require.Equal(t, "gpt-4o-mini", settings.LLM.Model)
				require.Equal(t, "tofu", settings.Terraform.Binary)
				require.False(t, settings.Cache.Enabled)
				// unset fields retain defaults
				require.Equal(t, 300, settings.LLM.TimeoutSecs)
			},
		},
		{
			name:     "malformed yaml becomes a parse error",
			contents: invalidYAML,
			assert: func(t *testing.T, settings *Settings, err error) {
				var parseErr *secerrors.ParseError
				require.ErrorAs(t, err, &parseErr)
			},
		},
		{
			name:     "unknown provider is rejected",
			contents: badProvider,
			assert: func(t *testing.T, settings *Settings, err error) {
				var validationErr *secerrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Contains(t, validationErr.Field, "provider")
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "settings.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tc.contents), 0o644))

			settings, err := Load(path)
			tc.assert(t, settings, err)
		})
	}
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	var parseErr *secerrors.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestDefaultsAreValid(t *testing.T) {
	t.Parallel()

	require.NoError(t, Validate(Defaults()))
}

func TestCacheDirPrefersConfiguredValue(t *testing.T) {
	t.Parallel()

	settings := Defaults()
	settings.Cache.Dir = "/tmp/tfsec-cache"
	require.Equal(t, "/tmp/tfsec-cache", settings.CacheDir())
}
