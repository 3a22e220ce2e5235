package jinakit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewClientFailsWithoutKey(t *testing.T) {
	client, err := NewClient(
		WithKeyResolver(func(explicit, keyName string) (string, error) {
			if explicit != "" {
				return explicit, nil
			}
			return "", ErrMissingAPIKey
		}),
	)

	require.ErrorIs(t, err, ErrMissingAPIKey)
	require.Nil(t, client)
}

func TestNewClientExplicitKeyReachesResolver(t *testing.T) {
	var gotExplicit, gotKeyName string

	client, err := NewClient(
		WithAPIKey("explicit-key"),
		WithKeyResolver(func(explicit, keyName string) (string, error) {
			gotExplicit = explicit
			gotKeyName = keyName
			return explicit, nil
		}),
	)

	require.NoError(t, err)
	require.NotNil(t, client)
	require.Equal(t, "explicit-key", gotExplicit)
	require.Equal(t, KeyName, gotKeyName)
}

func TestNewClientDefaults(t *testing.T) {
	client, err := NewClient(WithAPIKey("k"))
	require.NoError(t, err)
	require.Equal(t, DefaultModel, client.Model())

	client, err = NewClient(WithAPIKey("k"), WithModel("jina-embeddings-v3"))
	require.NoError(t, err)
	require.Equal(t, "jina-embeddings-v3", client.Model())
}

func TestResolveKeyFromEnv(t *testing.T) {
	t.Setenv(KeyName, "from-env")

	key, err := ResolveKeyFromEnv("explicit", KeyName)
	require.NoError(t, err)
	require.Equal(t, "explicit", key)

	key, err = ResolveKeyFromEnv("", KeyName)
	require.NoError(t, err)
	require.Equal(t, "from-env", key)

	t.Setenv(KeyName, "")

	_, err = ResolveKeyFromEnv("", KeyName)
	require.ErrorIs(t, err, ErrMissingAPIKey)
}
