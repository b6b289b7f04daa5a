package api

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectEnvironment_SentinelAbsent(t *testing.T) {
	t.Setenv(desktopSentinel, "")

	env := DetectEnvironment()
	require.Equal(t, EnvBrowserProxy, env)
	require.Equal(t, "", env.BaseURL())
}

func TestDetectEnvironment_SentinelPresent(t *testing.T) {
	t.Setenv(desktopSentinel, "1")

	env := DetectEnvironment()
	require.Equal(t, EnvEmbeddedDesktop, env)
	require.Equal(t, "http://localhost:8000", env.BaseURL())
}

func TestNew_BaseURLFollowsEnvironment(t *testing.T) {
	require.Equal(t, "", New(EnvBrowserProxy).baseURL)
	require.Equal(t, "http://localhost:8000", New(EnvEmbeddedDesktop).baseURL)
}

func TestEnvironmentString(t *testing.T) {
	require.Equal(t, "browser-proxy", EnvBrowserProxy.String())
	require.Equal(t, "embedded-desktop", EnvEmbeddedDesktop.String())
}
