package api

import "os"

// Environment names the runtime context the front end executes in. It is
// injected at client construction rather than sniffed per call, which keeps
// the client testable without faking process-wide state.
type Environment int

const (
	// EnvBrowserProxy is the normal deployment: requests go same-origin and a
	// reverse proxy (or dev server rewrite) forwards the /api prefix.
	EnvBrowserProxy Environment = iota
	// EnvEmbeddedDesktop is the Tauri-embedded deployment: the backend runs
	// as a local sidecar on a fixed loopback port.
	EnvEmbeddedDesktop
)

func (e Environment) String() string {
	switch e {
	case EnvEmbeddedDesktop:
		return "embedded-desktop"
	default:
		return "browser-proxy"
	}
}

// desktopSentinel is set by the desktop shell before it spawns the front end.
const desktopSentinel = "PDC_DESKTOP"

// embeddedBackendURL is the sidecar backend address in the desktop build.
// Deliberately a compiled-in constant, not configuration.
const embeddedBackendURL = "http://localhost:8000"

// DetectEnvironment inspects the desktop sentinel and reports the current
// runtime environment. It is evaluated on demand, never cached at package
// init, since the embedding shell sets the sentinel before launch but after
// the binary is built.
func DetectEnvironment() Environment {
	if os.Getenv(desktopSentinel) != "" {
		return EnvEmbeddedDesktop
	}
	return EnvBrowserProxy
}

// BaseURL returns the backend base URL for the environment: empty (same
// origin) for the browser deployment, the loopback sidecar address for the
// embedded desktop deployment.
func (e Environment) BaseURL() string {
	if e == EnvEmbeddedDesktop {
		return embeddedBackendURL
	}
	return ""
}
