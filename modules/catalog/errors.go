package catalog

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors for catalog operations.
var (
	// ErrCachePluginMissing is returned by Start when no cache plugin was injected.
	ErrCachePluginMissing = errors.New("cache plugin not set - ensure 'cache' plugin is registered")

	// ErrClientNotReady is returned when the module is used before Start.
	ErrClientNotReady = errors.New("catalog client not initialized")
)

// ConfigurationError reports store settings that are missing. The client
// refuses to start rather than sending unauthenticated requests.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return "woocommerce configuration missing: " + strings.Join(e.Missing, ", ")
}

// RemoteError is a non-2xx answer from the store API.
type RemoteError struct {
	Endpoint string
	Status   int
	Reason   string
}

func (e *RemoteError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("woocommerce %s: %d %s: %s", e.Endpoint, e.Status, http.StatusText(e.Status), e.Reason)
	}
	return fmt.Sprintf("woocommerce %s: %d %s", e.Endpoint, e.Status, http.StatusText(e.Status))
}

// IsNotFound reports whether err is a RemoteError with status 404.
func IsNotFound(err error) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.Status == http.StatusNotFound
}
