package common

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	// DefaultKVEndpoint is the path prefix of the key-value API
	DefaultKVEndpoint = "/v1/kv/"
	// DefaultAddress is the address of a local agent
	DefaultAddress = "http://localhost:8500"
)

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// configWriter collects sections and fields for the String() methods of the config structs
type configWriter struct {
	sb strings.Builder
}

func (w *configWriter) section(title string) {
	w.sb.WriteString("\n")
	w.sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
}

func (w *configWriter) field(name, value string) {
	w.sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
}

// normalizeKVEndpoint makes sure the endpoint starts and ends with a slash
func normalizeKVEndpoint(endpoint string) string {
	if endpoint == "" {
		return DefaultKVEndpoint
	}
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	if !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}
	return endpoint
}

// --------------------------------------------------------------------------
// Client configuration struct
// --------------------------------------------------------------------------

// ClientConfig holds all parameters of the HTTP store client.
type ClientConfig struct {
	// Address is the base URL of the store (e.g. http://localhost:8500)
	Address string
	// KVEndpoint is the path prefix of the key-value API (e.g. /v1/kv/)
	KVEndpoint string
	// TimeoutSecond bounds every request (0 = no timeout)
	TimeoutSecond int
	// MaxIdleConns is the size of the idle connection pool
	MaxIdleConns int
	// Token is sent as X-Consul-Token when not empty
	Token string
}

// Validate checks the configuration and normalizes the KV endpoint
func (c *ClientConfig) Validate() error {
	if c.Address == "" {
		return fmt.Errorf("no address provided")
	}
	u, err := url.Parse(c.Address)
	if err != nil {
		return fmt.Errorf("invalid address %q: %w", c.Address, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid address %q: scheme must be http or https", c.Address)
	}
	if c.TimeoutSecond < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	c.Address = strings.TrimRight(c.Address, "/")
	c.KVEndpoint = normalizeKVEndpoint(c.KVEndpoint)
	return nil
}

// String returns a formatted string representation of the client configuration
func (c *ClientConfig) String() string {
	w := &configWriter{}

	w.section("Client Configuration")
	w.field("Address", c.Address)
	w.field("KV Endpoint", c.KVEndpoint)
	w.field("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	w.field("Max Idle Connections", fmt.Sprintf("%d", c.MaxIdleConns))
	if c.Token != "" {
		w.field("Token", "<set>")
	} else {
		w.field("Token", "<none>")
	}

	return w.sb.String()
}

// --------------------------------------------------------------------------
// Dev server configuration struct
// --------------------------------------------------------------------------

// ServerConfig holds all configuration parameters for the in-memory dev server.
type ServerConfig struct {
	// Endpoint is the address the HTTP API listens on (e.g. 0.0.0.0:8500)
	Endpoint string
	// KVEndpoint is the path prefix of the key-value API (e.g. /v1/kv/)
	KVEndpoint string
	// TimeoutSecond bounds reading a request and writing the response
	TimeoutSecond int
	// LogLevel is the level at which logs will be output
	LogLevel string
}

// Validate checks the configuration and normalizes the KV endpoint
func (c *ServerConfig) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("no endpoint provided")
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	c.KVEndpoint = normalizeKVEndpoint(c.KVEndpoint)
	return nil
}

// String returns a formatted string representation of the configuration
func (c *ServerConfig) String() string {
	w := &configWriter{}

	w.section("HTTP Server")
	w.field("Endpoint", c.Endpoint)
	w.field("KV Endpoint", c.KVEndpoint)
	w.field("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))

	w.section("Logging")
	w.field("Log Level", c.LogLevel)

	return w.sb.String()
}
