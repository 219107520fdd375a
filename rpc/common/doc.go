// Package common provides the configuration structures and the logging setup
// shared by the client, the server and the CLI.
//
// The package focuses on:
//   - Configuration structures for the HTTP store client and the dev server
//   - Custom logging implementation integrated with Dragonboat's logger package
//
// Key Components:
//
//   - ClientConfig: Address and KV endpoint of the store, request timeout, size of
//     the idle connection pool and an optional ACL token (sent as X-Consul-Token).
//     Validate normalizes the address and the endpoint.
//
//   - ServerConfig: Listen address, KV endpoint, timeout and log level of the
//     in-memory dev server.
//
//   - Logger: Custom logging implementation that plugs into Dragonboat's
//     logger.SetLoggerFactory and prints "LEVEL | package | message" lines to stderr.
//     InitLoggers sets the level of every logger of this module at once.
//
// Usage Example:
//
//	if err := common.InitLoggers("debug"); err != nil {
//	  // unknown level
//	}
//
//	config := common.ClientConfig{Address: common.DefaultAddress}
//	if err := config.Validate(); err != nil {
//	  // handle error
//	}
//	fmt.Print(config.String())
package common
