package util

import (
	"strings"

	"github.com/ValentinKolb/kvlock/lib/store"
	"github.com/ValentinKolb/kvlock/rpc/client"
	"github.com/ValentinKolb/kvlock/rpc/common"
	"github.com/ValentinKolb/kvlock/rpc/serializer"
	"github.com/ValentinKolb/kvlock/rpc/transport/http"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		// Add the word
		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	// Add any remaining text
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupClientFlags adds the connection flags of the store client to a command
func SetupClientFlags(cmd *cobra.Command) {
	key := "address"
	cmd.PersistentFlags().String(key, common.DefaultAddress, WrapString("The base URL of the key-value store (http or https)"))

	key = "kv-endpoint"
	cmd.PersistentFlags().String(key, common.DefaultKVEndpoint, WrapString("The path prefix of the key-value API"))

	key = "timeout"
	cmd.PersistentFlags().Int(key, 10, WrapString("The timeout in seconds of a single request (0 for no timeout)"))

	key = "max-idle-conns"
	cmd.PersistentFlags().Int(key, 10, WrapString("The size of the idle connection pool"))

	key = "token"
	cmd.PersistentFlags().String(key, "", WrapString("ACL token, sent as X-Consul-Token header"))

	key = "log-level"
	cmd.PersistentFlags().String(key, "warn", WrapString("Log level (debug, info, warn, error)"))
}

// InitClientConfig initializes configuration from environment variables
func InitClientConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("kvlock")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// GetClientConfig reads client configuration from viper
func GetClientConfig() *common.ClientConfig {
	conf := &common.ClientConfig{
		Address:       viper.GetString("address"),
		KVEndpoint:    viper.GetString("kv-endpoint"),
		TimeoutSecond: viper.GetInt("timeout"),
		MaxIdleConns:  viper.GetInt("max-idle-conns"),
		Token:         viper.GetString("token"),
	}

	return conf
}

// NewStore binds the flags of cmd, sets up logging and creates the HTTP store client
func NewStore(cmd *cobra.Command) (store.IStore, error) {
	// Bind command flags to viper
	if err := BindCommandFlags(cmd); err != nil {
		return nil, err
	}

	if err := common.InitLoggers(viper.GetString("log-level")); err != nil {
		return nil, err
	}

	return client.NewHTTPStore(
		*GetClientConfig(),
		http.NewHttpClientTransport(),
		serializer.NewJSONSerializer(),
	)
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}
