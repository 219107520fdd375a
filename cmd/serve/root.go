package serve

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	cmdUtil "github.com/ValentinKolb/kvlock/cmd/util"
	"github.com/ValentinKolb/kvlock/lib/store/memstore"
	"github.com/ValentinKolb/kvlock/rpc/common"
	"github.com/ValentinKolb/kvlock/rpc/serializer"
	"github.com/ValentinKolb/kvlock/rpc/server"
	"github.com/ValentinKolb/kvlock/rpc/transport/http"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	serveCmdConfig = &common.ServerConfig{}
	ServeCmd       = &cobra.Command{
		Use:     "serve",
		Short:   "Start the in-memory dev server",
		Long:    `Start an in-memory server for the key-value HTTP API (including session locks). Data is not persisted. The configuration can be set via command line flags or environment variables. The format of the environment variables is KVLOCK_<flag> (e.g. KVLOCK_ENDPOINT=0.0.0.0:8500)`,
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(initConfig)

	// add flags
	key := "endpoint"
	ServeCmd.PersistentFlags().String(key, "0.0.0.0:8500", cmdUtil.WrapString("The address on which the API will listen"))

	key = "kv-endpoint"
	ServeCmd.PersistentFlags().String(key, common.DefaultKVEndpoint, cmdUtil.WrapString("The path prefix of the key-value API"))

	key = "timeout"
	ServeCmd.PersistentFlags().Int(key, 5, cmdUtil.WrapString("Timeout in seconds for reading a request and writing the response"))

	key = "log-level"
	ServeCmd.PersistentFlags().String(key, "info", cmdUtil.WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))
}

// processConfig reads the configuration from the command line flags and environment variables and converts them to the server configuration
func processConfig(cmd *cobra.Command, _ []string) error {
	// bind the flags to viper
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// read the configuration from the command line flags and environment variables
	serveCmdConfig.Endpoint = viper.GetString("endpoint")
	serveCmdConfig.KVEndpoint = viper.GetString("kv-endpoint")
	serveCmdConfig.TimeoutSecond = viper.GetInt("timeout")
	serveCmdConfig.LogLevel = viper.GetString("log-level")

	return common.InitLoggers(serveCmdConfig.LogLevel)
}

// run starts the dev server and blocks until SIGINT or SIGTERM
func run(_ *cobra.Command, _ []string) error {
	serv, err := server.NewKVServer(
		*serveCmdConfig,
		http.NewHttpServerTransport(),
		serializer.NewJSONSerializer(),
		memstore.NewMemoryStore(),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serv.Serve(ctx)
}

// initConfig reads in ENV variables if set.
func initConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("kvlock")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}
