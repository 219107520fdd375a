package kv

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ValentinKolb/kvlock/cmd/util"
	"github.com/ValentinKolb/kvlock/lib/lockmgr"
	"github.com/ValentinKolb/kvlock/rpc/common"
	"github.com/google/uuid"
	gometrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

var (
	perfTestCmd = &cobra.Command{
		Use:     "perf",
		Short:   "Performance testing tool for key-value stores",
		Long:    "Runs set, set-large, get, get-missing, delete, lock and mixed workloads against the store and prints latency and throughput per workload.",
		RunE:    run,
		PreRunE: processPerfConfig,
	}
	perfKeyPrefix        = "__perf"
	perfLargeValueSizeKB = 100
	perfNumThreads       = 10
	perfNumOps           = 1000
	perfKeySpread        = 100
	perfSkip             = make([]string, 0)
)

// perfTest is one workload. op is called once per operation with a running counter.
type perfTest struct {
	name  string
	setup func(ctx context.Context, keys []string)
	op    func(ctx context.Context, counter int, key string) error
}

// perfResult holds the measured latencies of one workload
type perfResult struct {
	name    string
	skipped bool
	errors  int64
	elapsed time.Duration
	timer   gometrics.Timer
}

func init() {
	// add flags
	key := "skip"
	perfTestCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. set,get)"))
	key = "threads"
	perfTestCmd.Flags().Int(key, 10, util.WrapString("Number of concurrent workers to use for the benchmark"))
	key = "ops"
	perfTestCmd.Flags().Int(key, 1000, util.WrapString("Number of operations per benchmark"))
	key = "large-value-size"
	perfTestCmd.Flags().Int(key, 100, util.WrapString("How large the value for the set-large test should be (in KB)"))
	key = "keys"
	perfTestCmd.Flags().Int(key, 100, util.WrapString("How many different keys to use for the tests"))
	key = "csv"
	perfTestCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	perfLargeValueSizeKB = viper.GetInt("large-value-size")
	perfKeySpread = viper.GetInt("keys")
	perfNumThreads = viper.GetInt("threads")
	perfNumOps = viper.GetInt("ops")
	perfSkip = strings.Split(viper.GetString("skip"), ",")

	if perfKeySpread <= 0 || perfNumThreads <= 0 || perfNumOps <= 0 {
		return fmt.Errorf("keys, threads and ops must be positive")
	}

	return nil
}

func run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	locks := lockmgr.NewLockManager(kvStore)
	largeValue := make([]byte, perfLargeValueSizeKB*1024)

	fmt.Println("Performance testing tool for key-value stores")

	// Print configuration
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println(util.GetClientConfig().String())
	fmt.Printf("Threads: %d, Operations: %d, Keys: %d\n", perfNumThreads, perfNumOps, perfKeySpread)
	fmt.Println()

	fmt.Println("starting tests...")

	prefill := func(ctx context.Context, keys []string) {
		for _, k := range keys {
			if _, err := kvStore.Set(ctx, k, []byte("test")); err != nil {
				log.Printf("error setting key %s: %v\n", k, err)
			}
		}
	}

	tests := []perfTest{
		{
			name: "set",
			op: func(ctx context.Context, _ int, key string) error {
				_, err := kvStore.Set(ctx, key, []byte("test"))
				return err
			},
		},
		{
			name: "set-large",
			op: func(ctx context.Context, _ int, key string) error {
				_, err := kvStore.Set(ctx, key, largeValue)
				return err
			},
		},
		{
			name:  "get",
			setup: prefill,
			op: func(ctx context.Context, _ int, key string) error {
				_, _, err := kvStore.Get(ctx, key)
				return err
			},
		},
		{
			name: "get-missing",
			op: func(ctx context.Context, counter int, _ string) error {
				_, _, err := kvStore.Get(ctx, fmt.Sprintf("%s/missing-%d", perfKeyPrefix, counter%perfKeySpread))
				return err
			},
		},
		{
			name:  "delete",
			setup: prefill,
			op: func(ctx context.Context, _ int, key string) error {
				_, err := kvStore.Delete(ctx, key)
				return err
			},
		},
		{
			name: "lock",
			op: func(ctx context.Context, _ int, key string) error {
				// one acquire and, if it was granted, one release per operation
				session := uuid.NewString()
				acquired, err := locks.AcquireLock(ctx, key, []byte(session), session)
				if err != nil || !acquired {
					return err
				}
				_, err = locks.ReleaseLock(ctx, key, []byte{}, session)
				return err
			},
		},
		{
			name:  "mixed",
			setup: prefill,
			op: func(ctx context.Context, counter int, key string) error {
				var err error
				switch counter % 4 {
				case 0: // set
					_, err = kvStore.Set(ctx, key, []byte("test"))
				case 1: // get
					_, _, err = kvStore.Get(ctx, key)
				case 2: // details
					_, err = kvStore.GetDetails(ctx, key)
				case 3: // delete
					_, err = kvStore.Delete(ctx, key)
				}
				return err
			},
		},
	}

	results := make([]*perfResult, 0, len(tests))
	for _, test := range tests {
		result := runPerfTest(ctx, test)
		results = append(results, result)
		printResult(result)
	}

	// Write results to csv is specified
	if csvPath := viper.GetString("csv"); csvPath != "" {
		fmt.Printf("\nExporting results to CSV: %s\n", csvPath)
		if err := writeResultsToCSV(csvPath, results, util.GetClientConfig()); err != nil {
			return fmt.Errorf("failed to export results to CSV: %w", err)
		}
		fmt.Println("Export complete")
	}

	return nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// runPerfTest runs perfNumOps operations of a workload on perfNumThreads workers
func runPerfTest(ctx context.Context, test perfTest) *perfResult {
	result := &perfResult{
		name:  test.name,
		timer: gometrics.NewTimer(),
	}

	if shouldSkip(test.name) {
		result.skipped = true
		return result
	}

	keys := getKeys(test.name)
	if test.setup != nil {
		test.setup(ctx, keys)
	}

	// cleanup
	defer func() {
		for _, k := range keys {
			if _, err := kvStore.Delete(ctx, k); err != nil {
				log.Printf("(%s) - error deleting key: %v\n", test.name, err)
			}
		}
	}()

	errorCounter := gometrics.NewCounter()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(perfNumThreads)

	start := time.Now()
	for i := 0; i < perfNumOps; i++ {
		counter := i
		g.Go(func() error {
			opStart := time.Now()
			err := test.op(gctx, counter, keys[counter%len(keys)])
			result.timer.UpdateSince(opStart)
			if err != nil {
				errorCounter.Inc(1)
				log.Printf("(%s) - error performing operation: %v\n", test.name, err)
			}
			// a failed operation is counted, the run goes on
			return nil
		})
	}
	_ = g.Wait()

	result.elapsed = time.Since(start)
	result.errors = errorCounter.Count()
	return result
}

func shouldSkip(test string) bool {
	// Check if the test is in the skip list
	for _, skip := range perfSkip {
		if test == strings.TrimSpace(skip) {
			return true
		}
	}
	return false
}

// getKeys creates the test keys of a workload
func getKeys(prefix string) []string {
	keys := make([]string, perfKeySpread)
	for i := 0; i < perfKeySpread; i++ {
		keys[i] = fmt.Sprintf("%s/%s-%d", perfKeyPrefix, prefix, i)
	}
	return keys
}

// opsPerSec returns the throughput of a run
func (r *perfResult) opsPerSec() float64 {
	if r.elapsed <= 0 {
		return 0
	}
	return float64(r.timer.Count()) / r.elapsed.Seconds()
}

// printResult prints the result of a benchmark test in a formatted way
func printResult(r *perfResult) {
	if r.skipped {
		fmt.Printf("%-20sskipped\n", r.name)
		return
	}

	snapshot := r.timer.Snapshot()
	ps := snapshot.Percentiles([]float64{0.5, 0.99})

	fmt.Printf("%-20smean %s\tp50 %s\tp99 %s\t%.0f ops/sec\terrors %d\n",
		r.name,
		time.Duration(snapshot.Mean()),
		time.Duration(ps[0]),
		time.Duration(ps[1]),
		r.opsPerSec(),
		r.errors,
	)
}

// writeResultsToCSV writes benchmark results to a CSV file
func writeResultsToCSV(csvPath string, results []*perfResult, config *common.ClientConfig) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	header := []string{
		"Test", "Ops", "Errors", "MeanNs", "P50Ns", "P99Ns", "OpsPerSec", "Skipped",
		"Address", "KVEndpoint", "TimeoutSec", "Threads", "LargeValueSizeKB", "Keys Count",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write test results
	for _, r := range results {
		snapshot := r.timer.Snapshot()
		ps := snapshot.Percentiles([]float64{0.5, 0.99})

		row := []string{
			r.name,
			strconv.FormatInt(snapshot.Count(), 10),
			strconv.FormatInt(r.errors, 10),
			fmt.Sprintf("%.0f", snapshot.Mean()),
			fmt.Sprintf("%.0f", ps[0]),
			fmt.Sprintf("%.0f", ps[1]),
			fmt.Sprintf("%.0f", r.opsPerSec()),
			strconv.FormatBool(r.skipped),
			config.Address,
			config.KVEndpoint,
			strconv.Itoa(config.TimeoutSecond),
			strconv.Itoa(perfNumThreads),
			strconv.Itoa(perfLargeValueSizeKB),
			strconv.Itoa(perfKeySpread),
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for test %s: %w", r.name, err)
		}
	}

	return nil
}
