package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarchlab/cachesim/cache"
	"github.com/sarchlab/cachesim/datarecording"
	"github.com/sarchlab/cachesim/driver"
	"github.com/sarchlab/cachesim/stats"
	"github.com/sarchlab/cachesim/trace"
)

var runCmd = &cobra.Command{
	Use:   "run <trace-file>",
	Short: "Replay a memory trace and print the cache statistics",
	Args:  cobra.ExactArgs(1),
	RunE:  runSimulation,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Int("block-size", 16,
		"bytes per cache block, must be a power of two")
	runCmd.Flags().Int("associativity", 1,
		"number of ways per set")
	runCmd.Flags().Int("capacity", 16*1024,
		"total cache size in bytes")
	runCmd.Flags().Int("miss-penalty", 30,
		"cycles charged per miss")
	runCmd.Flags().Int("dirty-wb-penalty", 2,
		"cycles charged per dirty write-back")
	runCmd.Flags().Bool("record", false,
		"record every access into a SQLite database")
	runCmd.Flags().String("db", "",
		"database name used with --record, auto-generated when empty")
	runCmd.Flags().Bool("log-accesses", false,
		"log every access and its outcome to stderr")
}

func runSimulation(cmd *cobra.Command, args []string) error {
	blockSize := intSetting(cmd, "block-size", "CACHESIM_BLOCK_SIZE")
	associativity := intSetting(cmd, "associativity", "CACHESIM_ASSOCIATIVITY")
	capacity := intSetting(cmd, "capacity", "CACHESIM_CAPACITY")
	missPenalty := intSetting(cmd, "miss-penalty", "CACHESIM_MISS_PENALTY")
	dirtyWBPenalty := intSetting(cmd, "dirty-wb-penalty",
		"CACHESIM_DIRTY_WB_PENALTY")
	record, _ := cmd.Flags().GetBool("record")
	dbName, _ := cmd.Flags().GetString("db")
	logAccesses, _ := cmd.Flags().GetBool("log-accesses")

	model, err := cache.MakeBuilder().
		WithBlockSize(blockSize).
		WithWayAssociativity(associativity).
		WithByteSize(uint64(capacity)).
		Build()
	if err != nil {
		return err
	}

	src, err := trace.NewFileSource(args[0])
	if err != nil {
		return err
	}
	defer src.Close()

	accumulator := stats.NewAccumulator(model.Geometry(), stats.Penalties{
		MissPenalty:    uint64(missPenalty),
		DirtyWBPenalty: uint64(dirtyWBPenalty),
	})
	d := driver.NewDriver(model, accumulator)

	var dbObserver *driver.DBObserver
	if record {
		recorder, err := datarecording.New(dbName)
		if err != nil {
			return err
		}

		dbObserver = driver.NewDBObserver(recorder, model.Geometry())
		d.AddObserver(dbObserver)
	}

	if logAccesses {
		d.AddObserver(driver.NewLogObserver(log.New(os.Stderr, "", 0)))
	}

	if err := d.Run(src); err != nil {
		return err
	}

	summary := d.Summary()
	if dbObserver != nil {
		dbObserver.RecordSummary(summary)
	}

	return summary.WriteReport(os.Stdout)
}
