package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dpdp-sim/dpdp-sim/sim"
	"github.com/dpdp-sim/dpdp-sim/sim/catalog"
	"github.com/dpdp-sim/dpdp-sim/sim/scheduler"
	"github.com/dpdp-sim/dpdp-sim/sim/trace"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Load a static instance and run the simulation to completion",
	RunE:  runSimulation,
}

func init() {
	flags := runCmd.Flags()
	flags.String("data-dir", "data", "directory holding factory_info.csv, vehicle_info.csv, orders.csv, route_info.csv")
	flags.String("log-level", "info", "logrus level (debug, info, warn, error)")
	flags.Duration("time-interval", sim.DefaultTimeInterval, "base cadence between scheduler ticks")
	flags.Int64("seed", 0, "master seed for initial vehicle placement")
	flags.String("run-name", "", "name for this run's log directory (defaults to a generated id)")
	flags.Duration("horizon", 7*24*time.Hour, "simulation horizon, relative to the instance's initial date")
	flags.Bool("trace", false, "write per-tick dispatch_input.json/dispatch_output.json under logs/<run-name>")
	flags.String("config", "", "optional YAML config file supplying values for flags not set on the command line")
	flags.String("scheduler", "naive", "scheduler to drive dispatch: naive or noop")

	_ = viper.BindPFlags(flags)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	if cfg := viper.GetString("config"); cfg != "" {
		viper.SetConfigFile(cfg)
		if err := viper.ReadInConfig(); err != nil {
			return err
		}
	}

	level, err := logrus.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		return err
	}
	logrus.SetLevel(level)

	runName := viper.GetString("run-name")
	if runName == "" {
		runName = uuid.NewString()
	}

	cat, err := catalog.Load(viper.GetString("data-dir"))
	if err != nil {
		return err
	}

	initialDate := time.Now().Truncate(24 * time.Hour)
	horizon := initialDate.Add(viper.GetDuration("horizon"))

	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(viper.GetInt64("seed")))
	placement := sim.RandomPlacement(rng.ForSubsystem(sim.SubsystemPlacement))

	sched, err := buildScheduler(viper.GetString("scheduler"), cat)
	if err != nil {
		return err
	}
	s := sim.NewSimulator(cat, initialDate, horizon, sched, placement)
	s.TimeInterval = viper.GetDuration("time-interval")
	s.Logger = logrus.StandardLogger()

	s.AddCallback(trace.NewSummaryObserver(s.Logger))
	if viper.GetBool("trace") {
		if err := os.MkdirAll(filepath.Join("logs", runName), 0o755); err != nil {
			return err
		}
		s.AddCallback(trace.NewDispatchLogObserver("logs", runName))
	}

	logrus.WithFields(logrus.Fields{
		"run_name": runName,
		"vehicles": len(cat.Vehicles),
		"orders":   len(cat.Orders),
		"horizon":  horizon,
	}).Info("starting simulation")

	s.Run()
	return nil
}

// buildScheduler selects the Scheduler named by --scheduler. "noop" is the
// honest do-nothing baseline, useful for inspecting a run's raw arrival/
// dock-contention behavior with no allocation decisions in the way; "naive"
// is the reference heuristic and the default.
func buildScheduler(name string, cat *sim.Catalog) (sim.Scheduler, error) {
	switch name {
	case "naive":
		return scheduler.NewNaiveScheduler(cat), nil
	case "noop":
		return scheduler.NoopScheduler{}, nil
	default:
		return nil, fmt.Errorf("unknown scheduler %q (want naive or noop)", name)
	}
}
