package trace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/dpdp-sim/dpdp-sim/sim"
)

// DispatchLogObserver writes every dispatch cycle's input and output to
// logs/<run-name>/<iteration>/{dispatch_input.json,dispatch_output.json}.
// It never mutates simulator state and implements sim.SimulationCallback.
type DispatchLogObserver struct {
	runDir    string
	iteration int
}

// NewDispatchLogObserver returns an observer writing under
// filepath.Join(logsDir, runName).
func NewDispatchLogObserver(logsDir, runName string) *DispatchLogObserver {
	return &DispatchLogObserver{runDir: filepath.Join(logsDir, runName)}
}

func (o *DispatchLogObserver) OnEvent(sim.Event) {}

func (o *DispatchLogObserver) OnDispatchInput(args sim.SchedulerArgs) {
	o.iteration++
	o.dump("dispatch_input.json", newDispatchInputRecord(args))
}

func (o *DispatchLogObserver) OnDispatchOutput(p sim.Plan) {
	o.dump("dispatch_output.json", newDispatchOutputRecord(p))
}

func (o *DispatchLogObserver) dump(name string, v any) {
	dir := filepath.Join(o.runDir, fmt.Sprintf("%d", o.iteration))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logrus.WithError(err).WithField("dir", dir).Error("trace: failed to create dispatch log directory")
		return
	}
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		logrus.WithError(err).WithField("file", name).Error("trace: failed to create dispatch log file")
		return
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		logrus.WithError(err).WithField("file", name).Error("trace: failed to encode dispatch log")
	}
}

// Clone returns an observer writing to the same run directory whose
// iteration counter starts at the original's current value and then
// advances independently. A clone and its original that both keep
// dispatching write into the same iteration directories.
func (o *DispatchLogObserver) Clone() sim.SimulationCallback {
	return &DispatchLogObserver{runDir: o.runDir, iteration: o.iteration}
}

// SummaryObserver logs a one-line summary of every dispatch cycle via
// logrus, independent of whether JSON dumps are enabled.
type SummaryObserver struct {
	logger *logrus.Logger
	ticks  int
}

// NewSummaryObserver returns an observer that logs through logger (or the
// package-level standard logger if logger is nil).
func NewSummaryObserver(logger *logrus.Logger) *SummaryObserver {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &SummaryObserver{logger: logger}
}

func (o *SummaryObserver) OnEvent(sim.Event) {}

func (o *SummaryObserver) OnDispatchInput(args sim.SchedulerArgs) {
	o.ticks++
	o.logger.WithFields(logrus.Fields{
		"tick":             o.ticks,
		"time":             args.Time,
		"visible_items":    len(args.Items),
		"elapsed_distance": args.ElapsedDistance,
	}).Info("dispatch input")
}

func (o *SummaryObserver) OnDispatchOutput(p sim.Plan) {
	routes := 0
	for _, rs := range p {
		routes += len(rs)
	}
	o.logger.WithFields(logrus.Fields{"tick": o.ticks, "vehicles_routed": len(p), "routes": routes}).Info("dispatch output")
}

func (o *SummaryObserver) Clone() sim.SimulationCallback {
	return &SummaryObserver{logger: o.logger, ticks: o.ticks}
}
