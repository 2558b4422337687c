// Package orchestrator owns the named periodic jobs of the engine. Jobs are
// registered under unique names, run on independent timers and fail
// independently: a panicking handler is recovered and stays scheduled, and a
// slow run causes the next tick of the same job to be skipped rather than
// overlapped.
package orchestrator

import (
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/monere-app/monere/pkg/logger"
)

type Orchestrator struct {
	logger *logger.Logger
	cron   *cron.Cron

	mu      sync.Mutex
	entries map[string]cron.EntryID
	started bool
}

// cronLog adapts the zap wrapper to cron's Printf-style logger.
type cronLog struct {
	logger *logger.Logger
}

func (c cronLog) Printf(format string, args ...interface{}) {
	c.logger.SugaredLogger.Debugf(format, args...)
}

func New(logger *logger.Logger) *Orchestrator {
	cl := cron.PrintfLogger(cronLog{logger: logger})
	c := cron.New(cron.WithChain(
		cron.Recover(cl),
		cron.SkipIfStillRunning(cl),
	))

	return &Orchestrator{
		logger:  logger,
		cron:    c,
		entries: make(map[string]cron.EntryID),
	}
}

// Register binds a handler to a name and schedule. Registering a name twice
// deterministically stops the prior timer before installing the new one.
func (o *Orchestrator) Register(name, schedule string, handler func()) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if prev, ok := o.entries[name]; ok {
		o.cron.Remove(prev)
		delete(o.entries, name)
		o.logger.Info("Replaced job ", "name ", name)
	}

	id, err := o.cron.AddFunc(schedule, func() {
		o.logger.Debug("Job tick ", "name ", name)
		handler()
	})
	if err != nil {
		return fmt.Errorf("failed to register job %q: %w", name, err)
	}
	o.entries[name] = id
	o.logger.Info("Registered job ", "name ", name, " schedule ", schedule)
	return nil
}

// Start activates all registered jobs.
func (o *Orchestrator) Start() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.cron.Start()
	o.started = true
	o.logger.Info("Orchestrator started ", "jobs ", len(o.entries))
}

// Stop deactivates all jobs, waits for in-flight runs to finish and clears
// the registry.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()

	ctx := o.cron.Stop()
	<-ctx.Done()
	for name, id := range o.entries {
		o.cron.Remove(id)
		delete(o.entries, name)
	}
	o.started = false
	o.logger.Info("Orchestrator stopped")
}

// Active reports whether the named job is currently registered and running.
func (o *Orchestrator) Active(name string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, ok := o.entries[name]
	return ok && o.started
}

// Jobs reports, per registered job name, whether it is currently active.
func (o *Orchestrator) Jobs() map[string]bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	jobs := make(map[string]bool, len(o.entries))
	for name := range o.entries {
		jobs[name] = o.started
	}
	return jobs
}
