// Package diag wraps zap for structured run diagnostics, following the
// teacher pack's logger/logger.go pattern: a package-level
// no-op-initialized *zap.SugaredLogger safe to call before Init, swapped
// for a real one once the CLI decides on JSON vs. console output.
package diag

import (
	"os"

	"go.uber.org/zap"
)

var base = zap.NewNop().Sugar()

// Init replaces the package logger with a real one: JSON for machine
// consumption when json is true, a plain development console encoder
// otherwise. verbose raises the level to Debug.
func Init(jsonOutput, verbose bool) error {
	level := zap.InfoLevel
	if verbose {
		level = zap.DebugLevel
	}

	var zl *zap.Logger
	var err error
	if jsonOutput {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(level)
		zl, err = cfg.Build()
	} else {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(level)
		cfg.EncoderConfig.TimeKey = ""
		zl, err = cfg.Build()
	}
	if err != nil {
		return err
	}
	base = zl.Sugar()
	return nil
}

// Diagnostics is a per-module named logger with one method per well-known
// event — most of them §7 error kinds, plus the overload reconciler's
// false-overload and forced-clash notes — so a caller never hand-builds a
// message for these cases.
type Diagnostics struct {
	log *zap.SugaredLogger
}

// ForModule returns a Diagnostics scoped to pkgName (a GIR namespace or
// an internal package name, depending on caller).
func ForModule(pkgName string) *Diagnostics {
	return &Diagnostics{log: base.With("module", pkgName)}
}

func (d *Diagnostics) UnresolvedType(qualified, from string) {
	d.log.Warnw("unresolved type", "type", qualified, "referencedFrom", from)
}

func (d *Diagnostics) DuplicateSymbol(qualified, kept, rejected string) {
	d.log.Warnw("duplicate symbol", "symbol", qualified, "kept", kept, "rejected", rejected)
}

func (d *Diagnostics) CircularInheritance(qualified string) {
	d.log.Errorw("circular inheritance", "class", qualified)
}

func (d *Diagnostics) RecursionDepthExceeded(qualified, walk string) {
	d.log.Errorw("recursion depth exceeded", "class", qualified, "walk", walk)
}

func (d *Diagnostics) UnresolvedInclude(namespace, version string) {
	d.log.Warnw("unresolved include", "namespace", namespace, "version", version)
}

func (d *Diagnostics) UnresolvedDependency(qualified, reference string) {
	d.log.Warnw("unresolved dependency", "from", qualified, "reference", reference)
}

func (d *Diagnostics) FalseOverload(name, owner string) {
	d.log.Infow("false overload", "name", name, "inheritedFrom", owner)
}

func (d *Diagnostics) ForcedClash(name, owner string) {
	d.log.Infow("forced clash on reserved signal helper", "name", name, "inheritedFrom", owner)
}

// Fatal logs at error level and exits — used by the CLI's top-level
// error path only, never from library code.
func Fatal(msg string, keyvals ...interface{}) {
	base.Errorw(msg, keyvals...)
	os.Exit(1)
}
