// Package driver runs the compilation pipeline (parse, check, generate,
// validate) and executes the result on the VM. Each phase is traced, timed
// and reported to an optional PhaseObserver.
package driver
