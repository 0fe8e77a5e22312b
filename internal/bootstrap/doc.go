// Package bootstrap turns the process environment into a wired App.
//
// Run resolves the deployment stage, loads configuration, sets logging
// verbosity, opens the storage and cache backends for the stage, builds the
// repositories and publishes them in an appctx.Context. Every failure is
// fatal: the Bootstrapper ends in StateAborted, anything opened so far is
// closed, and no App is returned.
package bootstrap
