// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the scriptlink CLI.
//
// Each subcommand is one step of the global API script protocol, run by a
// build orchestrator as a process: publish in a provider's build step,
// aggregate and read in a dependent's build step.
package cmd
