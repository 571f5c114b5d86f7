// SPDX-License-Identifier: MPL-2.0

// Package apiscript propagates the location of plugin "global API scripts"
// from provider build units to the dependent units that embed them.
//
// The protocol has three steps, each run in its own build step:
//
//  1. Publish runs in a provider. It canonicalizes the script path, makes it
//     relative to the shared output base and writes one directive line
//     (build:GLOBAL_API_SCRIPT_PATH=<relative path>) for the orchestrator.
//  2. Aggregate runs in a dependent after all of its providers. The
//     orchestrator exposes each provider's directive as a namespaced
//     variable (DEP_<LINKS>_GLOBAL_API_SCRIPT_PATH); Aggregate collects them
//     into an ordered manifest file in the dependent's output directory.
//  3. ReadAll runs later in the same dependent and returns the text of every
//     script listed in the manifest, in manifest order.
//
// Every step receives a BuildContext holding an explicit environment
// snapshot, so none of them reads ambient process state. All variable names
// and the manifest file name come from a Convention; DefaultConvention
// returns the names listed above.
//
// # Ordering
//
// The framework override, when present, is always the first manifest entry.
// The remaining entries are ordered by the name of the variable that carried
// them. Process environments do not define an enumeration order, so sorting
// keeps manifests byte-identical across runs with the same inputs.
package apiscript
