// SPDX-License-Identifier: MPL-2.0

// Package depenv models the key/value side channel a build orchestrator uses
// to pass data between dependency build steps.
//
// A Snapshot is an immutable copy of the variables visible to one build step.
// It is taken once (from the process environment, an explicit map, or a
// dependency env file written by an earlier step) and then passed explicitly
// to the code that needs it, so nothing reads ambient process state after
// the snapshot is taken.
//
// Dependency env files use dotenv syntax:
//
//	# written by the orchestrator for the dependent unit
//	export DEP_CORS_FETCH_GLOBAL_API_SCRIPT_PATH=external/cors-fetch/api-iife.js
//	BUILD_OUTPUT_BASE="/var/cache/build/out"
package depenv
