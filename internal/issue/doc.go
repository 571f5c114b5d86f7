// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError wraps a failure with the operation, the resource involved
// and suggestions. The issue catalog maps each failure kind of the publish,
// aggregate and read steps to Markdown guidance rendered with glamour below
// the error message.
package issue
