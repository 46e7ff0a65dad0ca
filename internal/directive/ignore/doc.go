// Package ignore provides //balanced:ignore directive parsing.
//
// # Directive Placement
//
// The directive can appear on the line before or the same line:
//
//	//balanced:ignore
//	lockAgain() // Warning suppressed
//
//	return //balanced:ignore unbalanced
//
// # Checker Names
//
//	┌────────────┬──────────────────────────────────────────────┐
//	│ Name       │ Description                                  │
//	├────────────┼──────────────────────────────────────────────┤
//	│ double     │ repeated same-side call on one object        │
//	│ unbalanced │ return with diverging protocol state         │
//	└────────────┴──────────────────────────────────────────────┘
//
// Unbalanced returns that fall off the end of a function are reported at
// the closing brace, so the directive goes on the line of the brace or the
// line above it.
//
// # Unused Ignore Detection
//
// [Map.GetUnusedIgnores] returns directives that suppressed nothing, so the
// analyzer can report them:
//
//	//balanced:ignore  // Warning: unused ignore directive
//	normalCode()       // No warning to suppress
package ignore
