// Package ir provides the intermediate representation shared by the translator,
// the renderer and the snapshot store.
//
// This package contains type definitions and their serialization only. All other
// internal packages import ir; ir imports nothing internal. This keeps IR the
// foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Stmt is a sealed interface: only the nine declaration variants implement it
//   - Statements are immutable once built; helpers never mutate their inputs
//   - Names are global: two Identifiers with equal Name denote the same symbol
//   - All JSON tags use snake_case
package ir
