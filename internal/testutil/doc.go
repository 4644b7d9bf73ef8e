// Package testutil holds helpers shared by package tests: a resettable
// sequence clock, seeded run IDs and builders for declaration trees.
package testutil
