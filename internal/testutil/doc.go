// Package testutil holds helpers shared by package tests: symbol and section
// builders, a thread-safe log buffer and an HCL snippet unindenter.
package testutil
