// Package async provides bounded parallel task execution with per-task
// error collection.
//
// [RunBounded] runs every task regardless of sibling failures and reports
// each task's outcome, which is what fail-open batch operations (spawn,
// destroy, DNS reconciliation) need. [RunParallel] is the fail-fast variant
// returning the first error.
package async
