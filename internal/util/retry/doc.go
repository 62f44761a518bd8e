// Package retry provides exponential backoff retry logic for transient failures.
//
// [WithExponentialBackoff] retries an operation with configurable max
// attempts, initial delay and maximum delay. Provider read calls use it with
// a [WithRetryIf] classifier so that only transient API failures are retried;
// errors wrapped with [Fatal] are never retried.
package retry
