// Package async provides utilities for parallel task execution with
// error collection.
package async
