// Package fault classifies run failures.
//
// Every error that aborts a run carries one [Kind] so the top-level handler
// can report it once and tests can assert on the category without matching
// message text. Cleanup failures use [KindCleanup] and are only ever logged.
package fault
