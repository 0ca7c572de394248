// Package hashing decides which files are (re)hashed in a run and updates their hash state.
//
// # Selection
//
// Every file that is not Missing is a candidate. Candidates without a hash come first,
// then the rest from the oldest measurement to the newest, so new files are measured
// before the staleness queue is drained.
//
// # Budgets
//
// A Budget is checked before each file and the pass stops once it is spent. The file that
// crosses a limit is always hashed to the end:
//
//   - all: every candidate
//   - none: nothing
//   - percentage p: until 100 * hashedBytes / totalBytes >= p
//   - data n: until n bytes were read
//   - time d: until d elapsed
//   - files n: until n files were read
//
// # Update Policy
//
//   - no stored hash: store the digest and the current time
//   - same digest: refresh the timestamp only
//   - different digest: keep the stored hash and timestamp, mark the file Modified
//   - read failure: mark the file Corrupted, discard the partial digest
package hashing
