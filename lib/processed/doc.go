// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package processed records which chat users have completed the
// onboarding flow, so that each user can be invited at most once.
//
// The record is an append-only set of opaque requester identifiers.
// There is no removal path: once an identifier is present it stays
// present for every later check.
//
// Two backends implement [Store]:
//
//   - [FileStore] keeps one identifier per line in a plain text file
//     with no header. Membership is a linear scan. Reads take a shared
//     flock(2) and appends an exclusive one, so lines written by
//     concurrent processes never interleave. The check and the append
//     are separate operations; two events for the same requester can
//     both pass the check before either appends. The resulting
//     duplicate line is harmless.
//   - [SQLiteStore] keeps identifiers in a primary-keyed table and
//     offers [SQLiteStore.MarkIfAbsent], an atomic insert-if-absent.
//
// Both backends fail open on read errors (an unreadable store reports
// "not processed") and report write failures through their boolean
// result. Only opening a store returns an error.
package processed
