// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package appender adds lines to a file held in a contentstore.Store.

Each attempt fetches the current content and version, appends the lines and
writes back against that version. A missing or blank file is seeded with the
submission header. A version conflict re-runs the whole attempt, up to
Policy.MaxAttempts (two by default); any other failure ends the append.

	a := appender.New(store, "submissions.csv", appender.DefaultPolicy, 10*time.Second)
	res, err := a.Append(ctx, lines)

Errors are *FetchError, *WriteError or *ConflictError.
*/
package appender
