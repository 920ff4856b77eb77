// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package contentstore reads and writes whole text files with optimistic
concurrency.

# Versions

Every File carries an opaque Version. Put succeeds only when the version it
is given still matches the stored one; an empty version means "create, the
file must not exist yet". A mismatch returns ErrConflict. A missing file
returns ErrNotFound from Get.

# Backends

  - GitHub: the repository Contents API; the version is the blob sha
  - SQL: the content_file table, postgres or sqlite
  - Memory: process-local map, used in tests and for dry runs

Only 409 from GitHub counts as a conflict. Other failures, including 422,
are reported as *StatusError.
*/
package contentstore
