// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation for the sql store backend.

# Schema Creation

CreateSchema initializes the content_file table:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS.

# Tables

  - content_file: one row per stored file (path, content, version, message)

The version column is an opaque token replaced on every write. Writers pass
the version they read and the update only applies when it still matches.

# Drivers

Queries are written with $N placeholders. Rebind converts them for
modernc.org/sqlite; lib/pq takes them as is.
*/
package db
