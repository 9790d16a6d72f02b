// Copyright (c) 2025 the voteapp authors.
// MIT License; see LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The DDL sticks to types and constraints accepted by both sqlite and
postgres, so the same binary runs against either engine.

# Tables

  - app_user: accounts with unique username and email
  - poll: poll metadata, timing window and the cached view counter
  - option: per-poll options, keyed by (poll_id, idx)
  - ballot: one row per admitted vote, keyed by (poll_id, user_id)
  - comment: discussion entries per poll

# Relationships

	app_user 1──* poll
	poll 1──* option
	poll 1──* ballot
	poll 1──* comment

Child rows of a poll use ON DELETE CASCADE.

# Invariants in the schema

The ballot primary key (poll_id, user_id) is the storage-level half of
the one-vote-per-poll rule: two concurrent submissions by the same user
cannot both insert, whichever loses the race gets a uniqueness
violation. view_count carries a non-negative CHECK; it only ever moves
through "SET view_count = view_count + 1" updates.
*/
package db
