// Copyright (c) 2025 the voteapp authors.
// MIT License; see LICENSE.

/*
Package auth provides password hashing and identity token utilities.

# Passwords

Passwords are stored as bcrypt hashes:

	hash, err := auth.HashPassword(password)
	ok := auth.CheckPassword(hash, password)

# Identity Tokens

Tokens are HS256 JWTs whose subject is the user ID:

	token, err := auth.NewToken(userID, secret, 30*24*time.Hour)
	userID, err := auth.ParseToken(token, secret)

ParseToken rejects anything not signed with the configured secret,
expired tokens, and tokens with an empty subject, returning
ErrInvalidToken in all cases. The parsed user ID is the only voter
identity the rest of the server trusts; user IDs appearing in request
payloads are never honored.
*/
package auth
