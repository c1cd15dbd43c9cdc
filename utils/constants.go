package utils

import "time"

// AuthCachePrefix prefixes redis keys that map a user's token hash to its session.
const AuthCachePrefix = "auth:"

// AuthCacheTTL bounds how long a cached session entry lives before the
// database is consulted again.
const AuthCacheTTL = 24 * time.Hour
