package migrations

import "embed"

// FS contains the embedded SQLite schema for progression and leaderboard storage.
//
//go:embed *.sql
var FS embed.FS
