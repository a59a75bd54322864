// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles server configuration from CLI flags and environment
variables.

# Precedence

CLI flags override environment variables; a .env file in the working
directory is loaded into the environment first (godotenv).

# Settings

Required:

  - DATABASE_URL (-d): database connection string
  - SESSION_SALT (--session-salt): secret for session token HMAC

Optional:

  - PORT (-p): server port (default: 3319)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - RATE_LIMIT (--rate-limit): mutations per minute per user (default: 30)
  - RATE_BURST (--rate-burst): mutation burst per user (default: 10)

# Usage

	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}
*/
package cliparse
