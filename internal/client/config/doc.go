// Package config loads runtime configuration for the dashboard CLI.
//
// Sources, later ones overriding earlier ones:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file in the working directory, if present, and the process
//     environment (FOCUSGROUP_SERVER_URL, FOCUSGROUP_DB_PATH,
//     FOCUSGROUP_REQUEST_TIMEOUT, FOCUSGROUP_LOG_LEVEL).
//  3. An optional JSON file selected with -c or -config.
//  4. Command-line flags.
//
// Supported flags
//
//	-a string   base URL of the API server
//	-d string   path of the local SQLite store
//	-t int      request timeout (seconds)
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
// Durations accept strings like "15s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "db_path": "focusgroup.db",
//	  "request_timeout": "15s",
//	  "log_level": "info"
//	}
package config
