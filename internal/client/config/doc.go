// Package config loads runtime configuration for the MindMate client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   server base URL
//	-d string   local storage file
//	-i int      page re-check interval (seconds, 0 disables)
//	-l string   log level
//
// # JSON schema
//
//	{
//	  "server_base_url": "http://127.0.0.1:5000",
//	  "storage_path": "mindmate.db",
//	  "auth_check_interval": "30s",
//	  "log_level": "info"
//	}
//
// Environment variables are not read.
package config
