// Package config loads runtime configuration for the portal CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment, after loading a .env file from the working directory
//     when one exists.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string     base URL of the portal backend
//	-s string     path of the local session cache (sqlite)
//	-d string     directory downloaded files are saved into
//	-w duration   window in which open review assignments count as due soon
//	-l string     log level (debug, info, warn, error)
//
// # Environment
//
//	CONFPORTAL_API_URL          base URL; API_PROXY_TARGET is used when unset
//	CONFPORTAL_STATE_PATH       session cache path
//	CONFPORTAL_DOWNLOAD_DIR     download directory
//	CONFPORTAL_DUE_SOON_WINDOW  due-soon window ("72h")
//	CONFPORTAL_LOG_LEVEL        log level
//	CONFPORTAL_PAGE_SIZE        page size of list requests
//
// # JSON schema
//
// Intervals use timex.Duration, so they can be strings like "72h" or integer
// nanoseconds:
//
//	{
//	  "api_base_url": "https://portal.example.org",
//	  "state_path": "/var/lib/confportal/state.db",
//	  "download_dir": "downloads",
//	  "due_soon_window": "72h",
//	  "log_level": "info",
//	  "page_size": 20
//	}
package config
