// Package config loads pagekit configuration.
//
// Configuration comes from three layers, later layers winning:
//
//  1. Built-in defaults (Default).
//  2. A TOML file. A missing file is not an error.
//  3. PAGEKIT_* environment variables.
//
// Example file:
//
//	[scroll]
//	threshold = 300
//	throttle = "100ms"
//
//	[search]
//	url_template = "/?s=%s"
//
//	[lazy_load]
//	force_fallback = false
//
//	[watch]
//	debounce = "200ms"
//
//	[logging]
//	level = "info"
//	format = "console"
package config
