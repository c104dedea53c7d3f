// Package config defines the mirror proxy's configuration model and loads
// it from a YAML file with environment variable overrides.
//
// The loading sequence is: parse YAML, apply defaults, apply TGMIRROR_*
// environment overrides, validate. Environment variables always win over
// the file. A Watcher can additionally observe the file and apply the safe
// subset of changes (log level) at runtime.
package config
