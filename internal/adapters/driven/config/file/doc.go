// Package file keeps medrfq's user-editable state on disk: settings in
// config.toml and the reviewer prompts as plain text files.
package file
