// Package project loads grok.toml, the manifest that marks a project root
// and carries defaults for the check and run commands.
package project
