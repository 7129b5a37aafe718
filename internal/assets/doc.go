// Package assets provides loading of built-in scene templates and
// stylesheets, with optional filesystem overrides.
//
// Built-in assets are embedded in the binary. When a custom base path
// is configured, assets load from the filesystem first and fall back
// to the embedded set when not found.
package assets
