// Package config loads envtrim's layered configuration.
//
// Layers are applied in order, each overriding the previous one:
//
//  1. built-in platform capabilities (pkg/platform)
//  2. the embedded defaults.toml: profiles, aliases, probes
//  3. the user file, $XDG_CONFIG_HOME/envtrim/envtrim.toml (or .yaml), or
//     an explicit path
//  4. ENVTRIM_* environment variables, with "__" separating nested keys
//  5. overrides supplied by the caller, usually from command-line flags
//
// Lists replace rather than append, so a user profile's patterns fully
// replace the built-in ones of the same name.
package config
