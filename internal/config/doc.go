// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for deskchat.
//
// Settings come from ~/.deskchat/config.toml when present, with built-in
// defaults otherwise and environment variable overrides applied last.
package config
