// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads and validates orgbot's configuration.
//
// Values come from three layers, later layers overriding earlier ones:
//
//  1. An optional file (--config), decoded with gopkg.in/yaml.v3. A
//     .json or .jsonc file is first stripped of comments and trailing
//     commas with github.com/tidwall/jsonc.
//  2. An optional dotenv file (--env-file), read with
//     github.com/joho/godotenv without touching the process
//     environment.
//  3. The process environment, parsed with github.com/caarlos0/env/v11.
//
// [Config.Validate] checks every value at once and returns all problems
// joined, so a misconfigured deployment reports everything wrong in one
// start attempt. The binary exits non-zero on any validation error.
//
// [Config] implements slog.LogValuer and never logs credential values,
// only whether each one is present.
//
// This package depends on no other orgbot packages.
package config
