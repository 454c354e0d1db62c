// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Orgbot is a Slack bot that onboards people into a GitHub
// organization. A user sends the bot their GitHub username in a direct
// message, confirms the matching profile, and receives an invitation
// to the organization and its onboarding team. Each Slack user can
// complete the flow once.
//
// Configuration comes from the environment, optionally seeded by a
// dotenv file (--env-file, default .env when present) and a YAML file
// (--config). See lib/config for the variables.
//
// Slack events arrive over Socket Mode by default (SLACK_MODE=socket)
// or as signed HTTP requests (SLACK_MODE=http, listening on
// HTTP_LISTEN).
package main
