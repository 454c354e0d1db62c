// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/orgbot/lib/config"
	"github.com/bureau-foundation/orgbot/lib/github"
	"github.com/bureau-foundation/orgbot/lib/httpserver"
	"github.com/bureau-foundation/orgbot/lib/process"
	"github.com/bureau-foundation/orgbot/lib/version"
	"github.com/bureau-foundation/orgbot/messaging"
	"github.com/bureau-foundation/orgbot/onboarding"
)

const binaryName = "orgbot"

func main() {
	if err := run(os.Args[1:]); err != nil {
		process.Fatal(err)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet(binaryName, pflag.ContinueOnError)
	configFile := flags.String("config", "", "optional YAML configuration file")
	envFile := flags.String("env-file", ".env", "dotenv file to read before the environment")
	showVersion := flags.Bool("version", false, "print version information and exit")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if *showVersion {
		version.Fprint(os.Stdout, binaryName)
		return nil
	}

	cfg, err := config.Load(config.LoadOptions{
		ConfigFile:      *configFile,
		EnvFile:         *envFile,
		EnvFileOptional: !flags.Changed("env-file"),
	})
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	teamID, err := cfg.GitHub.ParsedTeamID()
	if err != nil {
		return err
	}

	logger := newLogger(cfg, os.Stdout, os.Stderr)
	slog.SetDefault(logger)
	logger.Info("starting "+binaryName, "version", version.Info(), "config", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg.Store, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	githubClient, err := github.NewClient(github.Config{
		BaseURL: cfg.GitHub.APIURL,
		Token:   cfg.GitHub.Token,
		Timeout: cfg.GitHub.Timeout,
		Logger:  logger.With("component", "github"),
	})
	if err != nil {
		return err
	}

	workflow := onboarding.NewWorkflow(onboarding.WorkflowConfig{
		Processed: store,
		Verifier:  onboarding.NewVerifier(githubClient, logger.With("component", "verifier")),
		Inviter: onboarding.NewInviter(onboarding.InviterConfig{
			Org:         cfg.GitHub.Org,
			TeamID:      teamID,
			Users:       githubClient,
			Invitations: githubClient,
			Logger:      logger.With("component", "inviter"),
		}),
		AdminUserID: cfg.Slack.AdminUserID,
		Logger:      logger.With("component", "workflow"),
	})

	debug := cfg.SlogLevel() <= slog.LevelDebug
	slackClient := messaging.NewClient(messaging.ClientConfig{
		BotToken: cfg.Slack.BotToken,
		AppToken: cfg.Slack.AppToken,
		Debug:    debug,
		Logger:   logger,
	})
	dispatcher := messaging.NewDispatcher(messaging.DispatcherConfig{
		Handler: workflow,
		Replier: messaging.NewReplier(slackClient, logger.With("component", "replier")),
		Logger:  logger.With("component", "dispatcher"),
	})

	switch cfg.Slack.Mode {
	case config.SocketMode:
		logger.Info("receiving slack events over socket mode")
		err = messaging.RunSocketMode(ctx, messaging.SocketModeConfig{
			Client:     slackClient,
			Dispatcher: dispatcher,
			Debug:      debug,
			Logger:     logger.With("component", "socketmode"),
		})

	case config.HTTPMode:
		server := httpserver.New(httpserver.Config{
			Address: cfg.Slack.ListenAddress,
			Handler: messaging.NewHTTPHandler(messaging.HTTPConfig{
				SigningSecret: cfg.Slack.SigningSecret,
				Dispatcher:    dispatcher,
				Logger:        logger.With("component", "http"),
			}),
			Logger: logger,
		})
		err = server.Serve(ctx)
		dispatcher.Wait()

	default:
		err = fmt.Errorf("unknown slack mode %q", cfg.Slack.Mode)
	}
	if err != nil {
		return err
	}

	logger.Info("shut down cleanly")
	return nil
}
