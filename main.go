// deskchat TUI - A terminal front end for the department Q&A service.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"flag"
	"fmt"
	"net/url"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/deskchat-tui/internal/api"
	"github.com/jeranaias/deskchat-tui/internal/auth"
	"github.com/jeranaias/deskchat-tui/internal/browser"
	"github.com/jeranaias/deskchat-tui/internal/chat"
	"github.com/jeranaias/deskchat-tui/internal/config"
	"github.com/jeranaias/deskchat-tui/internal/docs"
	"github.com/jeranaias/deskchat-tui/internal/model"
	"github.com/jeranaias/deskchat-tui/internal/storage"
	"github.com/jeranaias/deskchat-tui/internal/ui"
	"github.com/jeranaias/deskchat-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

func main() {
	var (
		serverFlag  = flag.String("server", "", "backend base URL (overrides config)")
		authURLFlag = flag.String("auth-url", "", "launch URL carrying the sign-in redirect, including the token parameter")
		versionFlag = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *versionFlag {
		fmt.Printf("deskchat %s (%s)\n", Version, GitCommit)
		return
	}

	if err := run(*serverFlag, *authURLFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(serverOverride, authURL string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if serverOverride != "" {
		cfg.Server.URL = serverOverride
	}

	dataDir, err := cfg.ResolveDataDir()
	if err != nil {
		return err
	}

	tokens := auth.NewFileTokenStore(dataDir)
	client := api.NewClient(cfg.Server.URL, tokens).WithTimeout(cfg.Timeout())
	session := auth.NewSession(client, tokens, browser.New())

	// A sign-in redirect relaunches the app with the one-time token in the
	// URL; consume and discard it before anything else runs.
	if authURL != "" {
		parsed, err := url.Parse(authURL)
		if err != nil {
			return fmt.Errorf("invalid -auth-url: %w", err)
		}
		session.Bootstrap(parsed)
	} else {
		session.Bootstrap(nil)
	}

	archive, err := storage.NewArchive(dataDir)
	if err != nil {
		return err
	}

	store := chat.NewStore(client, session, archive)
	store.SelectDepartment(startDepartment(cfg))
	registry := docs.NewRegistry(client, session)

	theme := styles.New(cfg.UI.Theme)
	m := ui.New(store, session, registry, theme, cfg.UI.MarkdownReplies, cfg.UI.ShowTimestamps)

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// startDepartment resolves the configured default department, falling back
// to engineering on anything unrecognized.
func startDepartment(cfg *config.Config) model.DepartmentID {
	if mapped, ok := model.DepartmentIDFromName(cfg.Chat.DefaultDepartment); ok {
		return mapped
	}
	return model.DeptEngineering
}
