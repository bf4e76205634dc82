// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build windows
// +build windows

package browser

import (
	"fmt"
	"os/exec"
	"syscall"
)

// CREATE_NO_WINDOW prevents a console window from being created.
const CREATE_NO_WINDOW = 0x08000000

// openURL launches the default browser on Windows via cmd's start builtin.
func openURL(url string) error {
	cmd := exec.Command("cmd", "/c", "start", "", url)
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: CREATE_NO_WINDOW,
	}

	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	if cmd.Process != nil {
		_ = cmd.Process.Release()
	}
	return nil
}
