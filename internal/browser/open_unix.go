// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build !windows
// +build !windows

package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// openURL launches the platform browser opener on Unix and macOS.
func openURL(url string) error {
	var cmd *exec.Cmd
	if runtime.GOOS == "darwin" {
		cmd = exec.Command("open", url)
	} else {
		path, err := exec.LookPath("xdg-open")
		if err != nil {
			return fmt.Errorf("no browser opener found: %w", err)
		}
		cmd = exec.Command(path, url)
	}

	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	// Release the process so it continues running after we exit
	if cmd.Process != nil {
		_ = cmd.Process.Release()
	}
	return nil
}
