// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package browser launches the system web browser. The sign-in flow hands
// the Google OAuth URL to the user's default browser; the callback returns
// to the app through the token query parameter on relaunch.
package browser

// Opener opens URLs in the system default browser.
type Opener struct{}

// New returns a browser opener.
func New() *Opener {
	return &Opener{}
}

// Open launches the system browser at the given URL. The browser process
// runs detached; Open returns once the launch command starts.
func (o *Opener) Open(url string) error {
	return openURL(url)
}
