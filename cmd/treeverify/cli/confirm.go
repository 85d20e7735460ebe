// Copyright 2026 The Treeverify Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
)

// isInteractive returns true if stdin is a terminal (not piped).
func isInteractive() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// shouldPrompt returns true if interactive prompts should be shown.
// Prompts are disabled in CI environments or when stdin is not a terminal.
func shouldPrompt() bool {
	ciEnvVars := []string{
		"CI",
		"GITHUB_ACTIONS",
		"GITLAB_CI",
		"JENKINS_URL",
	}
	for _, envVar := range ciEnvVars {
		if os.Getenv(envVar) != "" {
			return false
		}
	}
	return isInteractive()
}

// promptConfirm displays a yes/no confirmation prompt. A prompt failure
// (closed terminal, interrupt) counts as a refusal.
func promptConfirm(message string, defaultValue bool) bool {
	confirmed := defaultValue

	confirm := huh.NewConfirm().
		Title(message).
		Value(&confirmed)

	if err := huh.NewForm(huh.NewGroup(confirm)).Run(); err != nil {
		return false
	}
	return confirmed
}

// confirmDelete asks whether one failed destination subtree may be removed.
func confirmDelete(path string) bool {
	return promptConfirm(fmt.Sprintf("Delete destination subtree %q?", path), false)
}

// confirmTransferComplete gates the diff-scoped modes at the transfer
// boundary: verification starts only once the user confirms the external
// copy has finished.
func confirmTransferComplete() bool {
	return promptConfirm("Transfer complete? Start verification?", true)
}
