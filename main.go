// Copyright 2025 BookVerse Ltd.
// SPDX-License-Identifier: AGPL-3.0

package main

import "github.com/bookverse/bookverse-core/cmd"

func main() {
	cmd.Execute()
}
