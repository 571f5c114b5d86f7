// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/invowk/scriptlink/cmd/scriptlink"

func main() {
	cmd.Execute()
}
