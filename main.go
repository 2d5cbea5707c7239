package main

import "github/fluxshare/go-fluxshare/cmd"

func main() {
	cmd.Execute()
}
