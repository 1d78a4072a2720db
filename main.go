package main

import "github.com/vventirozos/GhostAgent-v2/cmd"

func main() {
	cmd.Execute()
}
