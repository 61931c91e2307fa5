package main

import "github.com/KaramelBytes/edustats-cli/cmd"

func main() {
	cmd.Execute()
}
