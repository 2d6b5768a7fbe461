package main

import "github.com/agentscope/agentscope/internal/cli"

func main() {
	cli.Execute()
}
