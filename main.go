package main

import "github.com/openflow-dev/wrench/cmd"

func main() {
	cmd.Execute()
}
