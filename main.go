package main

import "reolink-cli/cmd"

func main() {
	cmd.Execute()
}
