package main

import "github.com/cahamo/gate-alarm/cmd/gate-alarmd/cmd"

func main() {
	cmd.Execute()
}
