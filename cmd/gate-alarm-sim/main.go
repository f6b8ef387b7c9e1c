package main

import "github.com/cahamo/gate-alarm/cmd/gate-alarm-sim/cmd"

func main() {
	cmd.Execute()
}
