package main

import "github.com/OpenTraceLab/OpenTraceVCD/cmd/vcd/cmd"

func main() {
	cmd.Execute()
}
