package main

import "github.com/cothinklab/cothink/cmd"

func main() {
	cmd.Execute()
}
