package main

import "github.com/mabhi256/hprofindex/cmd"

func main() {
	cmd.Execute()
}
