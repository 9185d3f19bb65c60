package main

import "github.com/gaurav-prasanna/blurbpipe/cmd"

func main() {
	cmd.Execute()
}
