package main

import "github.com/gaurav-prasanna/finpipe/cmd"

func main() {
	cmd.Execute()
}
