package main

import "github.com/spendy-ai/spendy/cmd"

func main() {
	cmd.Execute()
}
