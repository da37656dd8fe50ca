package main

import "github.com/hmans/tasks/cmd"

func main() {
	cmd.Execute()
}
