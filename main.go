package main

import "github.com/Tiliavir/worklog/cmd"

func main() {
	cmd.Execute()
}
