package main

import "team-planner/cmd"

func main() {
	cmd.Execute()
}
