package main

import "github.com/careerbridge/server/cmd/server/cmd"

func main() {
	cmd.Execute()
}
