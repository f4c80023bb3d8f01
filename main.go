package main

import "github.com/goodnight/goodnight/cmd"

func main() {
	cmd.Execute()
}
