package main

import "github.com/mentorhub/mentorhub/cmd"

func main() {
	cmd.Execute()
}
