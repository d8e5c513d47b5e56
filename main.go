package main

import "github.com/jsigner/wallslide/cmd"

func main() {
	cmd.Execute()
}
