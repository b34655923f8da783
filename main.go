package main

import "github.com/jsphweid/musixbooth/cmd"

func main() {
	cmd.Execute()
}
