package main

import "github.com/sst/ydiff/internal/cmd"

func main() {
	cmd.Execute()
}
