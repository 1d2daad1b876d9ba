package main

import "github.com/primait/auroramap/cmd"

func main() {
	cmd.Execute()
}
