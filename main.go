package main

import "github.com/kamusis/assetindex/cmd"

func main() {
	cmd.Execute()
}
