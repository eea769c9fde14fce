package main

import "github.com/skel-tools/skel/internal/cli"

func main() {
	cli.Execute()
}
