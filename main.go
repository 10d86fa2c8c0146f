package main

import "github.com/yoanbernabeu/awesomedocs/cli"

func main() {
	cli.Execute()
}
