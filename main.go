package main

import "github.com/caresoft-ricent/beaverbuild/cmd"

func main() {
	cmd.Execute()
}
