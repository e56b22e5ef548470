package main

import "github.com/ljupchokanevche/flutterfire-cli/cmd"

func main() {
	cmd.Execute()
}
