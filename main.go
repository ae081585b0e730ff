package main

import "github.com/justin0804nitsuj/memo/cmd"

func main() {
	cmd.Execute()
}
