package main

import "github.com/zostay/go-imapmsg/tools/mailparse/cmd"

func main() {
	cmd.Execute()
}
