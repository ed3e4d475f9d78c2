package main

import "pkpd-profile/internal/cli"

func main() {
	cli.Execute()
}
