package main

import "auction-aggregator/cmd"

func main() {
	cmd.Execute()
}
