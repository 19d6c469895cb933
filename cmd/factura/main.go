package main

import "github.com/aalvaropc/factura/internal/cli"

func main() {
	cli.Execute()
}
