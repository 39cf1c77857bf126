package main

import "github.com/amilyk/TinyRAG/internal/cli"

func main() {
	cli.Execute()
}
