package main

import "github.com/msfrank/tempo-recipe/cmd/tempo-recipe/internal"

func main() {
	internal.Execute()
}
