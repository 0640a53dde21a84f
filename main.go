package main

import (
	"os"

	"github.com/tue-robotics/grammar-parser/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
