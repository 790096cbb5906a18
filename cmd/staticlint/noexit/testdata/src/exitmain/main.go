package main

import "os"

func main() {
	defer cleanup()
	if len(os.Args) > 3 {
		os.Exit(2) // want "вызов os.Exit в функции main запрещён"
	}
	func() {
		os.Exit(1) // want "вызов os.Exit в функции main запрещён"
	}()
}

func cleanup() {
	os.Exit(0)
}

type runner struct{}

func (runner) main() {
	os.Exit(3)
}
