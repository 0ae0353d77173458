package main

import "github.com/Sayan-CtrlZ/KDSH-2026/cmd"

func main() {
	cmd.Execute()
}
