// Package main
// Created by RTT.
// Author: teocci@yandex.com on 2021-Nov-08
package main

import (
	"github.com/teocci/go-mp4meta/cmd/mp4metactl/cmd"
)

func main() {
	cmd.Execute()
}
