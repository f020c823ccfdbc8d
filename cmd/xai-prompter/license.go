package main

import _ "embed"

//go:embed UNLICENSE
var license string
