// Package data embeds the default question catalog and category table.
package data

import _ "embed"

//go:embed questions.txt
var Questions []byte

//go:embed animals.yaml
var Animals []byte
