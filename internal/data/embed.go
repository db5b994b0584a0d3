package data

import _ "embed"

//go:embed tables/characters.yaml
var builtinCharacters []byte

//go:embed tables/chapters.yaml
var builtinChapters []byte
