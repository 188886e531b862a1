package receipt

import (
	_ "embed"
)

//go:embed static/openapi.json
var openAPIDoc []byte
