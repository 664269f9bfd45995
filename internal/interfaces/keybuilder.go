package interfaces

import "net/http"

//go:generate mockgen -package=mock -source=keybuilder.go -destination=mock/keybuilder.go

// KeyBuilder canonizes requests into deterministic cache keys.
type KeyBuilder interface {
	Build(req *http.Request) (string, error)
}
