package contracts

import "github.com/julienschmidt/httprouter"

// Handler is an HTTP feature module. pkg/app mounts every Handler on one
// router behind the shared middleware chain.
type Handler interface {
	RegisterRoutes(*httprouter.Router)
}
