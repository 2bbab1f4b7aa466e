package web

import (
	"log"

	"github.com/gin-gonic/gin"
)

// Handler is the signature used by all application handlers.
type Handler func(c *Context) error

// Middleware runs code before or after another Handler.
type Middleware func(Handler) Handler

// App is the entrypoint for the web application. It wraps the gin engine
// and adapts application handlers to it.
type App struct {
	*gin.Engine
}

// NewApp creates an App to handle a set of routes.
func NewApp() *App {
	return &App{Engine: gin.Default()}
}

func (a *App) handle(method, path string, handler Handler, mw []Middleware) {
	// Wrap the handler with its middleware chain, innermost last.
	for i := len(mw) - 1; i >= 0; i-- {
		if mw[i] != nil {
			handler = mw[i](handler)
		}
	}

	h := func(c *gin.Context) {
		ctx := NewContext(c)
		if err := handler(ctx); err != nil {
			// Handlers respond themselves; an error reaching here means
			// nothing was written.
			log.Printf("%s %s : unhandled error: %v", method, path, err)
			_ = ctx.RespondError(err)
		}
	}

	a.Engine.Handle(method, path, h)
}

// Get registers a GET handler with optional middleware.
func (a *App) Get(path string, handler Handler, mw ...Middleware) {
	a.handle("GET", path, handler, mw)
}

// Post registers a POST handler with optional middleware.
func (a *App) Post(path string, handler Handler, mw ...Middleware) {
	a.handle("POST", path, handler, mw)
}

// Put registers a PUT handler with optional middleware.
func (a *App) Put(path string, handler Handler, mw ...Middleware) {
	a.handle("PUT", path, handler, mw)
}

// Patch registers a PATCH handler with optional middleware.
func (a *App) Patch(path string, handler Handler, mw ...Middleware) {
	a.handle("PATCH", path, handler, mw)
}

// Delete registers a DELETE handler with optional middleware.
func (a *App) Delete(path string, handler Handler, mw ...Middleware) {
	a.handle("DELETE", path, handler, mw)
}
