package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// Context carries request scoped values across the handler chain. It embeds
// the gin context so handlers keep access to the raw request and writer.
type Context struct {
	*gin.Context
	Ctx context.Context

	queryErrs []error
	paramErrs []error
}

// NewContext wraps a gin context for use by application handlers.
func NewContext(c *gin.Context) *Context {
	return &Context{Context: c, Ctx: c.Request.Context()}
}

// Respond marshals data as JSON with the given status code.
func (c *Context) Respond(data interface{}, status int) error {
	c.JSON(status, data)
	return nil
}

// RespondError converts an error to a JSON response. Request errors keep
// their status and message; anything else is logged and generalized so
// internal details never reach the client.
func (c *Context) RespondError(err error) error {
	if webErr := GetRequestError(err); webErr != nil {
		return c.Respond(map[string]interface{}{
			"error":  webErr.Error(),
			"fields": webErr.Fields,
			"status": false,
		}, webErr.Status)
	}

	log.Printf("internal error: %+v", err)
	return c.Respond(map[string]interface{}{
		"error":  "internal server error",
		"status": false,
	}, http.StatusInternalServerError)
}

// BindFunc binds the request body to data and verifies that the named
// struct fields were supplied.
func (c *Context) BindFunc(data interface{}, requiredFields ...string) error {
	if err := c.ShouldBind(data); err != nil {
		return NewRequestError(errors.Wrap(err, "binding request"), http.StatusBadRequest)
	}

	v := reflect.ValueOf(data).Elem()
	var fields []FieldError
	for _, name := range requiredFields {
		for _, f := range strings.Split(name, ",") {
			field := v.FieldByName(strings.TrimSpace(f))
			if !field.IsValid() {
				continue
			}
			if field.IsZero() {
				fields = append(fields, FieldError{Field: f, Error: "required"})
			}
		}
	}
	if len(fields) > 0 {
		return &Error{
			Err:    errors.New("required fields are missing"),
			Status: http.StatusBadRequest,
			Fields: fields,
		}
	}

	return nil
}

// GetQueryFunc reads an optional query parameter and converts it to a
// pointer of the requested kind. A missing parameter yields a typed nil
// pointer, conversion failures are collected for ValidQuery.
func (c *Context) GetQueryFunc(kind reflect.Kind, name string) interface{} {
	value, ok := c.GetQuery(name)

	switch kind {
	case reflect.Int:
		if !ok || value == "" {
			return (*int)(nil)
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			c.queryErrs = append(c.queryErrs, fmt.Errorf("query %q must be an integer", name))
			return (*int)(nil)
		}
		return &n
	case reflect.Bool:
		if !ok || value == "" {
			return (*bool)(nil)
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			c.queryErrs = append(c.queryErrs, fmt.Errorf("query %q must be a boolean", name))
			return (*bool)(nil)
		}
		return &b
	case reflect.String:
		if !ok || value == "" {
			return (*string)(nil)
		}
		return &value
	}

	c.queryErrs = append(c.queryErrs, fmt.Errorf("unsupported query kind for %q", name))
	return nil
}

// GetParam reads a path parameter and converts it to the requested kind.
func (c *Context) GetParam(kind reflect.Kind, name string) interface{} {
	value := c.Param(name)

	switch kind {
	case reflect.Int:
		n, err := strconv.Atoi(value)
		if err != nil {
			c.paramErrs = append(c.paramErrs, fmt.Errorf("param %q must be an integer", name))
			return 0
		}
		return n
	case reflect.String:
		if value == "" {
			c.paramErrs = append(c.paramErrs, fmt.Errorf("param %q is required", name))
		}
		return value
	}

	c.paramErrs = append(c.paramErrs, fmt.Errorf("unsupported param kind for %q", name))
	return nil
}

// ValidQuery reports query string conversion errors collected so far.
func (c *Context) ValidQuery() error {
	if len(c.queryErrs) == 0 {
		return nil
	}
	return NewRequestError(joinErrs(c.queryErrs), http.StatusBadRequest)
}

// ValidParam reports path parameter conversion errors collected so far.
func (c *Context) ValidParam() error {
	if len(c.paramErrs) == 0 {
		return nil
	}
	return NewRequestError(joinErrs(c.paramErrs), http.StatusBadRequest)
}

func joinErrs(errs []error) error {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}
	return errors.New(strings.Join(msgs, "; "))
}
