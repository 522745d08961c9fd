// Package tmpl compiles the client's pongo2 view templates with the shared
// custom filters installed. Filters must exist before any template that
// uses them is parsed, so compilation always goes through Must.
package tmpl

import (
	"sync"
	"time"

	"github.com/flosch/pongo2/v6"
	"github.com/xeonx/timeago"
)

var registerOnce sync.Once

func registerFilters() {
	_ = pongo2.RegisterFilter("timeago", filterTimeago)
}

// filterTimeago renders a time.Time as a relative English duration
// ("3 minutes ago"). Non-time values pass through unchanged.
func filterTimeago(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	t, ok := in.Interface().(time.Time)
	if !ok {
		return in, nil
	}
	return pongo2.AsValue(timeago.English.Format(t)), nil
}

// Must compiles a template source, panicking on error. Intended for
// package-level template variables.
func Must(src string) *pongo2.Template {
	registerOnce.Do(registerFilters)
	return pongo2.Must(pongo2.FromString(src))
}
