package models

import "bizadmin/internal/resource"

// NewRegistry returns a registry holding every resource exposed over HTTP.
func NewRegistry() *resource.Registry {
	r := resource.NewRegistry()
	r.Register(User{})
	r.Register(Product{})
	r.Register(Estimate{})
	return r
}
