// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package validate enforces presence, length, and character-class constraints
on user-supplied strings.

# Contract

Field trims whitespace, then rejects values that are empty, too long, or
outside the allowed character class:

	name, err := validate.DashboardName(req.Name)
	var verr *validate.Error
	if errors.As(err, &verr) {
		// verr.Field, verr.Reason
	}

Validation is side-effect-free; the trimmed value returned by a helper is
the value that must be stored.

# Character Classes

  - names (dashboards, sources): alphanumerics, space, hyphen, underscore
  - routes and subroute paths: alphanumerics, hyphen, underscore, slash, dot
  - descriptions and emails: no class restriction, length-bounded only

Struct-shape validation of request bodies (required fields, email format)
happens earlier, at the JSON decode boundary in the middleware package.
This package owns the domain-level rules.
*/
package validate
