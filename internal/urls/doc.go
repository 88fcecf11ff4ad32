// Package urls provides centralized constants for the external reference
// URLs used throughout the application.
//
// This package was created to enable URL updates without hunting through
// code. All reference URLs are defined here as exported constants and can
// be updated in a single location before release.
//
// Usage:
//
//	import "github.com/loyerbxl/rentwizard/internal/urls"
//
//	fmt.Printf("Grid methodology: %s\n", urls.GridMethodology)
package urls
