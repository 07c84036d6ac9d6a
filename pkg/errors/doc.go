// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeVendorAPI,
//	    "failed to fetch GPU catalog",
//	    cause,
//	    map[string]interface{}{
//	        "url": catalogURL,
//	    },
//	)
package errors
