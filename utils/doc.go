// Package utils provides internal utility functions for the service.
// This package is not intended to be imported by external code.
package utils
