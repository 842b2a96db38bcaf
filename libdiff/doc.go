// Package libdiff compares configuration sources before and after a merge.
package libdiff
