package nonrigid

import "errors"

var (
	// ErrInvalidArgument is returned for malformed requests such as a zero sample
	// count, a sample count larger than the cloud, or mismatched column lengths.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfDomain is returned when a point falls outside the translation grid.
	ErrOutOfDomain = errors.New("point outside transformation domain")

	// ErrEmptyResult is returned when no correspondences remain after matching or rejection.
	ErrEmptyResult = errors.New("no correspondences left")

	// ErrSolverFailure is returned when the sparse solve does not converge or breaks down.
	ErrSolverFailure = errors.New("sparse solver failed")

	// ErrIO is returned for malformed or version-mismatched transform files and
	// unreadable or unwritable paths.
	ErrIO = errors.New("transform i/o error")
)
