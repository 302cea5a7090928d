package util

import "errors"

var (
	ErrMissingStandardName = errors.New("gene set has no standard name")
	ErrMalformedMembers    = errors.New("malformed member mapping")
	ErrMembersUnavailable  = errors.New("gene set members unavailable")

	ErrCorpusParse    = errors.New("corpus document could not be parsed")
	ErrCorpusMissing  = errors.New("corpus input not found")
	ErrUnknownSource  = errors.New("unknown source kind")
	ErrUnknownSpecies = errors.New("unknown species")
	ErrUnknownDriver  = errors.New("unknown driver")
)
