package relation

import "errors"

// Config-class errors (bad creation arguments, relation already exists or
// missing) are returned to the CLI layer, which reports them and exits
// non-zero; they never leave the store in a partially-written state.
var (
	// ErrRelationExists is returned by Create when the .info file already
	// exists.
	ErrRelationExists = errors.New("relation: already exists")

	// ErrRelationNotExist is returned by Open when the .info file is
	// missing.
	ErrRelationNotExist = errors.New("relation: does not exist")

	// ErrChoiceVectorExhausted is returned by Split when the relation has
	// already split as deep as its fixed-width choice vector allows
	// (d+1 >= MAXCHVEC).
	ErrChoiceVectorExhausted = errors.New("relation: choice vector exhausted, cannot split further")

	// ErrNoSpace is a hard invariant violation: a tuple that still does not
	// fit on a freshly allocated, empty overflow page. Distinct from
	// page.ErrInsufficientSpace, which is the expected, locally recovered
	// signal that triggers chain extension in the first place.
	ErrNoSpace = errors.New("relation: tuple does not fit even on a fresh overflow page")
)
