package galois

import (
	"fmt"

	"github.com/agbru/galois/internal/cplx"
	apperrors "github.com/agbru/galois/internal/errors"
)

// GroupAction is a named symmetry of the root list.
type GroupAction struct {
	// ID is a short identifier such as "r1" or "s12".
	ID string `json:"id"`
	// Label is the cycle notation, e.g. "(123)".
	Label string `json:"label"`
	// Perm is the permutation applied to the roots.
	Perm Permutation `json:"perm"`
	// Description is a human-readable name for the action.
	Description string `json:"description,omitempty"`
}

// String returns "id label", e.g. "r1 (123)".
func (a GroupAction) String() string {
	return a.ID + " " + a.Label
}

func (a GroupAction) clone() GroupAction {
	a.Perm = append(Permutation(nil), a.Perm...)
	return a
}

var s2Actions = []GroupAction{
	{ID: "e", Label: "e", Perm: Permutation{0, 1}, Description: "identity"},
	{ID: "swap", Label: "(12)", Perm: Permutation{1, 0}, Description: "swap the two roots"},
}

var s3Actions = []GroupAction{
	{ID: "e", Label: "e", Perm: Permutation{0, 1, 2}, Description: "identity"},
	{ID: "r1", Label: "(123)", Perm: Permutation{1, 2, 0}, Description: "rotation"},
	{ID: "r2", Label: "(132)", Perm: Permutation{2, 0, 1}, Description: "reverse rotation"},
	{ID: "s1", Label: "(12)", Perm: Permutation{1, 0, 2}, Description: "transpose 1-2"},
	{ID: "s2", Label: "(13)", Perm: Permutation{2, 1, 0}, Description: "transpose 1-3"},
	{ID: "s3", Label: "(23)", Perm: Permutation{0, 2, 1}, Description: "transpose 2-3"},
}

// The S4 catalog lists the rotations of the square and four transpositions
// only, not all 24 elements.
var s4Actions = []GroupAction{
	{ID: "e", Label: "e", Perm: Permutation{0, 1, 2, 3}, Description: "identity"},
	{ID: "r90", Label: "(1234)", Perm: Permutation{1, 2, 3, 0}, Description: "rotate 90°"},
	{ID: "r180", Label: "(13)(24)", Perm: Permutation{2, 3, 0, 1}, Description: "rotate 180°"},
	{ID: "r270", Label: "(1432)", Perm: Permutation{3, 0, 1, 2}, Description: "rotate 270°"},
	{ID: "s12", Label: "(12)", Perm: Permutation{1, 0, 2, 3}, Description: "transpose 1-2"},
	{ID: "s34", Label: "(34)", Perm: Permutation{0, 1, 3, 2}, Description: "transpose 3-4"},
	{ID: "s13", Label: "(13)", Perm: Permutation{2, 1, 0, 3}, Description: "transpose 1-3"},
	{ID: "s24", Label: "(24)", Perm: Permutation{0, 3, 2, 1}, Description: "transpose 2-4"},
}

func cloneActions(actions []GroupAction) []GroupAction {
	out := make([]GroupAction, len(actions))
	for i, a := range actions {
		out[i] = a.clone()
	}
	return out
}

// S2Actions returns the catalog of S2: the identity and the swap.
func S2Actions() []GroupAction { return cloneActions(s2Actions) }

// S3Actions returns the full six-element catalog of S3.
func S3Actions() []GroupAction { return cloneActions(s3Actions) }

// S4Actions returns the partial catalog of S4: identity, three rotations
// and four transpositions.
func S4Actions() []GroupAction { return cloneActions(s4Actions) }

// Actions returns a copy of the catalog for a polynomial degree.
//
// Parameters:
//   - degree: 2, 3 or 4.
//
// Returns:
//   - []GroupAction: The catalog, identity first.
//   - error: An apperrors.ValidationError for any other degree.
func Actions(degree int) ([]GroupAction, error) {
	switch degree {
	case 2:
		return S2Actions(), nil
	case 3:
		return S3Actions(), nil
	case 4:
		return S4Actions(), nil
	default:
		return nil, apperrors.NewValidationError("degree",
			fmt.Sprintf("no symmetry catalog for degree %d (must be between 2 and 4)", degree), degree)
	}
}

// FindAction looks up an action of the degree's catalog by ID.
func FindAction(degree int, id string) (GroupAction, error) {
	actions, err := Actions(degree)
	if err != nil {
		return GroupAction{}, err
	}
	for _, a := range actions {
		if a.ID == id {
			return a, nil
		}
	}
	return GroupAction{}, apperrors.NewValidationError("action",
		fmt.Sprintf("unknown action %q for degree %d", id, degree), id)
}

// ApplyToRoots reorders roots under p. Unlike Apply it validates its
// inputs: p must be a bijection of the same length as roots.
func ApplyToRoots(p Permutation, roots []cplx.Complex) ([]cplx.Complex, error) {
	if len(p) != len(roots) {
		return nil, apperrors.NewValidationError("perm",
			fmt.Sprintf("permutation of length %d cannot act on %d roots", len(p), len(roots)), []int(p))
	}
	if err := Validate(p); err != nil {
		return nil, err
	}
	return Apply(p, roots), nil
}
