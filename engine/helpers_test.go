package engine

import stderrors "errors"

func errorsIs(err, target error) bool {
	return stderrors.Is(err, target)
}
