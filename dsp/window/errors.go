package window

import (
	"errors"
	"fmt"
)

var errMismatchedLength = errors.New("samples and coefficients must have same length")

func validateLength(size int) error {
	if size <= 0 {
		return fmt.Errorf("window size must be > 0: %d", size)
	}
	return nil
}

func validateProportion(p float64) error {
	if p < 0 || p > MaxProportion || p != p {
		return fmt.Errorf("fade proportion must be in [0,%g]: %f", MaxProportion, p)
	}
	return nil
}
