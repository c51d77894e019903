package usecase

import (
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

const (
	sourceReadFailedCode  = "SOURCE_READ_FAILED"
	outputWriteFailedCode = "OUTPUT_WRITE_FAILED"
)

func wrapReadError(path string, err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, fmt.Sprintf("read source %s", path)).
		WithTextCode(sourceReadFailedCode)
}

func wrapWriteError(path string, err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, fmt.Sprintf("write output %s", path)).
		WithTextCode(outputWriteFailedCode)
}
