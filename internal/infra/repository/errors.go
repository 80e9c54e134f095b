package repository

import (
	"hostel-backoffice/internal/infra"
)

func wrap(msg string, err error) error {
	return infra.WrapRepoErr(msg, err)
}

func wrapNotFound(msg string, err error) error {
	return infra.WrapRepoErr(msg, err, infra.KindNotFound)
}
