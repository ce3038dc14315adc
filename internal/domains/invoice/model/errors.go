package model

import "errors"

var (
	ErrInvoiceNotFound = errors.New("invoice not found")

	// Assembly validation errors
	ErrNoValidClient        = errors.New("no valid client selected")
	ErrClientFlowIncomplete = errors.New("finish adding the new client before generating an invoice")
	ErrEmptyItems           = errors.New("invoice must contain at least one item")
	ErrMissingDescription   = errors.New("every invoice item needs a description")
)
