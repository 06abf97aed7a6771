package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrBillNotExtracted    = errors.New("bill has not been extracted yet")
	ErrBillNotAnalyzed     = errors.New("bill has not been analyzed yet")
	ErrNoLineItems         = errors.New("bill has no line items")
	ErrPaymentRequired     = errors.New("full report requires payment")
	ErrAlreadyPaid         = errors.New("bill has already been paid for")
	ErrInvalidSignature    = errors.New("webhook signature verification failed")
	ErrInvalidVerifiedData = errors.New("verified data does not match expected format")
)
