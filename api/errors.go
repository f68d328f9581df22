package api

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions that carry no extra detail
var (
	// ErrInvalidURL is returned by NewClient for a malformed base endpoint
	ErrInvalidURL = errors.New("invalid endpoint URL")

	// ErrContractNotFound is returned when a constant call yields an empty
	// result list (no code at the address, or the method reverted silently)
	ErrContractNotFound = errors.New("contract not found")

	// ErrAccountNotFound is returned when an account response has no
	// balance field, the node's signal for a never-activated account
	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidIndex is returned when a requested constant result index
	// does not exist
	ErrInvalidIndex = errors.New("constant result index out of range")
)

// RequestError wraps a transport-level failure: network error, non-2xx
// status, undecodable body or URL join failure. Nothing in the client
// retries these.
type RequestError struct {
	Op  string
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request %s failed: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// BroadcastError is returned when the node rejects transaction construction
// or broadcast. Message is already hex-decoded to UTF-8 when possible.
type BroadcastError struct {
	Code    string
	Message string
}

func (e *BroadcastError) Error() string {
	return fmt.Sprintf("broadcast rejected (%s): %s", e.Code, e.Message)
}

// TxFailedError is returned when a transaction was confirmed but its
// execution failed. Reason is the node's contractRet value, e.g. "REVERT".
type TxFailedError struct {
	Reason string
}

func (e *TxFailedError) Error() string {
	return fmt.Sprintf("transaction failed: %s", e.Reason)
}

// ContractQueryError is returned when a constant contract call carries an
// explicit error code in its result object
type ContractQueryError struct {
	Code    string
	Message string
}

func (e *ContractQueryError) Error() string {
	return fmt.Sprintf("contract query failed (%s): %s", e.Code, e.Message)
}

// UnknownResponseError is returned when a well-formed response deviates
// from the expected shape. Detail names the missing or malformed field so
// schema drift stays diagnosable.
type UnknownResponseError struct {
	Detail string
}

func (e *UnknownResponseError) Error() string {
	return fmt.Sprintf("unknown response: %s", e.Detail)
}

// SignerError wraps a failure of the external signing capability
type SignerError struct {
	Err error
}

func (e *SignerError) Error() string {
	return fmt.Sprintf("signer failed: %v", e.Err)
}

func (e *SignerError) Unwrap() error {
	return e.Err
}
