// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	ErrBatchPartiallyFinalized        = ProcessError("batch is partially finalized")
	ErrBatchReconciliationUndefined   = ProcessError("garbage collection of batched transactions is not defined")
	ErrConfigurationFileMissing       = NotFoundError("configuration file does not exist")
	ErrDatabaseIsNil                  = InvalidError("database is nil")
	ErrDatabaseVersionNewerThanBinary = InvalidError("database version is newer than this program")
	ErrEmptyBatch                     = InvalidError("batch has no transactions")
	ErrIncompatibleDatabaseVersion    = InvalidError("incompatible database version")
	ErrInvalidBatchPolicy             = InvalidError("invalid batch policy")
	ErrInvalidCursor                  = InvalidError("invalid cursor")
	ErrInvalidDatabaseBackend         = InvalidError("invalid database backend")
	ErrInvalidLoggerChannel           = InvalidError("invalid logger channel")
	ErrInvalidRecord                  = RecordError("invalid record")
	ErrInvalidStructPointer           = InvalidError("invalid struct pointer")
	ErrMissingHash                    = InvalidError("missing transaction hash")
	ErrNotAConfigurationTable         = InvalidError("configuration did not return a table")
	ErrNotDigest                      = InvalidError("not a digest")
	ErrTransactionNotFound            = NotFoundError("transaction not found")
	ErrUnknownTransactionType         = InvalidError("unknown transaction type")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool   { _, ok := e.(RecordError); return ok }
