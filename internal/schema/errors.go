// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package schema

import (
	"github.com/samber/oops"

	"github.com/holomush/dynconf/pkg/errutil"
)

// CodeSchemaParse marks every failure to turn a document into a Schema.
// Errors from other packages are folded into the message instead of wrapped
// so that this code is the one reported.
const CodeSchemaParse = "SCHEMA_PARSE"

func parseError(format string, args ...any) error {
	return oops.Code(CodeSchemaParse).Errorf(format, args...)
}

// wrapParse wraps a third-party error (YAML, JSON, JSON Schema) that carries
// no code of its own.
func wrapParse(err error, format string, args ...any) error {
	return oops.Code(CodeSchemaParse).Wrapf(err, format, args...)
}

// IsParseError reports whether err is a schema parse failure.
func IsParseError(err error) bool {
	return errutil.HasCode(err, CodeSchemaParse)
}
