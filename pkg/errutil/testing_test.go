// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package errutil_test

import (
	"testing"

	"github.com/samber/oops"

	"github.com/holomush/dynconf/pkg/errutil"
)

func TestAssertErrorCode(t *testing.T) {
	err := oops.Code("UNKNOWN_PROPERTY").With("property", "ghost").Errorf("unknown property")

	oopsErr := errutil.AssertErrorCode(t, err, "UNKNOWN_PROPERTY")
	errutil.AssertErrorContext(t, err, "property", "ghost")
	if oopsErr.Error() != "unknown property" {
		t.Errorf("unexpected message %q", oopsErr.Error())
	}
}
