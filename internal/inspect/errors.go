// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package inspect

import "errors"

var (
	ErrUnsupportedDSN = errors.New("unsupported DSN scheme")
	ErrUserNotFound   = errors.New("user not found")
)
