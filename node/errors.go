// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package node

import (
	"github.com/born-ml/magnet/internal/node"
	"github.com/born-ml/magnet/internal/params"
)

// ErrSuspended is wrapped into the panic raised when an unbuilt node
// is called under BuildSuspended.
var ErrSuspended = node.ErrSuspended

// InvalidPaddingError reports a symbolic padding mode whose implied
// downscale factor has no integral stride.
type InvalidPaddingError = node.InvalidPaddingError

// UnsupportedRankError reports an input rank no module can handle.
type UnsupportedRankError = node.UnsupportedRankError

// InvalidNameError reports an explicitly empty display name.
type InvalidNameError = params.InvalidNameError

// TooManyArgsError reports more positional arguments than a node's
// parameter table declares.
type TooManyArgsError = params.TooManyArgsError

// UnknownArgError reports a keyword argument a node's parameter table
// does not declare.
type UnknownArgError = params.UnknownArgError
