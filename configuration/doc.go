// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - parse a Lua configuration file
//
// the file is an ordinary Lua chunk that must return a table; most of
// base Lua is available such as os.getenv to extract environment
// supplied items and arg[0] holds the name of the file being read
package configuration
