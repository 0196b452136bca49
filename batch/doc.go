// SPDX-License-Identifier: EPL-2.0

// Package batch applies one effect chain to every audio file in a folder.
//
// Run handles the files present when it is called, several at a time. Watch
// keeps waiting for new files and processes each one once it has stopped
// changing. Every file gets its own session; a file that fails is reported
// and does not stop the others.
package batch
