// SPDX-License-Identifier: EPL-2.0

// Package mix owns the per object mono mixdowns of one export.
//
// # Lifecycle
//
// An ObjectMix starts Unrendered. The first call to Path or Reader solos the
// object's members on the host, bounces a mono mixdown into the work
// directory and puts every mute flag back the way it was, also when the
// bounce fails. The file is then decoded lazily through Reader. Dispose
// closes the reader and removes the file; it can be called any number of
// times, on any state.
//
//	UNRENDERED -> RENDERED -> READING -> DISPOSED
//
// A failed render leaves the mix Unrendered and is not retried.
//
// # Pool
//
// A Pool holds the mixes of one export in object order. WithPool runs a
// function with a pool and disposes every mix when it returns, whatever the
// outcome. Cleanup failures never hide the error of the function itself.
package mix
