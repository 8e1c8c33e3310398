// Package errors provides coded errors shared by the game core and its
// persistence layers.
//
// The simulation raises exactly one kind of recoverable failure,
// CodeConfiguration, for malformed level maps and out-of-bounds setup
// coordinates. Everything else the simulation rejects during play is a
// plain false or no-op return. Storage and save-slot backends use
// CodeNotFound, CodeInvalidArgument and CodeInternal.
//
// Usage:
//
//	if err := sess.LoadLevel(layout); err != nil {
//		if errors.IsConfiguration(err) {
//			// reject the level, keep the running session
//		}
//	}
package errors
