// Package ecode defines the outcome codes shared by the request client, the
// screen controllers, the stub API and the CLI.
//
// Codes follow the numbering scheme:
//   - 0: Success (OK)
//   - -100 to -199: Session / authorization errors
//   - -200 to -299: Client-side validation errors
//   - -300 to -399: Server rejections
//   - -500 to -599: Transport and local storage errors
//   - -600: Stub API internal errors
//
// Retrieve human-readable messages with Text:
//
//	message := ecode.Text(ecode.NoLogin)
//	// Returns: "Authentication failed. Please log in again."
package ecode
