// Package resp writes the JSON bodies the task API answers with.
//
// Success bodies are the payload itself, or {"message": ...} for string
// payloads. Failures always carry a message:
//
//	{
//	  "code": -300,          // Business error code
//	  "message": "...",      // Human-readable message, shown to the user
//	  "errors": {...}        // Field errors (optional)
//	}
//
// Usage:
//
//	resp.Success(w, tasks)
//	resp.WithStatusCode(w, http.StatusCreated, task)
//	resp.Unauthorized(w, "Invalid credentials")
//	resp.BadRequest(w, "Validation failed", fieldErrors)
package resp
