// Package handler turns bot requests into results.
//
// Each user command maps to one Request variant. Dispatcher.Dispatch
// switches on the variant and runs the matching handler. Handlers never
// return errors for domain failures; they report them in the result's
// user-facing message so the command layer can reply as is.
//
// Guilds are registered on first use, named after what the chat platform
// reports or "Unknown" when it cannot tell.
package handler
