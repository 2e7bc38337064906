// Package prompts manages the prompt templates that turn a chat
// command and raw user query into the finalized prompt sent upstream.
//
// # Overview
//
// Templates are small structured values, literal text split around a
// single {query} slot, so rendering is concatenation and user input
// can never break out of the template structure. The package ships
// built-in templates (default, code, explain) and optionally overlays
// a YAML file on top:
//
//	templates:
//	  default: "You are a helpful assistant ... Question: {query}"
//	bindings:
//	  ask: default
//
// Command bindings map the bot's closed command set to template names
// (ask to default, code to code by default). They are configuration,
// never mutated at runtime.
//
// # Hot Reload
//
// When watching is enabled the templates file is monitored with
// fsnotify and reloaded after a debounce quiet period. A reload swaps
// the whole set atomically; an invalid file is rejected and the
// previous set stays active.
package prompts
