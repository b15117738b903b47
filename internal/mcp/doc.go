// Package mcp exposes the attend tool over the Model Context Protocol.
//
// The server registers exactly one tool, described by a frozen
// toolconfig.Tool. Its input schema is built once at registration and
// advertised unchanged on every tools/list. Calls are inert: the handler
// never reads the arguments and always answers with a single empty text
// block. Any other tool name is an error.
//
// The server runs on stdio (Run) or behind the streamable HTTP handler
// (HTTPHandler). Each call is traced, counted and logged with a fresh
// request ID.
package mcp
