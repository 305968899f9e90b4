// Package tools defines the Tool interface for agent-callable operations,
// including parameter schema, discovery metadata, and the tagged error type
// returned across the tool boundary. Tools let an agent interact with the
// issue tracker in a structured, extensible way.
package tools
