/*
Package user contains the data structures describing a chat participant's identity.

An Info value is established once per connection, either from the join frame or
from out-of-band connection metadata, and never changes afterwards.
*/
package user

// Info is the declared identity of a chat participant.
// Fields use JSON tags for serialization in WebSocket frames.
type Info struct {
	// Name is the display name of the participant.
	Name string `json:"name"`

	// Room is the identifier of the room the participant joined.
	// The server currently runs a single shared room.
	Room string `json:"room"`
}
