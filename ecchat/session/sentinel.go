package session

import "strings"

// Sentinel ends the conversation when either side sends it.
const Sentinel = "bye"

// IsSentinel reports whether msg is the sentinel, ignoring case. Only the
// whole message counts: "BYE" does, "goodbye" does not.
func IsSentinel(msg []byte) bool {
	return len(msg) == len(Sentinel) && strings.EqualFold(string(msg), Sentinel)
}
