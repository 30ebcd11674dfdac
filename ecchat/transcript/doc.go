// Package transcript keeps an LZ4-compressed log of chat turns.
//
// LZ4 is chosen for its speed: a transcript is appended to after every turn
// and must never hold the conversation up.
package transcript
