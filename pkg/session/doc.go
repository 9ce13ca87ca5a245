/*
Package session serializes access to stored calculator sessions.

The Manager wraps a ports.SessionStore with a ref-counted mutex per session ID
and, optionally, a distributed lock, so that concurrent requests against the
same session apply their changes one after the other.
*/
package session
