// Package storage provides the pluggable key/value layer behind the
// prompt history archive. Keys are listed in ascending order by every
// backend, so time-ordered keys list oldest first.
package storage
