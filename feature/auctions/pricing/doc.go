// Package pricing downloads per auction house pricing snapshots and stamps every record
// with the realm and auction house it came from.
package pricing
