// Package reference fetches the item reference catalog (name, quality, class, subclass) and
// keeps its persisted copy up to date.
package reference
