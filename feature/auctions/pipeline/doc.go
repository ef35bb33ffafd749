// Package pipeline runs one aggregation pass:
//
//	credentials -> reference refresh -> discovery -> pricing fetch -> filter stages
//	-> media resolution -> join stages -> batched persistence -> snapshot export -> run event
//
// Credential, reference, discovery, media and persistence failures abort the run. Failures of
// a single region, auction house or item are logged and skipped by the stage that owns them.
package pipeline
