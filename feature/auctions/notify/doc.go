// Package notify announces finished pipeline runs on a kafka topic.
package notify
