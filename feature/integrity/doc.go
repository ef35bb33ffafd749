// Package integrity exposes health checks over the pipeline's persistent state:
// the database tables it writes and the object storage bucket snapshots go to.
package integrity
